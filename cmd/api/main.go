package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"agencyops/internal/config"
	"agencyops/internal/database"
	"agencyops/internal/middleware"
	"agencyops/internal/modules/assistant"
	"agencyops/internal/modules/auth"
	"agencyops/internal/modules/clients"
	"agencyops/internal/modules/dashboard"
	"agencyops/internal/modules/invoices"
	"agencyops/internal/modules/partners"
	"agencyops/internal/modules/projects"
	"agencyops/internal/modules/team"
	"agencyops/internal/modules/tickets"
	"agencyops/internal/modules/users"
	"agencyops/internal/notification"
	jwtsvc "agencyops/internal/pkg/jwt"
	"agencyops/internal/pkg/mailer"
	"agencyops/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	sessions := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)
	cookies := middleware.CookieSettings{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	}

	keys, err := cfg.CredentialsKeyring()
	if err != nil {
		log.Fatal(err)
	}

	mail := mailer.New(mailer.Config{
		From:         cfg.Mail.From,
		ResendAPIKey: cfg.Mail.ResendAPIKey,
		SMTPHost:     cfg.Mail.SMTPHost,
		SMTPPort:     cfg.Mail.SMTPPort,
		SMTPUser:     cfg.Mail.SMTPUser,
		SMTPPass:     cfg.Mail.SMTPPass,
	})
	dispatcher := notification.NewDispatcher(db, mail, cfg.Mail.CC)

	var agent assistant.Agent
	if cfg.Agent.Configured() {
		agent = assistant.NewAgentClient(cfg.Agent.URL, cfg.Agent.Token)
	}

	userRepo := repository.NewUserRepository(db)

	dashboardService, err := dashboard.NewService(db)
	if err != nil {
		log.Fatal(err)
	}

	authHandler := auth.NewHandler(auth.NewService(userRepo, sessions), cookies)
	usersHandler := users.NewHandler(users.NewService(userRepo))
	clientsHandler := clients.NewHandler(clients.NewService(db, keys))
	projectsHandler := projects.NewHandler(projects.NewService(db, dispatcher))
	ticketsHandler := tickets.NewHandler(tickets.NewService(db, dispatcher))
	invoicesHandler := invoices.NewHandler(invoices.NewService(db))
	partnersHandler := partners.NewHandler(partners.NewService(db))
	teamHandler := team.NewHandler(team.NewService(db))
	dashboardHandler := dashboard.NewHandler(dashboardService)
	assistantHandler := assistant.NewHandler(assistant.NewService(db, agent))

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Gate(sessions, cookies))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(middleware.LoginPath, func(c *gin.Context) {
		c.String(http.StatusOK, "login")
	})

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		usersHandler.RegisterRoutes(api)
		clientsHandler.RegisterRoutes(api)
		projectsHandler.RegisterRoutes(api)
		ticketsHandler.RegisterRoutes(api)
		invoicesHandler.RegisterRoutes(api)
		partnersHandler.RegisterRoutes(api)
		teamHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)
		assistantHandler.RegisterRoutes(api)
	}

	log.Printf("agencyops api listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agencyops/internal/database"
	"agencyops/internal/domain"
	"agencyops/internal/modules/clients"
	"agencyops/internal/repository"
)

const (
	defaultOwnerEmail = "owner@agency.local"
	demoClientEmail   = "hello@demo-retail.example"
)

var defaultRoles = []domain.TeamRole{
	{Name: "Account Management", Color: "#2563EB"},
	{Name: "Design", Color: "#DB2777"},
	{Name: "Development", Color: "#16A34A"},
	{Name: "Support", Color: "#F59E0B"},
	{Name: "Finance", Color: "#64748B"},
}

func main() {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		dsn = "agencyops.db"
	}
	password := os.Getenv("SEED_DEFAULT_PASSWORD")
	if password == "" {
		log.Fatal("SEED_DEFAULT_PASSWORD must be set")
	}
	ownerEmail := strings.TrimSpace(os.Getenv("SEED_OWNER_EMAIL"))
	if ownerEmail == "" {
		ownerEmail = defaultOwnerEmail
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx := context.Background()

	if err := seedOwner(ctx, db, ownerEmail, password); err != nil {
		log.Fatal("seed owner:", err)
	}

	log.Println("Creating team roles...")
	for _, role := range defaultRoles {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&role).Error; err != nil {
			log.Fatal("seed roles:", err)
		}
	}

	if err := seedDemoClient(ctx, db); err != nil {
		log.Fatal("seed demo client:", err)
	}

	log.Println("Seed complete")
}

func seedOwner(ctx context.Context, db *gorm.DB, email, password string) error {
	users := repository.NewUserRepository(db)
	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("Owner %s already exists", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, &domain.User{
		Name:         "Agency Owner",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		Timezone:     "UTC",
	}); err != nil {
		return err
	}
	log.Printf("Owner created: %s", email)
	return nil
}

func seedDemoClient(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Client{}).Where("contact_email = ?", demoClientEmail).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Println("Demo client already exists")
		return nil
	}

	c, err := clients.NewService(db, nil).Create(ctx, clients.CreateClientRequest{
		ClientName:   "Demo Retail",
		ContactName:  "Dana Demo",
		ContactEmail: demoClientEmail,
		Country:      "Chile",
		Industry:     "Retail",
		Status:       domain.ClientActive,
		Services:     []string{"web", "seo"},
	})
	if err != nil {
		return err
	}
	log.Printf("Demo client created: %s with %d projects", c.Name, len(c.Projects))
	return nil
}

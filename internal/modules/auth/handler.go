package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/middleware"
	"agencyops/internal/pkg/request"
	"agencyops/internal/pkg/response"
)

type Handler struct {
	service *Service
	cookies middleware.CookieSettings
}

func NewHandler(service *Service, cookies middleware.CookieSettings) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/auth")
	{
		g.POST("/login", h.Login)
		g.POST("/logout", h.Logout)
		g.GET("/me", h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Internal(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookies, token)
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookies)
	c.Status(http.StatusNoContent)
}

// Me relies on the gate having decoded the cookie; auth routes are never
// rejected there, so the check happens here.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			middleware.ClearSessionCookie(c, h.cookies)
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

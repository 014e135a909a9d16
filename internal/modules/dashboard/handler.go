package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	out, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

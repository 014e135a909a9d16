package assistant

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/middleware"
	"agencyops/internal/pkg/request"
	"agencyops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/assistant", h.Ask)
}

func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if !request.BindJSON(c, &req) {
		return
	}

	reply, err := h.service.Ask(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		var agentErr *AgentError
		switch {
		case errors.Is(err, ErrAgentNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, "AGENT_NOT_CONFIGURED", "AI assistant is not configured")
		case errors.As(err, &agentErr):
			log.Printf("assistant_agent_error status=%d user_id=%s", agentErr.Status, middleware.UserID(c))
			response.ErrorWithDetails(c, http.StatusBadGateway, "AGENT_ERROR", "AI assistant returned an error", agentErr.Body)
		default:
			response.Internal(c, err)
		}
		return
	}
	response.Success(c, http.StatusOK, reply)
}

package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/domain"
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
	g := api.Group("/tickets")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.GET("/:id/updates", h.ListUpdates)
		g.POST("/:id/updates", h.AddUpdate)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), TicketFilter{
		Status:    domain.TicketStatus(c.Query("status")),
		Priority:  domain.TicketPriority(c.Query("priority")),
		ClientID:  c.Query("clientId"),
		ProjectID: c.Query("projectId"),
		Query:     c.Query("q"),
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateTicketRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListUpdates(c *gin.Context) {
	list, err := h.service.Updates(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) AddUpdate(c *gin.Context) {
	var req CreateUpdateRequest
	if !request.BindJSON(c, &req) {
		return
	}

	res, err := h.service.AddUpdate(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if request.FieldError(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrTicketNotFound):
		response.Error(c, http.StatusNotFound, "TICKET_NOT_FOUND", "Ticket not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "This status change is not allowed")
	default:
		response.Internal(c, err)
	}
}

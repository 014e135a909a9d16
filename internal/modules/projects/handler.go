package projects

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
	g := api.Group("/projects")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.GET("/:id/status", h.GetStatus)
		g.PATCH("/:id/status", h.ChangeStatus)
		g.GET("/:id/updates", h.ListUpdates)
		g.POST("/:id/updates", h.AddUpdate)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), ProjectFilter{
		Status:   domain.ProjectStatus(c.Query("status")),
		Type:     domain.ProjectType(c.Query("type")),
		ClientID: c.Query("clientId"),
		Query:    c.Query("q"),
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !request.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if !request.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetStatus(c *gin.Context) {
	v, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !request.BindJSON(c, &req) {
		return
	}

	res, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
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
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "This status change is not allowed")
	default:
		response.Internal(c, err)
	}
}

package clients

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/domain"
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
	g := api.Group("/clients")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.GET("/:id/accesses", h.ListAccesses)
		g.POST("/:id/accesses", h.CreateAccess)
		g.DELETE("/:id/accesses/:accessId", h.DeleteAccess)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), ClientFilter{
		Status: domain.ClientStatus(c.Query("status")),
		Query:  c.Query("q"),
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	client, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if issues := req.Check(); issues != nil {
		request.ValidationFailed(c, issues)
		return
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, client)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if !request.BindJSON(c, &req) {
		return
	}

	client, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListAccesses(c *gin.Context) {
	list, err := h.service.Accesses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateAccess(c *gin.Context) {
	var req CreateAccessRequest
	if !request.BindJSON(c, &req) {
		return
	}

	access, err := h.service.CreateAccess(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, access)
}

func (h *Handler) DeleteAccess(c *gin.Context) {
	if err := h.service.DeleteAccess(c.Request.Context(), c.Param("id"), c.Param("accessId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if request.FieldError(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrClientNotFound):
		response.Error(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
	case errors.Is(err, ErrAccessNotFound):
		response.Error(c, http.StatusNotFound, "ACCESS_NOT_FOUND", "Client access not found")
	case errors.Is(err, ErrEmailExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "A client with this contact email already exists")
	case errors.Is(err, ErrCredentialsNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "CREDENTIALS_NOT_CONFIGURED", "Credential storage is not configured")
	default:
		response.Internal(c, err)
	}
}

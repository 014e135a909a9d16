package invoices

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
	g := api.Group("/invoices")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), InvoiceFilter{
		Status:    domain.InvoiceStatus(c.Query("status")),
		ClientID:  c.Query("clientId"),
		ProjectID: c.Query("projectId"),
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	inv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if !request.BindJSON(c, &req) {
		return
	}
	inv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inv)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateInvoiceRequest
	if !request.BindJSON(c, &req) {
		return
	}
	inv, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if request.FieldError(c, err) {
		return
	}
	if errors.Is(err, ErrInvoiceNotFound) {
		response.Error(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found")
		return
	}
	response.Internal(c, err)
}

package partners

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
	g := api.Group("/partners")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)

		g.GET("/:id/referrals", h.ListReferrals)
		g.POST("/:id/referrals", h.CreateReferral)
		g.GET("/:id/payouts", h.ListPayouts)
		g.POST("/:id/payouts", h.CreatePayout)
	}
	api.PATCH("/referrals/:id", h.UpdateReferral)
	api.PATCH("/payouts/:id", h.UpdatePayout)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), PartnerFilter{
		Status: domain.PartnerStatus(c.Query("status")),
		Type:   domain.PartnerType(c.Query("type")),
		Query:  c.Query("q"),
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
	var req CreatePartnerRequest
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
	var req UpdatePartnerRequest
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

func (h *Handler) ListReferrals(c *gin.Context) {
	list, err := h.service.Referrals(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreateReferral(c *gin.Context) {
	var req CreateReferralRequest
	if !request.BindJSON(c, &req) {
		return
	}
	r, err := h.service.CreateReferral(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) UpdateReferral(c *gin.Context) {
	var req UpdateReferralRequest
	if !request.BindJSON(c, &req) {
		return
	}
	r, err := h.service.UpdateReferral(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) ListPayouts(c *gin.Context) {
	list, err := h.service.Payouts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) CreatePayout(c *gin.Context) {
	var req CreatePayoutRequest
	if !request.BindJSON(c, &req) {
		return
	}
	p, err := h.service.CreatePayout(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) UpdatePayout(c *gin.Context) {
	var req UpdatePayoutRequest
	if !request.BindJSON(c, &req) {
		return
	}
	p, err := h.service.UpdatePayout(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if request.FieldError(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrPartnerNotFound):
		response.Error(c, http.StatusNotFound, "PARTNER_NOT_FOUND", "Partner not found")
	case errors.Is(err, ErrReferralNotFound):
		response.Error(c, http.StatusNotFound, "REFERRAL_NOT_FOUND", "Referral not found")
	case errors.Is(err, ErrPayoutNotFound):
		response.Error(c, http.StatusNotFound, "PAYOUT_NOT_FOUND", "Payout not found")
	case errors.Is(err, ErrTrackingCodeConflict):
		response.Error(c, http.StatusConflict, "TRACKING_CODE_EXISTS", "Tracking code is already in use")
	default:
		response.Internal(c, err)
	}
}

package team

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	members := api.Group("/team-members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.CreateMember)
		members.GET("/:id", h.GetMember)
		members.PATCH("/:id", h.UpdateMember)
		members.DELETE("/:id", h.DeleteMember)
	}

	roles := api.Group("/team-roles")
	{
		roles.GET("", h.ListRoles)
		roles.POST("", h.CreateRole)
		roles.PATCH("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
	}
}

func (h *Handler) ListMembers(c *gin.Context) {
	list, err := h.service.Members(c.Request.Context(), MemberFilter{
		RoleID: c.Query("roleId"),
		Query:  c.Query("q"),
	})
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetMember(c *gin.Context) {
	m, err := h.service.Member(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if !request.BindJSON(c, &req) {
		return
	}
	m, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if !request.BindJSON(c, &req) {
		return
	}
	m, err := h.service.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) DeleteMember(c *gin.Context) {
	if err := h.service.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.service.Roles(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles)
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if !request.BindJSON(c, &req) {
		return
	}
	r, err := h.service.CreateRole(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if !request.BindJSON(c, &req) {
		return
	}
	r, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.service.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
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
	case errors.Is(err, ErrMemberNotFound):
		response.Error(c, http.StatusNotFound, "TEAM_MEMBER_NOT_FOUND", "Team member not found")
	case errors.Is(err, ErrRoleNotFound):
		response.Error(c, http.StatusNotFound, "TEAM_ROLE_NOT_FOUND", "Team role not found")
	case errors.Is(err, ErrEmailExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email is already in use")
	case errors.Is(err, ErrRoleNameExists):
		response.Error(c, http.StatusConflict, "DUPLICATE", "A role with this name already exists")
	default:
		response.Internal(c, err)
	}
}

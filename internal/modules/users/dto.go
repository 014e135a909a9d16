package users

import "agencyops/internal/domain"

type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Email    string          `json:"email" validate:"required,email,max=254"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=OWNER ADMIN PROJECT_MANAGER DEVELOPER SUPPORT FINANCE PARTNER_MANAGER"`
	Timezone string          `json:"timezone" validate:"omitempty,max=64"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string          `json:"email" validate:"omitempty,email,max=254"`
	Password *string          `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *domain.UserRole `json:"role" validate:"omitempty,oneof=OWNER ADMIN PROJECT_MANAGER DEVELOPER SUPPORT FINANCE PARTNER_MANAGER"`
	Timezone *string          `json:"timezone" validate:"omitempty,max=64"`
}

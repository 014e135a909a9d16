package team

import "errors"

var (
	ErrMemberNotFound = errors.New("team member not found")
	ErrRoleNotFound   = errors.New("team role not found")
	ErrEmailExists    = errors.New("email already in use")
	ErrRoleNameExists = errors.New("role name already in use")
)

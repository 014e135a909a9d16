package projects

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

package tickets

import "errors"

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

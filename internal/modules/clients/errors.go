package clients

import "errors"

var (
	ErrClientNotFound           = errors.New("client not found")
	ErrAccessNotFound           = errors.New("client access not found")
	ErrEmailExists              = errors.New("contact email already exists")
	ErrCredentialsNotConfigured = errors.New("credentials key not configured")
)

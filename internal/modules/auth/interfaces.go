package auth

import (
	"context"

	"agencyops/internal/domain"
)

// UserReader is the part of the user repository auth needs.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TokenIssuer is satisfied by *jwt.Service.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

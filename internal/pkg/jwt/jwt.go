package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the lifetime of a session token.
const SessionTTL = 7 * 24 * time.Hour

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Session struct {
	UserID    string
	ExpiresAt time.Time
}

func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token whose subject is the user id.
func (s *Service) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty subject")
	}
	now := s.now()
	claims := jwtlib.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns false for malformed, expired or foreign tokens. It never panics.
func (s *Service) Verify(tokenStr string) (*Session, bool) {
	if tokenStr == "" {
		return nil, false
	}

	claims := &jwtlib.RegisteredClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, false
	}

	return &Session{UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, true
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

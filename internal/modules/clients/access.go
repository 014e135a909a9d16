package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agencyops/internal/domain"
)

// Accesses lists the client's stored credentials with passwords opened.
func (s *Service) Accesses(ctx context.Context, clientID string) ([]domain.ClientAccess, error) {
	if s.keys == nil {
		return nil, ErrCredentialsNotConfigured
	}
	if err := s.ensureClient(ctx, clientID); err != nil {
		return nil, err
	}

	list := []domain.ClientAccess{}
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("service ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	for i := range list {
		a := &list[i]
		if a.PasswordCiphertext == "" {
			continue
		}
		plain, err := s.keys.Open(a.PasswordCiphertext, a.KeyID, a.ID)
		if err != nil {
			return nil, fmt.Errorf("open access %s: %w", a.ID, err)
		}
		a.Password = plain
	}
	return list, nil
}

// CreateAccess seals the password with the access id as associated data, so a
// ciphertext copied onto another row does not open.
func (s *Service) CreateAccess(ctx context.Context, clientID string, req CreateAccessRequest) (*domain.ClientAccess, error) {
	if s.keys == nil {
		return nil, ErrCredentialsNotConfigured
	}
	if err := s.ensureClient(ctx, clientID); err != nil {
		return nil, err
	}

	a := &domain.ClientAccess{
		ClientID: clientID,
		Service:  strings.TrimSpace(req.Service),
		Username: strings.TrimSpace(req.Username),
		URL:      strings.TrimSpace(req.URL),
		Notes:    req.Notes,
	}
	a.ID = uuid.NewString()

	if req.Password != "" {
		ct, keyID, err := s.keys.Seal(req.Password, a.ID)
		if err != nil {
			return nil, err
		}
		a.PasswordCiphertext = ct
		a.KeyID = keyID
	}

	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	a.Password = req.Password
	return a, nil
}

func (s *Service) DeleteAccess(ctx context.Context, clientID, accessID string) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", accessID, clientID).
		Delete(&domain.ClientAccess{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAccessNotFound
	}
	return nil
}

func (s *Service) ensureClient(ctx context.Context, id string) error {
	var c domain.Client
	err := s.db.WithContext(ctx).Select("id").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrClientNotFound
	}
	return err
}

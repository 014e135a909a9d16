package partners

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agencyops/internal/domain"
)

func (s *Service) Referrals(ctx context.Context, partnerID string) ([]domain.PartnerReferral, error) {
	if _, err := s.partner(ctx, s.db, partnerID); err != nil {
		return nil, err
	}
	list := []domain.PartnerReferral{}
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) CreateReferral(ctx context.Context, partnerID string, req CreateReferralRequest) (*domain.PartnerReferral, error) {
	p, err := s.partner(ctx, s.db, partnerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRef(ctx, &domain.Client{}, "clientId", req.ClientID); err != nil {
		return nil, err
	}
	if err := s.checkRef(ctx, &domain.Project{}, "projectId", req.ProjectID); err != nil {
		return nil, err
	}

	rate := p.CommissionRate
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}
	r := &domain.PartnerReferral{
		PartnerID:      p.ID,
		ClientID:       blankToNil(req.ClientID),
		ProjectID:      blankToNil(req.ProjectID),
		Status:         req.Status,
		CommissionRate: rate,
		CommissionBase: req.CommissionBase,
		Currency:       currency(req.Currency),
		Notes:          req.Notes,
	}
	if r.Status == "" {
		r.Status = domain.ReferralPending
	}
	if req.CommissionAmount != nil {
		r.CommissionAmount = *req.CommissionAmount
	} else {
		r.CommissionAmount = Commission(r.CommissionBase, r.CommissionRate)
	}

	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReferral recomputes the amount when base or rate change and no
// explicit amount is sent.
func (s *Service) UpdateReferral(ctx context.Context, id string, req UpdateReferralRequest) (*domain.PartnerReferral, error) {
	var r domain.PartnerReferral
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	if err := s.checkRef(ctx, &domain.Client{}, "clientId", req.ClientID); err != nil {
		return nil, err
	}
	if err := s.checkRef(ctx, &domain.Project{}, "projectId", req.ProjectID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.ClientID != nil {
		fields["client_id"] = blankToNil(req.ClientID)
	}
	if req.ProjectID != nil {
		fields["project_id"] = blankToNil(req.ProjectID)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Currency != nil {
		fields["currency"] = currency(*req.Currency)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	base, rate := r.CommissionBase, r.CommissionRate
	if req.CommissionBase != nil {
		base = *req.CommissionBase
		fields["commission_base"] = base
	}
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
		fields["commission_rate"] = rate
	}
	switch {
	case req.CommissionAmount != nil:
		fields["commission_amount"] = *req.CommissionAmount
	case req.CommissionBase != nil || req.CommissionRate != nil:
		fields["commission_amount"] = Commission(base, rate)
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&r).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var out domain.PartnerReferral
	if err := s.db.WithContext(ctx).Preload("Client").Preload("Project").First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

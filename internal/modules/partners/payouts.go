package partners

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/pkg/validator"
)

func (s *Service) Payouts(ctx context.Context, partnerID string) ([]domain.PartnerPayout, error) {
	if _, err := s.partner(ctx, s.db, partnerID); err != nil {
		return nil, err
	}
	list := []domain.PartnerPayout{}
	err := s.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) CreatePayout(ctx context.Context, partnerID string, req CreatePayoutRequest) (*domain.PartnerPayout, error) {
	p, err := s.partner(ctx, s.db, partnerID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.PayoutDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferral(ctx, p.ID, req.ReferralID); err != nil {
		return nil, err
	}

	po := &domain.PartnerPayout{
		PartnerID:  p.ID,
		ReferralID: blankToNil(req.ReferralID),
		Amount:     req.Amount,
		Currency:   currency(req.Currency),
		Status:     req.Status,
		PayoutDate: date,
		Method:     req.Method,
		Notes:      req.Notes,
	}
	if po.Status == "" {
		po.Status = domain.PayoutPending
	}

	if err := s.db.WithContext(ctx).Create(po).Error; err != nil {
		return nil, err
	}
	return po, nil
}

func (s *Service) UpdatePayout(ctx context.Context, id string, req UpdatePayoutRequest) (*domain.PartnerPayout, error) {
	var po domain.PartnerPayout
	if err := s.db.WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}

	fields := map[string]any{}
	if req.ReferralID != nil {
		if err := s.checkReferral(ctx, po.PartnerID, req.ReferralID); err != nil {
			return nil, err
		}
		fields["referral_id"] = blankToNil(req.ReferralID)
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Currency != nil {
		fields["currency"] = currency(*req.Currency)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.PayoutDate != nil {
		date, err := parseDate(req.PayoutDate)
		if err != nil {
			return nil, err
		}
		fields["payout_date"] = date
	}
	if req.Method != nil {
		fields["method"] = *req.Method
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&po).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var out domain.PartnerPayout
	if err := s.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// checkReferral requires the referral to belong to the same partner.
func (s *Service) checkReferral(ctx context.Context, partnerID string, referralID *string) error {
	id := blankToNil(referralID)
	if id == nil {
		return nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.PartnerReferral{}).
		Where("id = ? AND partner_id = ?", *id, partnerID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return validator.InvalidField("referralId", "does not match a referral of this partner")
	}
	return nil
}

func parseDate(v *string) (*time.Time, error) {
	t, err := domain.ParseOptionalDate(v)
	if err != nil {
		return nil, validator.InvalidField("payoutDate", "must be a date like 2026-01-31")
	}
	return t, nil
}

package partners

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"agencyops/internal/database"
	"agencyops/internal/domain"
	"agencyops/internal/pkg/validator"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, f PartnerFilter) ([]domain.Partner, error) {
	q := s.db.WithContext(ctx).Model(&domain.Partner{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(tracking_code) LIKE ?",
			like, like, like, like)
	}

	list := []domain.Partner{}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PartnerDetail, error) {
	var p domain.Partner
	err := s.db.WithContext(ctx).
		Preload("Referrals", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Referrals.Client").
		Preload("Referrals.Project").
		Preload("Payouts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return &PartnerDetail{Partner: &p, Totals: ComputeTotals(p.Referrals, p.Payouts)}, nil
}

func (s *Service) Create(ctx context.Context, req CreatePartnerRequest) (*domain.Partner, error) {
	p := &domain.Partner{
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Status:         req.Status,
		ContactName:    strings.TrimSpace(req.ContactName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
		TrackingCode:   trackingCode(req.TrackingCode),
		CommissionRate: req.CommissionRate,
		Notes:          req.Notes,
	}
	if p.Status == "" {
		p.Status = domain.PartnerActive
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrTrackingCodeConflict
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdatePartnerRequest) (*PartnerDetail, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ContactName != nil {
		fields["contact_name"] = strings.TrimSpace(*req.ContactName)
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.TrackingCode != nil {
		fields["tracking_code"] = trackingCode(*req.TrackingCode)
	}
	if req.CommissionRate != nil {
		fields["commission_rate"] = *req.CommissionRate
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) > 0 {
		tx := s.db.WithContext(ctx).Model(&domain.Partner{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			if database.IsUniqueViolation(tx.Error) {
				return nil, ErrTrackingCodeConflict
			}
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, ErrPartnerNotFound
		}
	}
	return s.Get(ctx, id)
}

// Delete cascades to referrals and payouts through the schema.
func (s *Service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.Partner{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrPartnerNotFound
	}
	return nil
}

// ComputeTotals sums won commissions and paid payouts.
func ComputeTotals(referrals []domain.PartnerReferral, payouts []domain.PartnerPayout) Totals {
	var t Totals
	for _, r := range referrals {
		if r.Status == domain.ReferralWon {
			t.Earned += r.CommissionAmount
		}
	}
	for _, p := range payouts {
		if p.Status == domain.PayoutPaid {
			t.Paid += p.Amount
		}
	}
	t.Earned = round2(t.Earned)
	t.Paid = round2(t.Paid)
	t.Pending = round2(t.Earned - t.Paid)
	return t
}

// Commission is base × rate / 100, rounded to cents.
func Commission(base, rate float64) float64 {
	return round2(base * rate / 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func trackingCode(code string) *string {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	return &code
}

func currency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (s *Service) partner(ctx context.Context, db *gorm.DB, id string) (*domain.Partner, error) {
	var p domain.Partner
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) checkRef(ctx context.Context, model any, field string, id *string) error {
	id = blankToNil(id)
	if id == nil {
		return nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return validator.InvalidField(field, "does not match an existing record")
	}
	return nil
}

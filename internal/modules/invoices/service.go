package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/pkg/validator"
)

const defaultCurrency = "USD"

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func (s *Service) List(ctx context.Context, f InvoiceFilter) ([]domain.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&domain.Invoice{}).Preload("Client").Preload("Project")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}

	list := []domain.Invoice{}
	if err := q.Order("issue_date DESC").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := s.db.WithContext(ctx).Preload("Client").Preload("Project").First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Create defaults the issue date to today (UTC) and the currency to USD.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error) {
	issue, err := parseDate("issueDate", req.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, &req.ClientID, req.ProjectID); err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		Number:    strings.TrimSpace(req.Number),
		Amount:    req.Amount,
		Currency:  currency(req.Currency),
		Status:    req.Status,
		DueDate:   due,
		ClientID:  req.ClientID,
		ProjectID: blankToNil(req.ProjectID),
	}
	if issue != nil {
		inv.IssueDate = *issue
	} else {
		now := s.now().UTC()
		inv.IssueDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}

	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*domain.Invoice, error) {
	fields := map[string]any{}
	if req.Number != nil {
		fields["number"] = strings.TrimSpace(*req.Number)
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
	if req.IssueDate != nil {
		issue, err := parseDate("issueDate", req.IssueDate)
		if err != nil {
			return nil, err
		}
		if issue == nil {
			return nil, validator.InvalidField("issueDate", "cannot be cleared")
		}
		fields["issue_date"] = *issue
	}
	if req.DueDate != nil {
		due, err := parseDate("dueDate", req.DueDate)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = due
	}
	if req.ProjectID != nil {
		fields["project_id"] = blankToNil(req.ProjectID)
	}
	if err := s.checkRefs(ctx, nil, req.ProjectID); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		tx := s.db.WithContext(ctx).Model(&domain.Invoice{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, ErrInvoiceNotFound
		}
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (s *Service) checkRefs(ctx context.Context, clientID, projectID *string) error {
	db := s.db.WithContext(ctx)
	if clientID != nil {
		var n int64
		if err := db.Model(&domain.Client{}).Where("id = ?", *clientID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return validator.InvalidField("clientId", "does not match a client")
		}
	}
	if id := blankToNil(projectID); id != nil {
		var n int64
		if err := db.Model(&domain.Project{}).Where("id = ?", *id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return validator.InvalidField("projectId", "does not match a project")
		}
	}
	return nil
}

func currency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}

func parseDate(field string, v *string) (*time.Time, error) {
	t, err := domain.ParseOptionalDate(v)
	if err != nil {
		return nil, validator.InvalidField(field, "must be a date like 2026-01-31")
	}
	return t, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

package clients

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"agencyops/internal/database"
	"agencyops/internal/domain"
	"agencyops/internal/pkg/secretbox"
	"agencyops/internal/pkg/validator"
)

type Service struct {
	db   *gorm.DB
	keys *secretbox.Keyring
}

// NewService takes a nil keyring when no credentials key is configured; the
// access endpoints then answer "not configured".
func NewService(db *gorm.DB, keys *secretbox.Keyring) *Service {
	return &Service{db: db, keys: keys}
}

func (s *Service) List(ctx context.Context, f ClientFilter) ([]domain.Client, error) {
	q := s.db.WithContext(ctx).Model(&domain.Client{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(contact_email) LIKE ?", like, like, like)
	}

	list := []domain.Client{}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get loads the client with its projects, tickets, invoices and accesses.
// Access passwords are never included here.
func (s *Service) Get(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := s.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("issue_date DESC") }).
		Preload("Accesses", func(db *gorm.DB) *gorm.DB { return db.Order("service ASC") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts the client and one template project per distinct service
// type in a single transaction.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	types, err := domain.ServiceTypes(req.Services)
	if err != nil {
		return nil, validator.InvalidField("services", err.Error())
	}

	c := &domain.Client{
		Name:         req.DisplayName(),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Country:      strings.TrimSpace(req.Country),
		Industry:     strings.TrimSpace(req.Industry),
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if c.Status == "" {
		c.Status = domain.ClientLead
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		projects, err := provision(tx, c, types, nil)
		if err != nil {
			return err
		}
		c.Projects = projects
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return c, nil
}

// Update applies the present fields. Services provision only project types
// the client does not have yet.
func (s *Service) Update(ctx context.Context, id string, req UpdateClientRequest) (*domain.Client, error) {
	types, err := domain.ServiceTypes(req.Services)
	if err != nil {
		return nil, validator.InvalidField("services", err.Error())
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Client
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return err
		}

		if fields := req.fields(); len(fields) > 0 {
			if err := tx.Model(&c).Updates(fields).Error; err != nil {
				return err
			}
		}

		if len(types) == 0 {
			return nil
		}
		var existing []domain.ProjectType
		if err := tx.Model(&domain.Project{}).
			Where("client_id = ?", c.ID).
			Distinct("type").
			Pluck("type", &existing).Error; err != nil {
			return err
		}
		_, err := provision(tx, &c, types, existing)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrClientNotFound
		case database.IsUniqueViolation(err):
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// provision creates a DISCOVERY project for every type not in skip.
func provision(tx *gorm.DB, c *domain.Client, types []domain.ProjectType, skip []domain.ProjectType) ([]domain.Project, error) {
	have := make(map[domain.ProjectType]bool, len(skip))
	for _, t := range skip {
		have[t] = true
	}

	created := make([]domain.Project, 0, len(types))
	for _, t := range types {
		if have[t] {
			continue
		}
		tpl, ok := domain.TemplateFor(t, c.Name)
		if !ok {
			continue
		}
		p := domain.Project{
			Name:        tpl.Name,
			Type:        tpl.Type,
			Status:      domain.ProjectDiscovery,
			Description: tpl.Description,
			ClientID:    c.ID,
		}
		if err := tx.Create(&p).Error; err != nil {
			return nil, err
		}
		have[t] = true
		created = append(created, p)
	}
	return created, nil
}

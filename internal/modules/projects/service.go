package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/notification"
	"agencyops/internal/pkg/validator"
	"agencyops/internal/repository"
)

// Notifier sends the team a best-effort project notification.
type Notifier interface {
	NotifyProject(ctx context.Context, projectID string, update *domain.ProjectUpdate) notification.Outcome
}

type Service struct {
	db       *gorm.DB
	notifier Notifier
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// List orders by due date with undated projects last, newest first within ties.
func (s *Service) List(ctx context.Context, f ProjectFilter) ([]domain.Project, error) {
	q := s.db.WithContext(ctx).Model(&domain.Project{}).Preload("Client").Preload("Manager")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	list := []domain.Project{}
	err := q.
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ProjectDetail, error) {
	var p domain.Project
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Manager").
		Preload("Tickets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("issue_date DESC") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &ProjectDetail{Project: &p, Timeline: domain.ProjectTimeline(p.Status)}, nil
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, &req.ClientID, req.ManagerID); err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:        strings.TrimSpace(req.Name),
		Type:        req.Type,
		Status:      req.Status,
		StartDate:   start,
		DueDate:     due,
		Description: req.Description,
		ClientID:    req.ClientID,
		ManagerID:   blankToNil(req.ManagerID),
	}
	if p.Status == "" {
		p.Status = domain.ProjectDiscovery
	}

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectDetail, error) {
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
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StartDate != nil {
		t, err := parseDate("startDate", req.StartDate)
		if err != nil {
			return nil, err
		}
		fields["start_date"] = t
	}
	if req.DueDate != nil {
		t, err := parseDate("dueDate", req.DueDate)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = t
	}
	if req.ClientID != nil {
		fields["client_id"] = *req.ClientID
	}
	if req.ManagerID != nil {
		fields["manager_id"] = blankToNil(req.ManagerID)
	}
	if err := s.checkRefs(ctx, req.ClientID, req.ManagerID); err != nil {
		return nil, err
	}

	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *Service) Status(ctx context.Context, id string) (*StatusView, error) {
	var p domain.Project
	if err := s.db.WithContext(ctx).Select("id", "status").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &StatusView{
		Status:      p.Status,
		StatusLabel: p.StatusLabel,
		Timeline:    domain.ProjectTimeline(p.Status),
	}, nil
}

// ChangeStatus moves the project and appends a STATUS_CHANGE entry in one
// transaction. The team notification runs after commit and cannot fail it.
func (s *Service) ChangeStatus(ctx context.Context, id, userID string, req ChangeStatusRequest) (*StatusChangeResult, error) {
	var (
		p      domain.Project
		update domain.ProjectUpdate
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		prev := p.Status
		if !domain.ProjectStates.CanTransition(prev, req.Status) {
			return ErrInvalidTransition
		}

		if err := tx.Model(&p).Update("status", req.Status).Error; err != nil {
			return err
		}

		author, err := repository.LookupAuthor(ctx, tx, userID)
		if err != nil {
			return err
		}

		message := strings.TrimSpace(req.Note)
		if message == "" {
			message = fmt.Sprintf("Status changed from %s to %s.",
				domain.ProjectStatusLabels.Label(prev), domain.ProjectStatusLabels.Label(req.Status))
		}
		update = domain.ProjectUpdate{
			ProjectID:   p.ID,
			Type:        domain.ProjectUpdateStatusChange,
			Title:       "Status: " + domain.ProjectStatusLabels.Label(req.Status),
			Message:     message,
			AuthorID:    author.ID,
			AuthorName:  author.Name,
			AuthorEmail: author.Email,
			NotifyTeam:  req.NotifyTeam,
		}
		return tx.Create(&update).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	p.Status = req.Status
	p.StatusLabel = domain.ProjectStatusLabels.Label(p.Status)
	res := &StatusChangeResult{
		Project:  &p,
		Timeline: domain.ProjectTimeline(p.Status),
		Update:   &update,
	}
	if req.NotifyTeam {
		res.Notification = s.notify(ctx, p.ID, &update)
	}
	return res, nil
}

func (s *Service) Updates(ctx context.Context, projectID string) ([]domain.ProjectUpdate, error) {
	if err := s.exists(ctx, projectID); err != nil {
		return nil, err
	}
	list := []domain.ProjectUpdate{}
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) AddUpdate(ctx context.Context, projectID, userID string, req CreateUpdateRequest) (*UpdateResult, error) {
	if err := s.exists(ctx, projectID); err != nil {
		return nil, err
	}
	author, err := repository.LookupAuthor(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	u := &domain.ProjectUpdate{
		ProjectID:   projectID,
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Message:     req.Message,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		NotifyTeam:  req.NotifyTeam,
	}
	if u.Type == "" {
		u.Type = domain.ProjectUpdateNote
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}

	res := &UpdateResult{Update: u}
	if req.NotifyTeam {
		res.Notification = s.notify(ctx, projectID, u)
	}
	return res, nil
}

func (s *Service) notify(ctx context.Context, projectID string, u *domain.ProjectUpdate) *notification.Outcome {
	if s.notifier == nil {
		out := notification.Outcome{Skipped: true, Reason: notification.ReasonMailNotConfigured}
		return &out
	}
	out := s.notifier.NotifyProject(ctx, projectID, u)
	return &out
}

func (s *Service) exists(ctx context.Context, id string) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// checkRefs validates the referenced client and manager if present.
func (s *Service) checkRefs(ctx context.Context, clientID, managerID *string) error {
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
	if id := blankToNil(managerID); id != nil {
		var n int64
		if err := db.Model(&domain.User{}).Where("id = ?", *id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return validator.InvalidField("managerId", "does not match a user")
		}
	}
	return nil
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

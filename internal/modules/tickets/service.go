package tickets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agencyops/internal/domain"
	"agencyops/internal/notification"
	"agencyops/internal/pkg/validator"
	"agencyops/internal/repository"
)

// Notifier delivers the client notification for a ticket update.
type Notifier interface {
	NotifyTicket(ctx context.Context, ticketID string, update *domain.TicketUpdate) notification.Outcome
}

type Service struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier, now: time.Now}
}

// List is newest first. A numeric query also matches the ticket number.
func (s *Service) List(ctx context.Context, f TicketFilter) ([]domain.Ticket, error) {
	q := s.db.WithContext(ctx).Model(&domain.Ticket{}).
		Preload("Client").
		Preload("Project").
		Preload("Assignee")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if n, err := strconv.ParseInt(strings.TrimPrefix(term, "#"), 10, 64); err == nil {
			q = q.Where("LOWER(title) LIKE ? OR ticket_number = ?", like, n)
		} else {
			q = q.Where("LOWER(title) LIKE ?", like)
		}
	}

	list := []domain.Ticket{}
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*TicketDetail, error) {
	var t domain.Ticket
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Preload("Assignee").
		Preload("Watchers", func(db *gorm.DB) *gorm.DB { return db.Order("email ASC") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &TicketDetail{Ticket: &t, Timeline: domain.TicketTimeline(t.Status)}, nil
}

// Create allocates the next ticket number and stores the watchers in the
// same transaction; the unique index on ticket_number backs the allocation.
func (s *Service) Create(ctx context.Context, req CreateTicketRequest) (*domain.Ticket, error) {
	due, err := parseDate("dueAt", req.DueAt)
	if err != nil {
		return nil, err
	}
	clientID := req.ClientID
	if err := s.checkRefs(ctx, &clientID, req.ProjectID, req.AssigneeID); err != nil {
		return nil, err
	}

	t := &domain.Ticket{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Source:      strings.TrimSpace(req.Source),
		ServiceArea: strings.TrimSpace(req.ServiceArea),
		Environment: strings.TrimSpace(req.Environment),
		DueAt:       due,
		ClientID:    req.ClientID,
		ProjectID:   blankToNil(req.ProjectID),
		AssigneeID:  blankToNil(req.AssigneeID),
	}
	if t.Status == "" {
		t.Status = domain.TicketNew
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !t.Status.IsOpen() {
		now := s.now().UTC()
		t.ClosedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&domain.Ticket{}).
			Select("COALESCE(MAX(ticket_number), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		t.TicketNumber = last + 1

		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		watchers, err := replaceWatchers(tx, t.ID, req.Watchers)
		if err != nil {
			return err
		}
		t.Watchers = watchers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateTicketRequest) (*TicketDetail, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.Source != nil {
		fields["source"] = strings.TrimSpace(*req.Source)
	}
	if req.ServiceArea != nil {
		fields["service_area"] = strings.TrimSpace(*req.ServiceArea)
	}
	if req.Environment != nil {
		fields["environment"] = strings.TrimSpace(*req.Environment)
	}
	if req.DueAt != nil {
		due, err := parseDate("dueAt", req.DueAt)
		if err != nil {
			return nil, err
		}
		fields["due_at"] = due
	}
	if req.ProjectID != nil {
		fields["project_id"] = blankToNil(req.ProjectID)
	}
	if req.AssigneeID != nil {
		fields["assignee_id"] = blankToNil(req.AssigneeID)
	}
	if err := s.checkRefs(ctx, nil, req.ProjectID, req.AssigneeID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t domain.Ticket
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}
		if req.Status != nil {
			if !domain.TicketStates.CanTransition(t.Status, *req.Status) {
				return ErrInvalidTransition
			}
			fields["status"] = *req.Status
			fields["closed_at"] = s.closedAt(t.ClosedAt, *req.Status)
		}
		if len(fields) > 0 {
			if err := tx.Model(&t).Updates(fields).Error; err != nil {
				return err
			}
		}
		if req.Watchers != nil {
			if _, err := replaceWatchers(tx, t.ID, *req.Watchers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&domain.Ticket{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (s *Service) Updates(ctx context.Context, ticketID string) ([]domain.TicketUpdate, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Ticket{}).Where("id = ?", ticketID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTicketNotFound
	}

	list := []domain.TicketUpdate{}
	if err := s.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AddUpdate appends to the ticket log, applying a status change in the same
// transaction. With notifyClient the dispatcher runs after commit; its
// outcome is reported but never fails the request.
func (s *Service) AddUpdate(ctx context.Context, ticketID, userID string, req CreateUpdateRequest) (*UpdateResult, error) {
	var (
		t domain.Ticket
		u domain.TicketUpdate
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", ticketID).Error; err != nil {
			return err
		}
		author, err := repository.LookupAuthor(ctx, tx, userID)
		if err != nil {
			return err
		}

		u = domain.TicketUpdate{
			TicketID:     t.ID,
			Type:         req.Type,
			Message:      req.Message,
			Public:       req.Public,
			NotifyClient: req.NotifyClient,
			AuthorID:     author.ID,
			AuthorName:   author.Name,
			AuthorEmail:  author.Email,
		}

		if req.Status != nil && *req.Status != t.Status {
			next := *req.Status
			if !domain.TicketStates.CanTransition(t.Status, next) {
				return ErrInvalidTransition
			}
			prev := t.Status
			closedAt := s.closedAt(t.ClosedAt, next)
			if err := tx.Model(&t).Updates(map[string]any{
				"status":    next,
				"closed_at": closedAt,
			}).Error; err != nil {
				return err
			}
			t.Status = next
			t.ClosedAt = closedAt
			u.PreviousStatus = &prev
			u.NextStatus = &next
			if u.Type == "" {
				u.Type = domain.TicketUpdateStatusChange
			}
		}
		if u.Type == "" {
			u.Type = domain.TicketUpdateNote
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	t.StatusLabel = domain.TicketStatusLabels.Label(t.Status)
	res := &UpdateResult{Update: &u, Ticket: &t}
	if req.NotifyClient {
		out := notification.Outcome{Skipped: true, Reason: notification.ReasonMailNotConfigured}
		if s.notifier != nil {
			out = s.notifier.NotifyTicket(ctx, t.ID, &u)
		}
		res.Notification = &out
	}
	return res, nil
}

// closedAt keeps an existing stamp while the ticket stays resolved or closed
// and clears it when the ticket reopens.
func (s *Service) closedAt(current *time.Time, next domain.TicketStatus) *time.Time {
	if next.IsOpen() {
		return nil
	}
	if current != nil {
		return current
	}
	now := s.now().UTC()
	return &now
}

// replaceWatchers swaps the ticket's watcher set for the given list, deduped
// by lower-cased email with the first occurrence winning.
func replaceWatchers(tx *gorm.DB, ticketID string, in []WatcherInput) ([]domain.TicketWatcher, error) {
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&domain.TicketWatcher{}).Error; err != nil {
		return nil, err
	}

	watchers := dedupeWatchers(ticketID, in)
	if len(watchers) == 0 {
		return watchers, nil
	}
	if err := tx.Create(&watchers).Error; err != nil {
		return nil, err
	}
	return watchers, nil
}

func dedupeWatchers(ticketID string, in []WatcherInput) []domain.TicketWatcher {
	seen := make(map[string]bool, len(in))
	out := make([]domain.TicketWatcher, 0, len(in))
	for _, w := range in {
		email := repository.NormalizeEmail(w.Email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		typ := w.Type
		if typ == "" {
			typ = domain.WatcherClient
		}
		out = append(out, domain.TicketWatcher{
			TicketID: ticketID,
			Email:    email,
			Name:     strings.TrimSpace(w.Name),
			Type:     typ,
		})
	}
	return out
}

func (s *Service) checkRefs(ctx context.Context, clientID, projectID, assigneeID *string) error {
	db := s.db.WithContext(ctx)
	check := func(model any, field string, id *string, msg string) error {
		if id == nil || strings.TrimSpace(*id) == "" {
			return nil
		}
		var n int64
		if err := db.Model(model).Where("id = ?", strings.TrimSpace(*id)).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return validator.InvalidField(field, msg)
		}
		return nil
	}

	if err := check(&domain.Client{}, "clientId", clientID, "does not match a client"); err != nil {
		return err
	}
	if err := check(&domain.Project{}, "projectId", projectID, "does not match a project"); err != nil {
		return err
	}
	return check(&domain.User{}, "assigneeId", assigneeID, "does not match a user")
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

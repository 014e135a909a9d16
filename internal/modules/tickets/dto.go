package tickets

import (
	"agencyops/internal/domain"
	"agencyops/internal/notification"
)

type WatcherInput struct {
	Email string             `json:"email" validate:"required,email,max=254"`
	Name  string             `json:"name" validate:"max=120"`
	Type  domain.WatcherType `json:"type" validate:"omitempty,oneof=CLIENT INTERNAL"`
}

type CreateTicketRequest struct {
	Title       string                `json:"title" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=20000"`
	Status      domain.TicketStatus   `json:"status" validate:"omitempty,oneof=NEW IN_PROGRESS WAITING_CLIENT RESOLVED CLOSED"`
	Priority    domain.TicketPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Source      string                `json:"source" validate:"max=40"`
	ServiceArea string                `json:"serviceArea" validate:"max=80"`
	Environment string                `json:"environment" validate:"max=40"`
	DueAt       *string               `json:"dueAt"`
	ClientID    string                `json:"clientId" validate:"required"`
	ProjectID   *string               `json:"projectId"`
	AssigneeID  *string               `json:"assigneeId"`
	Watchers    []WatcherInput        `json:"watchers" validate:"max=50,dive"`
}

// UpdateTicketRequest is partial. A non-nil Watchers replaces the whole set.
type UpdateTicketRequest struct {
	Title       *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string                `json:"description" validate:"omitempty,max=20000"`
	Status      *domain.TicketStatus   `json:"status" validate:"omitempty,oneof=NEW IN_PROGRESS WAITING_CLIENT RESOLVED CLOSED"`
	Priority    *domain.TicketPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Source      *string                `json:"source" validate:"omitempty,max=40"`
	ServiceArea *string                `json:"serviceArea" validate:"omitempty,max=80"`
	Environment *string                `json:"environment" validate:"omitempty,max=40"`
	DueAt       *string                `json:"dueAt"`
	ProjectID   *string                `json:"projectId"`
	AssigneeID  *string                `json:"assigneeId"`
	Watchers    *[]WatcherInput        `json:"watchers" validate:"omitempty,max=50,dive"`
}

type CreateUpdateRequest struct {
	Type         domain.TicketUpdateType `json:"type" validate:"omitempty,oneof=NOTE STATUS_CHANGE INCIDENT"`
	Message      string                  `json:"message" validate:"required,max=20000"`
	Public       bool                    `json:"public"`
	NotifyClient bool                    `json:"notifyClient"`
	Status       *domain.TicketStatus    `json:"status" validate:"omitempty,oneof=NEW IN_PROGRESS WAITING_CLIENT RESOLVED CLOSED"`
}

type TicketFilter struct {
	Status    domain.TicketStatus
	Priority  domain.TicketPriority
	ClientID  string
	ProjectID string
	Query     string
}

type TicketDetail struct {
	*domain.Ticket
	Timeline []domain.TimelineStep `json:"timeline"`
}

type UpdateResult struct {
	Update       *domain.TicketUpdate  `json:"update"`
	Ticket       *domain.Ticket        `json:"ticket"`
	Notification *notification.Outcome `json:"notification,omitempty"`
}

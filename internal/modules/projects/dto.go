package projects

import (
	"agencyops/internal/domain"
	"agencyops/internal/notification"
)

type CreateProjectRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Type        domain.ProjectType   `json:"type" validate:"required,oneof=website ecommerce seo marketing support branding app other"`
	Status      domain.ProjectStatus `json:"status" validate:"omitempty,oneof=DISCOVERY IN_PROGRESS REVIEW PRODUCTION PAUSED CLOSED"`
	StartDate   *string              `json:"startDate"`
	DueDate     *string              `json:"dueDate"`
	Description string               `json:"description" validate:"max=10000"`
	ClientID    string               `json:"clientId" validate:"required"`
	ManagerID   *string              `json:"managerId"`
}

// UpdateProjectRequest is partial. An empty date string or managerId clears it.
type UpdateProjectRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *domain.ProjectType   `json:"type" validate:"omitempty,oneof=website ecommerce seo marketing support branding app other"`
	Status      *domain.ProjectStatus `json:"status" validate:"omitempty,oneof=DISCOVERY IN_PROGRESS REVIEW PRODUCTION PAUSED CLOSED"`
	StartDate   *string               `json:"startDate"`
	DueDate     *string               `json:"dueDate"`
	Description *string               `json:"description" validate:"omitempty,max=10000"`
	ClientID    *string               `json:"clientId" validate:"omitempty,min=1"`
	ManagerID   *string               `json:"managerId"`
}

type ChangeStatusRequest struct {
	Status     domain.ProjectStatus `json:"status" validate:"required,oneof=DISCOVERY IN_PROGRESS REVIEW PRODUCTION PAUSED CLOSED"`
	Note       string               `json:"note" validate:"max=5000"`
	NotifyTeam bool                 `json:"notifyTeam"`
}

type CreateUpdateRequest struct {
	Type       domain.ProjectUpdateType `json:"type" validate:"omitempty,oneof=NOTE STATUS_CHANGE MILESTONE"`
	Title      string                   `json:"title" validate:"max=200"`
	Message    string                   `json:"message" validate:"required,max=10000"`
	NotifyTeam bool                     `json:"notifyTeam"`
}

type ProjectFilter struct {
	Status   domain.ProjectStatus
	Type     domain.ProjectType
	ClientID string
	Query    string
}

// ProjectDetail is a project with its relations and derived timeline.
type ProjectDetail struct {
	*domain.Project
	Timeline []domain.TimelineStep `json:"timeline"`
}

type StatusView struct {
	Status      domain.ProjectStatus  `json:"status"`
	StatusLabel string                `json:"statusLabel"`
	Timeline    []domain.TimelineStep `json:"timeline"`
}

type StatusChangeResult struct {
	Project      *domain.Project       `json:"project"`
	Timeline     []domain.TimelineStep `json:"timeline"`
	Update       *domain.ProjectUpdate `json:"update"`
	Notification *notification.Outcome `json:"notification,omitempty"`
}

type UpdateResult struct {
	Update       *domain.ProjectUpdate `json:"update"`
	Notification *notification.Outcome `json:"notification,omitempty"`
}

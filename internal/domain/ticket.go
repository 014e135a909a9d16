package domain

import (
	"time"

	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketNew           TicketStatus = "NEW"
	TicketInProgress    TicketStatus = "IN_PROGRESS"
	TicketWaitingClient TicketStatus = "WAITING_CLIENT"
	TicketResolved      TicketStatus = "RESOLVED"
	TicketClosed        TicketStatus = "CLOSED"
)

// IsOpen is false once the ticket is resolved or closed.
func (s TicketStatus) IsOpen() bool {
	return s != TicketResolved && s != TicketClosed
}

type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

type Ticket struct {
	Base
	TicketNumber      int64          `json:"ticketNumber" gorm:"uniqueIndex;not null"`
	Title             string         `json:"title" gorm:"size:200;not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Status            TicketStatus   `json:"status" gorm:"size:16;not null;default:'NEW';index"`
	Priority          TicketPriority `json:"priority" gorm:"size:16;not null;default:'MEDIUM'"`
	Source            string         `json:"source" gorm:"size:40"`
	ServiceArea       string         `json:"serviceArea" gorm:"size:80"`
	Environment       string         `json:"environment" gorm:"size:40"`
	DueAt             *time.Time     `json:"dueAt"`
	ClosedAt          *time.Time     `json:"closedAt"`
	LastClientNotifAt *time.Time     `json:"lastClientNotifAt"`
	ClientID          string         `json:"clientId" gorm:"type:varchar(36);not null;index"`
	ProjectID         *string        `json:"projectId" gorm:"type:varchar(36);index"`
	AssigneeID        *string        `json:"assigneeId" gorm:"type:varchar(36);index"`

	Client   *Client         `json:"client,omitempty"`
	Project  *Project        `json:"project,omitempty"`
	Assignee *User           `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Watchers []TicketWatcher `json:"watchers,omitempty" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Updates  []TicketUpdate  `json:"updates,omitempty" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`

	StatusLabel   string `json:"statusLabel" gorm:"-"`
	PriorityLabel string `json:"priorityLabel" gorm:"-"`
}

func (t *Ticket) AfterFind(_ *gorm.DB) error { t.fillLabels(); return nil }
func (t *Ticket) AfterSave(_ *gorm.DB) error { t.fillLabels(); return nil }

func (t *Ticket) fillLabels() {
	t.StatusLabel = TicketStatusLabels.Label(t.Status)
	t.PriorityLabel = TicketPriorityLabels.Label(t.Priority)
}

type WatcherType string

const (
	WatcherClient   WatcherType = "CLIENT"
	WatcherInternal WatcherType = "INTERNAL"
)

type TicketWatcher struct {
	Base
	TicketID string      `json:"ticketId" gorm:"type:varchar(36);not null;uniqueIndex:idx_ticket_watcher_email"`
	Email    string      `json:"email" gorm:"size:254;not null;uniqueIndex:idx_ticket_watcher_email"`
	Name     string      `json:"name" gorm:"size:120"`
	Type     WatcherType `json:"type" gorm:"size:16;not null;default:'CLIENT'"`
}

type TicketUpdateType string

const (
	TicketUpdateNote         TicketUpdateType = "NOTE"
	TicketUpdateStatusChange TicketUpdateType = "STATUS_CHANGE"
	TicketUpdateIncident     TicketUpdateType = "INCIDENT"
)

// TicketUpdate is append-only; PreviousStatus/NextStatus snapshot a status change.
type TicketUpdate struct {
	Base
	TicketID       string           `json:"ticketId" gorm:"type:varchar(36);not null;index"`
	Type           TicketUpdateType `json:"type" gorm:"size:16;not null;default:'NOTE'"`
	Message        string           `json:"message" gorm:"type:text;not null"`
	Public         bool             `json:"public"`
	NotifyClient   bool             `json:"notifyClient"`
	PreviousStatus *TicketStatus    `json:"previousStatus" gorm:"size:16"`
	NextStatus     *TicketStatus    `json:"nextStatus" gorm:"size:16"`
	AuthorName     string           `json:"authorName" gorm:"size:120"`
	AuthorEmail    string           `json:"authorEmail" gorm:"size:254"`
	AuthorID       *string          `json:"authorId" gorm:"type:varchar(36);index"`
	Author         *User            `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`

	TypeLabel string `json:"typeLabel" gorm:"-"`
}

func (u *TicketUpdate) AfterFind(_ *gorm.DB) error { u.fillLabels(); return nil }
func (u *TicketUpdate) AfterSave(_ *gorm.DB) error { u.fillLabels(); return nil }

func (u *TicketUpdate) fillLabels() {
	u.TypeLabel = TicketUpdateTypeLabels.Label(u.Type)
}

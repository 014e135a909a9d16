package domain

import (
	"time"

	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectWebsite   ProjectType = "website"
	ProjectEcommerce ProjectType = "ecommerce"
	ProjectSEO       ProjectType = "seo"
	ProjectMarketing ProjectType = "marketing"
	ProjectSupport   ProjectType = "support"
	ProjectBranding  ProjectType = "branding"
	ProjectApp       ProjectType = "app"
	ProjectOther     ProjectType = "other"
)

type ProjectStatus string

const (
	ProjectDiscovery  ProjectStatus = "DISCOVERY"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectReview     ProjectStatus = "REVIEW"
	ProjectProduction ProjectStatus = "PRODUCTION"
	ProjectPaused     ProjectStatus = "PAUSED"
	ProjectClosed     ProjectStatus = "CLOSED"
)

type Project struct {
	Base
	Name        string        `json:"name" gorm:"size:200;not null"`
	Type        ProjectType   `json:"type" gorm:"size:32;not null;index"`
	Status      ProjectStatus `json:"status" gorm:"size:16;not null;default:'DISCOVERY';index"`
	StartDate   *time.Time    `json:"startDate"`
	DueDate     *time.Time    `json:"dueDate" gorm:"index"`
	Description string        `json:"description" gorm:"type:text"`
	ClientID    string        `json:"clientId" gorm:"type:varchar(36);not null;index"`
	ManagerID   *string       `json:"managerId" gorm:"type:varchar(36);index"`

	Client   *Client         `json:"client,omitempty"`
	Manager  *User           `json:"manager,omitempty" gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	Tickets  []Ticket        `json:"tickets,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	Invoices []Invoice       `json:"invoices,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	Updates  []ProjectUpdate `json:"updates,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	TypeLabel   string `json:"typeLabel" gorm:"-"`
	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (p *Project) AfterFind(_ *gorm.DB) error { p.fillLabels(); return nil }
func (p *Project) AfterSave(_ *gorm.DB) error { p.fillLabels(); return nil }

func (p *Project) fillLabels() {
	p.TypeLabel = ProjectTypeLabels.Label(p.Type)
	p.StatusLabel = ProjectStatusLabels.Label(p.Status)
}

type ProjectUpdateType string

const (
	ProjectUpdateNote         ProjectUpdateType = "NOTE"
	ProjectUpdateStatusChange ProjectUpdateType = "STATUS_CHANGE"
	ProjectUpdateMilestone    ProjectUpdateType = "MILESTONE"
)

// ProjectUpdate is an append-only log entry. There is no update or delete path.
type ProjectUpdate struct {
	Base
	ProjectID   string            `json:"projectId" gorm:"type:varchar(36);not null;index"`
	Type        ProjectUpdateType `json:"type" gorm:"size:16;not null;default:'NOTE'"`
	Title       string            `json:"title" gorm:"size:200"`
	Message     string            `json:"message" gorm:"type:text;not null"`
	AuthorName  string            `json:"authorName" gorm:"size:120"`
	AuthorEmail string            `json:"authorEmail" gorm:"size:254"`
	AuthorID    *string           `json:"authorId" gorm:"type:varchar(36);index"`
	Author      *User             `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	NotifyTeam  bool              `json:"notifyTeam"`

	TypeLabel string `json:"typeLabel" gorm:"-"`
}

func (u *ProjectUpdate) AfterFind(_ *gorm.DB) error { u.fillLabels(); return nil }
func (u *ProjectUpdate) AfterSave(_ *gorm.DB) error { u.fillLabels(); return nil }

func (u *ProjectUpdate) fillLabels() {
	u.TypeLabel = ProjectUpdateTypeLabels.Label(u.Type)
}

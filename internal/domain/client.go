package domain

import "gorm.io/gorm"

type ClientStatus string

const (
	ClientLead   ClientStatus = "LEAD"
	ClientActive ClientStatus = "ACTIVE"
	ClientPaused ClientStatus = "PAUSED"
	ClientClosed ClientStatus = "CLOSED"
)

// Client is an agency customer. Deleting it cascades to its projects, tickets,
// invoices and stored accesses through the schema's foreign keys.
type Client struct {
	Base
	Name         string       `json:"name" gorm:"size:160;not null;index"`
	ContactName  string       `json:"contactName" gorm:"size:120"`
	ContactEmail string       `json:"contactEmail" gorm:"size:254;uniqueIndex;not null"`
	ContactPhone string       `json:"contactPhone" gorm:"size:40"`
	Country      string       `json:"country" gorm:"size:80"`
	Industry     string       `json:"industry" gorm:"size:80"`
	Status       ClientStatus `json:"status" gorm:"size:16;not null;default:'LEAD';index"`
	Notes        string       `json:"notes" gorm:"type:text"`

	Projects []Project      `json:"projects,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Tickets  []Ticket       `json:"tickets,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Invoices []Invoice      `json:"invoices,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Accesses []ClientAccess `json:"accesses,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`

	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (c *Client) AfterFind(_ *gorm.DB) error { c.fillLabels(); return nil }
func (c *Client) AfterSave(_ *gorm.DB) error { c.fillLabels(); return nil }

func (c *Client) fillLabels() {
	c.StatusLabel = ClientStatusLabels.Label(c.Status)
}

// ClientAccess is a third-party credential kept for a client. The password is
// stored sealed; KeyID names the key that sealed it.
type ClientAccess struct {
	Base
	ClientID           string `json:"clientId" gorm:"type:varchar(36);not null;index"`
	Service            string `json:"service" gorm:"size:120;not null"`
	Username           string `json:"username" gorm:"size:160"`
	PasswordCiphertext string `json:"-" gorm:"type:text"`
	KeyID              string `json:"-" gorm:"size:32"`
	URL                string `json:"url" gorm:"size:500"`
	Notes              string `json:"notes" gorm:"type:text"`

	Password string `json:"password,omitempty" gorm:"-"`
}

func (ClientAccess) TableName() string {
	return "client_accesses"
}

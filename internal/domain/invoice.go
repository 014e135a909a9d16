package domain

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// CountsAsRevenue is true for invoices the dashboard books as revenue.
func (s InvoiceStatus) CountsAsRevenue() bool {
	return s == InvoicePaid || s == InvoiceSent
}

type Invoice struct {
	Base
	Number    string        `json:"number" gorm:"size:40"`
	Amount    float64       `json:"amount" gorm:"not null"`
	Currency  string        `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Status    InvoiceStatus `json:"status" gorm:"size:16;not null;default:'DRAFT';index"`
	IssueDate time.Time     `json:"issueDate" gorm:"not null;index"`
	DueDate   *time.Time    `json:"dueDate"`
	ClientID  string        `json:"clientId" gorm:"type:varchar(36);not null;index"`
	ProjectID *string       `json:"projectId" gorm:"type:varchar(36);index"`

	Client  *Client  `json:"client,omitempty"`
	Project *Project `json:"project,omitempty"`

	StatusLabel string `json:"statusLabel" gorm:"-"`
}

func (i *Invoice) AfterFind(_ *gorm.DB) error { i.fillLabels(); return nil }
func (i *Invoice) AfterSave(_ *gorm.DB) error { i.fillLabels(); return nil }

func (i *Invoice) fillLabels() {
	i.StatusLabel = InvoiceStatusLabels.Label(i.Status)
}

package invoices

import "agencyops/internal/domain"

type CreateInvoiceRequest struct {
	Number    string               `json:"number" validate:"max=40"`
	Amount    float64              `json:"amount" validate:"gte=0"`
	Currency  string               `json:"currency" validate:"omitempty,len=3,alpha"`
	Status    domain.InvoiceStatus `json:"status" validate:"omitempty,oneof=DRAFT SENT PAID OVERDUE"`
	IssueDate *string              `json:"issueDate"`
	DueDate   *string              `json:"dueDate"`
	ClientID  string               `json:"clientId" validate:"required"`
	ProjectID *string              `json:"projectId"`
}

type UpdateInvoiceRequest struct {
	Number    *string               `json:"number" validate:"omitempty,max=40"`
	Amount    *float64              `json:"amount" validate:"omitempty,gte=0"`
	Currency  *string               `json:"currency" validate:"omitempty,len=3,alpha"`
	Status    *domain.InvoiceStatus `json:"status" validate:"omitempty,oneof=DRAFT SENT PAID OVERDUE"`
	IssueDate *string               `json:"issueDate"`
	DueDate   *string               `json:"dueDate"`
	ProjectID *string               `json:"projectId"`
}

type InvoiceFilter struct {
	Status    domain.InvoiceStatus
	ClientID  string
	ProjectID string
}

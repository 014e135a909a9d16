package assistant

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"agencyops/internal/domain"
)

const (
	snapshotClients  = 12
	snapshotProjects = 18
	snapshotTickets  = 15
	snapshotInvoices = 12
)

// Snapshot flattens a capped sample of the workspace into text lines.
func Snapshot(ctx context.Context, db *gorm.DB) (string, error) {
	q := db.WithContext(ctx)

	var clients []domain.Client
	if err := q.Order("created_at DESC").Limit(snapshotClients).Find(&clients).Error; err != nil {
		return "", err
	}

	var projects []domain.Project
	err := q.Preload("Client").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").Order("due_date ASC").
		Limit(snapshotProjects).Find(&projects).Error
	if err != nil {
		return "", err
	}

	var tickets []domain.Ticket
	err = q.Preload("Client").
		Where("status NOT IN ?", []domain.TicketStatus{domain.TicketResolved, domain.TicketClosed}).
		Order("created_at DESC").Limit(snapshotTickets).Find(&tickets).Error
	if err != nil {
		return "", err
	}

	var invoices []domain.Invoice
	err = q.Preload("Client").
		Where("status <> ?", domain.InvoicePaid).
		Order("issue_date DESC").Limit(snapshotInvoices).Find(&invoices).Error
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Clients:\n")
	for _, c := range clients {
		fmt.Fprintf(&b, "- %s | %s | %s\n", c.Name, c.StatusLabel, c.ContactEmail)
	}
	b.WriteString("Projects:\n")
	for _, p := range projects {
		due := "no due date"
		if p.DueDate != nil {
			due = "due " + p.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n", p.Name, clientName(p.Client), p.StatusLabel, due)
	}
	b.WriteString("Open tickets:\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "- #%d %s | %s | %s | %s\n", t.TicketNumber, t.Title, clientName(t.Client), t.StatusLabel, t.PriorityLabel)
	}
	b.WriteString("Unsettled invoices:\n")
	for _, inv := range invoices {
		fmt.Fprintf(&b, "- %s | %s | %.2f %s | %s | issued %s\n",
			orDash(inv.Number), clientName(inv.Client), inv.Amount, inv.Currency, inv.StatusLabel, inv.IssueDate.Format("2006-01-02"))
	}
	return b.String(), nil
}

func clientName(c *domain.Client) string {
	if c == nil {
		return "-"
	}
	return c.Name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

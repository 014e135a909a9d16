package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/pkg/mailer"
)

const (
	ReasonNoClientWatchers  = "no_client_watchers"
	ReasonMailNotConfigured = "mail_not_configured"
	ReasonNoRecipients      = "no_recipients"
	ReasonNotFound          = "not_found"
)

// Outcome describes what a dispatch did. A failed send is reported here and
// never as an error to the caller.
type Outcome struct {
	Sent       bool     `json:"sent"`
	Skipped    bool     `json:"skipped"`
	Reason     string   `json:"reason,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
	Error      string   `json:"error,omitempty"`

	Err error `json:"-"`
}

func skipped(reason string) Outcome {
	return Outcome{Skipped: true, Reason: reason}
}

func failed(err error) Outcome {
	return Outcome{Err: err, Error: "notification could not be delivered"}
}

// Dispatcher composes and sends ticket and project notifications. Call it
// only after the primary write has committed.
type Dispatcher struct {
	db   *gorm.DB
	mail mailer.Sender
	cc   []string
	now  func() time.Time
}

func NewDispatcher(db *gorm.DB, mail mailer.Sender, cc []string) *Dispatcher {
	return &Dispatcher{db: db, mail: mail, cc: cc, now: time.Now}
}

func (d *Dispatcher) NotifyTicket(ctx context.Context, ticketID string, update *domain.TicketUpdate) Outcome {
	var t domain.Ticket
	err := d.db.WithContext(ctx).
		Preload("Client").
		Preload("Watchers").
		First(&t, "id = ?", ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(ReasonNotFound)
		}
		log.Printf("notify_ticket_failed ticket_id=%s stage=load error=%v", ticketID, err)
		return failed(err)
	}

	var clientEmails []string
	for _, w := range t.Watchers {
		if w.Type == domain.WatcherClient {
			clientEmails = append(clientEmails, w.Email)
		}
	}
	if len(clientEmails) == 0 {
		return skipped(ReasonNoClientWatchers)
	}
	if d.mail == nil {
		return skipped(ReasonMailNotConfigured)
	}

	to, cc := MergeRecipients(clientEmails, d.cc)
	if len(to) == 0 {
		return skipped(ReasonNoRecipients)
	}

	body, err := renderTicket(&t, update)
	if err != nil {
		log.Printf("notify_ticket_failed ticket_id=%s stage=render error=%v", ticketID, err)
		return failed(err)
	}

	msg := mailer.Message{
		To:      to,
		CC:      cc,
		Subject: fmt.Sprintf("[#%d] %s", t.TicketNumber, t.Title),
		HTML:    body,
	}
	if err := d.mail.Send(ctx, msg); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return skipped(ReasonMailNotConfigured)
		}
		log.Printf("notify_ticket_failed ticket_id=%s stage=send recipients=%d error=%v", ticketID, len(to)+len(cc), err)
		return failed(err)
	}

	stamp := d.now().UTC()
	if err := d.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", t.ID).
		UpdateColumn("last_client_notif_at", stamp).Error; err != nil {
		log.Printf("notify_ticket_stamp_failed ticket_id=%s error=%v", ticketID, err)
	}

	return Outcome{Sent: true, Recipients: append(to, cc...)}
}

func (d *Dispatcher) NotifyProject(ctx context.Context, projectID string, update *domain.ProjectUpdate) Outcome {
	var p domain.Project
	err := d.db.WithContext(ctx).
		Preload("Client").
		Preload("Manager").
		First(&p, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped(ReasonNotFound)
		}
		log.Printf("notify_project_failed project_id=%s stage=load error=%v", projectID, err)
		return failed(err)
	}

	var primary []string
	if p.Manager != nil {
		primary = append(primary, p.Manager.Email)
	}
	to, cc := MergeRecipients(primary, d.cc)
	if len(to) == 0 && len(cc) == 0 {
		return skipped(ReasonNoRecipients)
	}
	if d.mail == nil {
		return skipped(ReasonMailNotConfigured)
	}
	if len(to) == 0 {
		to, cc = cc, nil
	}

	body, err := renderProject(&p, update)
	if err != nil {
		log.Printf("notify_project_failed project_id=%s stage=render error=%v", projectID, err)
		return failed(err)
	}

	subject := p.Name
	if update != nil && update.Title != "" {
		subject = p.Name + ": " + update.Title
	}
	msg := mailer.Message{To: to, CC: cc, Subject: subject, HTML: body}
	if err := d.mail.Send(ctx, msg); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return skipped(ReasonMailNotConfigured)
		}
		log.Printf("notify_project_failed project_id=%s stage=send error=%v", projectID, err)
		return failed(err)
	}

	return Outcome{Sent: true, Recipients: append(to, cc...)}
}

// MergeRecipients dedupes addresses case-insensitively. Addresses already in
// primary are dropped from cc. Blank entries are ignored.
func MergeRecipients(primary, cc []string) (to []string, rest []string) {
	seen := make(map[string]bool, len(primary)+len(cc))
	add := func(dst []string, addr string) []string {
		addr = strings.TrimSpace(addr)
		key := strings.ToLower(addr)
		if key == "" || seen[key] {
			return dst
		}
		seen[key] = true
		return append(dst, addr)
	}

	for _, a := range primary {
		to = add(to, a)
	}
	for _, a := range cc {
		rest = add(rest, a)
	}
	return to, rest
}

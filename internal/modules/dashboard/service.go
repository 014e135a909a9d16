package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"agencyops/internal/domain"
)

// Service reads straight from the tables through sqlx; every call recomputes.
type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewService shares the gorm connection pool.
func NewService(gdb *gorm.DB) (*Service, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	driver := "sqlite3"
	if gdb.Dialector.Name() == "postgres" {
		driver = "pgx"
	}
	return &Service{
		db:  sqlx.NewDb(sqlDB, driver),
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now().UTC()
	since := windowStart(now)

	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.GetContext(ctx, &snap.activeClients,
			s.db.Rebind(`SELECT COUNT(*) FROM clients WHERE status = ?`), domain.ClientActive)
	})
	g.Go(func() error {
		return s.db.SelectContext(ctx, &snap.projects,
			`SELECT id, name, status, created_at FROM projects`)
	})
	g.Go(func() error {
		return s.db.SelectContext(ctx, &snap.tickets,
			`SELECT id, ticket_number, title, status, created_at FROM tickets`)
	})
	g.Go(func() error {
		return s.db.SelectContext(ctx, &snap.invoices,
			s.db.Rebind(`SELECT id, COALESCE(number, '') AS number, amount, status, issue_date, created_at FROM invoices WHERE issue_date >= ?`), since)
	})
	g.Go(func() error {
		return s.db.SelectContext(ctx, &snap.partners,
			`SELECT id, name, status, created_at FROM partners`)
	})
	g.Go(func() error {
		return s.db.SelectContext(ctx, &snap.payouts,
			s.db.Rebind(`SELECT amount, status, payout_date FROM partner_payouts WHERE payout_date >= ?`), since)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := summarize(now, snap)
	return &out, nil
}

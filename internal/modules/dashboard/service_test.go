package dashboard

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/testutil"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*gorm.DB, *Service) {
	db := testutil.OpenTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return db, svc
}

func seedClient(t *testing.T, db *gorm.DB, email string, status domain.ClientStatus) *domain.Client {
	c := &domain.Client{Name: email, ContactEmail: email, Status: status}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedInvoice(t *testing.T, db *gorm.DB, clientID string, amount float64, status domain.InvoiceStatus, issued time.Time) {
	require.NoError(t, db.Create(&domain.Invoice{ClientID: clientID, Amount: amount, Status: status, IssueDate: issued, Currency: "USD"}).Error)
}

func TestSummary_MonthlyRevenueCountsCurrentMonthOnly(t *testing.T) {
	db, svc := setup(t)
	c := seedClient(t, db, "a@acme.com", domain.ClientActive)

	seedInvoice(t, db, c.ID, 100, domain.InvoicePaid, day(2026, 10, 1))
	seedInvoice(t, db, c.ID, 50, domain.InvoiceSent, day(2026, 10, 13))
	seedInvoice(t, db, c.ID, 999, domain.InvoiceDraft, day(2026, 10, 2))
	seedInvoice(t, db, c.ID, 999, domain.InvoiceOverdue, day(2026, 10, 3))
	seedInvoice(t, db, c.ID, 700, domain.InvoicePaid, day(2026, 9, 30))
	seedInvoice(t, db, c.ID, 700, domain.InvoicePaid, day(2025, 10, 10))

	out, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 150, out.KPIs.MonthlyRevenue)
	assert.EqualValues(t, 1, out.KPIs.ActiveClients)
}

func TestSummary_SeriesBucketsPaidAndSentOnly(t *testing.T) {
	db, svc := setup(t)
	c := seedClient(t, db, "a@acme.com", domain.ClientLead)

	seedInvoice(t, db, c.ID, 300, domain.InvoicePaid, day(2026, 7, 5))
	seedInvoice(t, db, c.ID, 400, domain.InvoiceDraft, day(2026, 7, 20))
	seedInvoice(t, db, c.ID, 80, domain.InvoicePaid, day(2026, 4, 30))

	out, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Series, 6)

	keys := make([]string, 0, len(out.Series))
	for _, p := range out.Series {
		keys = append(keys, p.Month)
	}
	assert.Equal(t, []string{"2026-05", "2026-06", "2026-07", "2026-08", "2026-09", "2026-10"}, keys)
	assert.Equal(t, "Oct 2026", out.Series[5].Label)
	assert.EqualValues(t, 300, out.Series[2].Revenue)

	var total float64
	for _, p := range out.Series {
		total += p.Revenue
	}
	assert.EqualValues(t, 300, total)
}

func TestSummary_KPIsAndPayouts(t *testing.T) {
	db, svc := setup(t)
	c := seedClient(t, db, "a@acme.com", domain.ClientActive)

	for _, st := range []domain.ProjectStatus{domain.ProjectDiscovery, domain.ProjectPaused, domain.ProjectClosed} {
		require.NoError(t, db.Create(&domain.Project{Name: string(st), ClientID: c.ID, Type: domain.ProjectWebsite, Status: st}).Error)
	}
	for i, st := range []domain.TicketStatus{domain.TicketNew, domain.TicketWaitingClient, domain.TicketResolved, domain.TicketClosed} {
		require.NoError(t, db.Create(&domain.Ticket{TicketNumber: int64(i + 1), Title: "t", ClientID: c.ID, Status: st}).Error)
	}

	active := &domain.Partner{Name: "Northwind", Type: domain.PartnerAgency, Status: domain.PartnerActive}
	paused := &domain.Partner{Name: "Contoso", Type: domain.PartnerAgency, Status: domain.PartnerPaused}
	require.NoError(t, db.Create(active).Error)
	require.NoError(t, db.Create(paused).Error)

	aug, old := day(2026, 8, 15), day(2025, 1, 1)
	for _, po := range []domain.PartnerPayout{
		{PartnerID: active.ID, Amount: 40, Status: domain.PayoutPaid, PayoutDate: &aug, Currency: "USD"},
		{PartnerID: active.ID, Amount: 15, Status: domain.PayoutPending, PayoutDate: &aug, Currency: "USD"},
		{PartnerID: active.ID, Amount: 500, Status: domain.PayoutPaid, PayoutDate: &old, Currency: "USD"},
	} {
		require.NoError(t, db.Create(&po).Error)
	}

	out, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.KPIs.ActiveProjects)
	assert.Equal(t, 2, out.KPIs.OpenTickets)
	assert.Equal(t, 1, out.KPIs.ActivePartners)
	assert.EqualValues(t, 40, out.KPIs.PartnerRevenue)
	assert.EqualValues(t, 40, out.Series[3].PartnerPayouts)
}

func TestSummary_RecentActivity(t *testing.T) {
	db, svc := setup(t)
	c := seedClient(t, db, "a@acme.com", domain.ClientActive)

	base := day(2026, 10, 1)
	for i := 0; i < 6; i++ {
		p := &domain.Project{Name: "p", ClientID: c.ID, Type: domain.ProjectSEO, Status: domain.ProjectDiscovery}
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(p).Error)
	}
	tk := &domain.Ticket{TicketNumber: 7, Title: "Broken checkout", ClientID: c.ID, Status: domain.TicketNew}
	tk.CreatedAt = base.Add(48 * time.Hour)
	require.NoError(t, db.Create(tk).Error)
	pt := &domain.Partner{Name: "Northwind", Type: domain.PartnerAffiliate, Status: domain.PartnerActive}
	pt.CreatedAt = base.Add(72 * time.Hour)
	require.NoError(t, db.Create(pt).Error)
	inv := &domain.Invoice{Number: "INV-1", ClientID: c.ID, Amount: 10, Status: domain.InvoiceDraft, IssueDate: base, Currency: "USD"}
	inv.CreatedAt = base.Add(-time.Hour)
	require.NoError(t, db.Create(inv).Error)

	out, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, out.RecentActivity, 8)
	assert.Equal(t, "partner", out.RecentActivity[0].Kind)
	assert.Equal(t, "ticket", out.RecentActivity[1].Kind)
	assert.Equal(t, "#7 Broken checkout", out.RecentActivity[1].Title)
	for _, a := range out.RecentActivity {
		assert.NotEqual(t, "invoice", a.Kind)
	}
}

func TestHandler(t *testing.T) {
	_, svc := setup(t)
	r, api := testutil.NewRouter("")
	NewHandler(svc).RegisterRoutes(api)

	w := testutil.DoJSON(r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out Summary
	testutil.Data(t, w, &out)
	assert.Len(t, out.Series, 6)
	assert.Empty(t, out.RecentActivity)
}

func TestWindowStart_CrossesYear(t *testing.T) {
	assert.Equal(t, day(2025, 9, 1), windowStart(time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)))
}

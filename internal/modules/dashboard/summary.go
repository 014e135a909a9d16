package dashboard

import (
	"fmt"
	"sort"
	"time"

	"agencyops/internal/domain"
)

const (
	seriesMonths = 6
	recentLimit  = 8
)

type KPIs struct {
	ActiveClients  int64   `json:"activeClients"`
	ActiveProjects int     `json:"activeProjects"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	OpenTickets    int     `json:"openTickets"`
	ActivePartners int     `json:"activePartners"`
	PartnerRevenue float64 `json:"partnerRevenue"`
}

// MonthPoint is one bucket of the revenue series, keyed YYYY-MM.
type MonthPoint struct {
	Month          string  `json:"month"`
	Label          string  `json:"label"`
	Revenue        float64 `json:"revenue"`
	PartnerPayouts float64 `json:"partnerPayouts"`
}

type Activity struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Summary struct {
	KPIs           KPIs         `json:"kpis"`
	Series         []MonthPoint `json:"series"`
	RecentActivity []Activity   `json:"recentActivity"`
}

type projectRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type ticketRow struct {
	ID           string    `db:"id"`
	TicketNumber int64     `db:"ticket_number"`
	Title        string    `db:"title"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

type invoiceRow struct {
	ID        string    `db:"id"`
	Number    string    `db:"number"`
	Amount    float64   `db:"amount"`
	Status    string    `db:"status"`
	IssueDate time.Time `db:"issue_date"`
	CreatedAt time.Time `db:"created_at"`
}

type partnerRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type payoutRow struct {
	Amount     float64    `db:"amount"`
	Status     string     `db:"status"`
	PayoutDate *time.Time `db:"payout_date"`
}

// snapshot is everything one dashboard read returns.
type snapshot struct {
	activeClients int64
	projects      []projectRow
	tickets       []ticketRow
	invoices      []invoiceRow
	partners      []partnerRow
	payouts       []payoutRow
}

// windowStart is the first instant of the oldest month in the series.
func windowStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-(seriesMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func summarize(now time.Time, in snapshot) Summary {
	now = now.UTC()
	current := monthKey(now)

	out := Summary{KPIs: KPIs{ActiveClients: in.activeClients}}

	start := windowStart(now)
	index := make(map[string]int, seriesMonths)
	out.Series = make([]MonthPoint, seriesMonths)
	for i := range out.Series {
		m := start.AddDate(0, i, 0)
		out.Series[i] = MonthPoint{Month: monthKey(m), Label: m.Format("Jan 2006")}
		index[out.Series[i].Month] = i
	}

	for _, p := range in.projects {
		if domain.ProjectStatus(p.Status) != domain.ProjectClosed {
			out.KPIs.ActiveProjects++
		}
	}
	for _, t := range in.tickets {
		if domain.TicketStatus(t.Status).IsOpen() {
			out.KPIs.OpenTickets++
		}
	}
	for _, p := range in.partners {
		if domain.PartnerStatus(p.Status) == domain.PartnerActive {
			out.KPIs.ActivePartners++
		}
	}

	for _, inv := range in.invoices {
		if !domain.InvoiceStatus(inv.Status).CountsAsRevenue() {
			continue
		}
		key := monthKey(inv.IssueDate)
		if key == current {
			out.KPIs.MonthlyRevenue += inv.Amount
		}
		if i, ok := index[key]; ok {
			out.Series[i].Revenue += inv.Amount
		}
	}

	for _, po := range in.payouts {
		if domain.PayoutStatus(po.Status) != domain.PayoutPaid {
			continue
		}
		out.KPIs.PartnerRevenue += po.Amount
		if po.PayoutDate == nil {
			continue
		}
		if i, ok := index[monthKey(*po.PayoutDate)]; ok {
			out.Series[i].PartnerPayouts += po.Amount
		}
	}

	out.RecentActivity = recent(in)
	return out
}

func recent(in snapshot) []Activity {
	feed := make([]Activity, 0, len(in.projects)+len(in.tickets)+len(in.invoices)+len(in.partners))
	for _, p := range in.projects {
		feed = append(feed, Activity{Kind: "project", ID: p.ID, Title: p.Name, Status: p.Status, CreatedAt: p.CreatedAt})
	}
	for _, t := range in.tickets {
		feed = append(feed, Activity{Kind: "ticket", ID: t.ID, Title: fmt.Sprintf("#%d %s", t.TicketNumber, t.Title), Status: t.Status, CreatedAt: t.CreatedAt})
	}
	for _, inv := range in.invoices {
		title := inv.Number
		if title == "" {
			title = fmt.Sprintf("Invoice %.2f", inv.Amount)
		}
		feed = append(feed, Activity{Kind: "invoice", ID: inv.ID, Title: title, Status: inv.Status, CreatedAt: inv.CreatedAt})
	}
	for _, p := range in.partners {
		feed = append(feed, Activity{Kind: "partner", ID: p.ID, Title: p.Name, Status: p.Status, CreatedAt: p.CreatedAt})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].CreatedAt.After(feed[j].CreatedAt) })
	if len(feed) > recentLimit {
		feed = feed[:recentLimit]
	}
	return feed
}

package invoices

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyops/internal/domain"
	"agencyops/internal/testutil"
)

func setup(t *testing.T) (http.Handler, *domain.Client, *Service) {
	db := testutil.OpenTestDB(t)
	client := &domain.Client{Name: "Acme", ContactEmail: "a@acme.com"}
	require.NoError(t, db.Create(client).Error)

	svc := NewService(db)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) }
	r, api := testutil.NewRouter("")
	NewHandler(svc).RegisterRoutes(api)
	return r, client, svc
}

func TestCreateInvoice_Defaults(t *testing.T) {
	r, client, _ := setup(t)

	w := testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": 1200.5, "clientId": client.ID, "currency": "eur"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var inv domain.Invoice
	testutil.Data(t, w, &inv)
	assert.Equal(t, domain.InvoiceDraft, inv.Status)
	assert.Equal(t, "Draft", inv.StatusLabel)
	assert.Equal(t, "EUR", inv.Currency)
	assert.True(t, inv.IssueDate.Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)))
}

func TestCreateInvoice_Validation(t *testing.T) {
	r, client, _ := setup(t)

	w := testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": -5, "clientId": client.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"amount"`)

	w = testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": 5, "clientId": client.ID, "status": "VOID"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": 5, "clientId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"clientId"`)
}

func TestListInvoices_NewestIssueDateFirst(t *testing.T) {
	r, client, _ := setup(t)
	for _, d := range []string{"2026-08-01", "2026-10-01", "2026-09-01"} {
		w := testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": 10, "clientId": client.ID, "issueDate": d, "status": "SENT"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var list []domain.Invoice
	testutil.Data(t, testutil.DoJSON(r, http.MethodGet, "/api/invoices?status=SENT", nil), &list)
	require.Len(t, list, 3)
	assert.Equal(t, time.October, list[0].IssueDate.Month())
	assert.Equal(t, time.August, list[2].IssueDate.Month())
}

func TestUpdateInvoice(t *testing.T) {
	r, client, _ := setup(t)
	w := testutil.DoJSON(r, http.MethodPost, "/api/invoices", map[string]any{"amount": 10, "clientId": client.ID})
	var inv domain.Invoice
	testutil.Data(t, w, &inv)

	w = testutil.DoJSON(r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{"status": "PAID", "amount": 99})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.Data(t, w, &inv)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.EqualValues(t, 99, inv.Amount)

	w = testutil.DoJSON(r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{"issueDate": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(r, http.MethodPatch, "/api/invoices/missing", map[string]any{"amount": 1}).Code)
	assert.Equal(t, http.StatusNoContent, testutil.DoJSON(r, http.MethodDelete, "/api/invoices/"+inv.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(r, http.MethodGet, "/api/invoices/"+inv.ID, nil).Code)
}

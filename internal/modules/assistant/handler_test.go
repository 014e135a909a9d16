package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agencyops/internal/domain"
	"agencyops/internal/testutil"
)

func setup(t *testing.T, agent Agent) (http.Handler, *gorm.DB) {
	db := testutil.OpenTestDB(t)
	r, api := testutil.NewRouter("user-1")
	NewHandler(NewService(db, agent)).RegisterRoutes(api)
	return r, db
}

func agentServer(t *testing.T, status int, body string, seen *AgentRequest) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAsk_BuildsSnapshotContext(t *testing.T) {
	var seen AgentRequest
	srv := agentServer(t, http.StatusOK, `{"answer":"Acme has one open ticket."}`, &seen)
	r, db := setup(t, NewAgentClient(srv.URL, "secret-token"))

	c := &domain.Client{Name: "Acme", ContactEmail: "a@acme.com"}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Create(&domain.Ticket{TicketNumber: 1, Title: "Checkout broken", ClientID: c.ID}).Error)

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"question": "What is open?", "sessionId": "s-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply Reply
	testutil.Data(t, w, &reply)
	assert.Equal(t, "Acme has one open ticket.", reply.Answer)
	assert.NotNil(t, reply.Raw)

	assert.Equal(t, "What is open?", seen.Question)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, "s-1", seen.SessionID)
	snapshot, ok := seen.Context.(string)
	require.True(t, ok)
	assert.Contains(t, snapshot, "Acme")
	assert.Contains(t, snapshot, "#1 Checkout broken")
}

func TestAsk_PassesCallerContext(t *testing.T) {
	var seen AgentRequest
	srv := agentServer(t, http.StatusOK, `"plain string answer"`, &seen)
	r, _ := setup(t, NewAgentClient(srv.URL, "secret-token"))

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"question": "Hi", "context": map[string]any{"page": "clients"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply Reply
	testutil.Data(t, w, &reply)
	assert.Equal(t, "plain string answer", reply.Answer)
	assert.Equal(t, map[string]any{"page": "clients"}, seen.Context)
}

func TestAsk_AgentErrorIsBadGateway(t *testing.T) {
	srv := agentServer(t, http.StatusTooManyRequests, `{"error":"rate limited"}`, nil)
	r, _ := setup(t, NewAgentClient(srv.URL, "secret-token"))

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"question": "Hi", "context": "x"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "AGENT_ERROR", testutil.ErrorCode(t, w))
	assert.Contains(t, w.Body.String(), "rate limited")
}

func TestAsk_TransportFailureIsInternal(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	r, _ := setup(t, NewAgentClient(url, "secret-token"))

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"question": "Hi", "context": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", testutil.ErrorCode(t, w))
}

func TestAsk_NotConfigured(t *testing.T) {
	r, _ := setup(t, nil)

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"question": "Hi"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "AGENT_NOT_CONFIGURED", testutil.ErrorCode(t, w))
}

func TestAsk_RequiresQuestion(t *testing.T) {
	r, _ := setup(t, nil)

	w := testutil.DoJSON(r, http.MethodPost, "/api/assistant", map[string]any{"sessionId": "s"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", testutil.ErrorCode(t, w))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		answer string
		hasRaw bool
	}{
		{"json string", `"hello"`, "hello", false},
		{"answer field", `{"answer":"a","body":"b"}`, "a", true},
		{"body field", `{"body":"b"}`, "b", true},
		{"text skips blank answer", `{"answer":"  ","text":"t"}`, "t", true},
		{"output field", `{"output":"o"}`, "o", true},
		{"object without answer", `{"foo":1}`, "", true},
		{"plain text", "  just text \n", "just text", false},
		{"json array", `[1,2]`, "[1,2]", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize([]byte(tc.body))
			assert.Equal(t, tc.answer, got.Answer)
			assert.Equal(t, tc.hasRaw, got.Raw != nil)
		})
	}
}

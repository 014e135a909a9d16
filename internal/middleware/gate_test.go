package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyops/internal/pkg/jwt"
)

const testSecret = "gate-test-secret-0123456789abcdef"

func TestDecide(t *testing.T) {
	svc := jwt.New(testSecret, time.Hour)
	valid, err := svc.Issue("user-1")
	require.NoError(t, err)

	cases := []struct {
		name    string
		path    string
		token   string
		verdict Verdict
	}{
		{"auth route without session", "/api/auth/login", "", Bypass},
		{"auth route with garbage", "/api/auth/logout", "garbage", Bypass},
		{"auth route with session", "/api/auth/me", valid, Allow},
		{"api without session", "/api/clients", "", Unauthorized},
		{"api with bad session", "/api/clients", "garbage", Unauthorized},
		{"api with session", "/api/clients", valid, Allow},
		{"api root", "/api", "", Unauthorized},
		{"static asset", "/assets/app.js", "", Bypass},
		{"file extension", "/logo.png", "", Bypass},
		{"favicon", "/favicon.ico", "", Bypass},
		{"health", "/healthz", "", Bypass},
		{"login page", "/login", "", Bypass},
		{"page without session", "/clients/abc", "", RedirectLogin},
		{"page with session", "/clients/abc", valid, Allow},
		{"api path with dot is not static", "/api/files/report.pdf", "", Unauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.path, tc.token, svc)
			assert.Equal(t, tc.verdict, d.Verdict)
			if tc.verdict == Allow {
				assert.Equal(t, "user-1", d.UserID)
			}
		})
	}
}

func TestDecide_OtherSecretRejected(t *testing.T) {
	other := jwt.New("another-secret-0123456789abcdefgh", time.Hour)
	token, err := other.Issue("user-1")
	require.NoError(t, err)

	d := Decide("/api/clients", token, jwt.New(testSecret, time.Hour))
	assert.Equal(t, Unauthorized, d.Verdict)
}

func newGateRouter(svc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Gate(svc, CookieSettings{Name: "agency_session", TTL: time.Hour}))
	r.GET("/api/clients", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, "page")
	})
	return r
}

func TestGate_APIWithoutCookie(t *testing.T) {
	r := newGateRouter(jwt.New(testSecret, time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "agency_session=;")
}

func TestGate_APIWithCookie(t *testing.T) {
	svc := jwt.New(testSecret, time.Hour)
	token, err := svc.Issue("user-42")
	require.NoError(t, err)
	r := newGateRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.AddCookie(&http.Cookie{Name: "agency_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestGate_PageRedirectsToLogin(t *testing.T) {
	r := newGateRouter(jwt.New(testSecret, time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients?tab=open", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fclients%3Ftab%3Dopen", w.Header().Get("Location"))
}

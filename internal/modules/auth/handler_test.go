package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agencyops/internal/domain"
	"agencyops/internal/middleware"
	"agencyops/internal/pkg/jwt"
	"agencyops/internal/repository"
	"agencyops/internal/testutil"
)

const testSecret = "auth-test-secret-0123456789abcdef"

func setupRouter(t *testing.T) (*gin.Engine, *domain.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Name: "Olivia", Email: "Olivia@Agency.com", PasswordHash: string(hash), Role: domain.RoleOwner}
	require.NoError(t, users.Create(context.Background(), u))

	tokens := jwt.New(testSecret, time.Hour)
	cookies := middleware.CookieSettings{Name: "agency_session", TTL: time.Hour}

	r := gin.New()
	r.Use(middleware.Gate(tokens, cookies))
	NewHandler(NewService(users, tokens), cookies).RegisterRoutes(r.Group("/api"))
	return r, u
}

func postJSON(r http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "agency_session" {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookieAndMeWorks(t *testing.T) {
	r, u := setupRouter(t)

	w := postJSON(r, "/api/auth/login", LoginRequest{Email: "olivia@agency.com", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"roleLabel":"Owner"`)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "agency_session", Value: cookie.Value})
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)

	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), u.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := setupRouter(t)

	w := postJSON(r, "/api/auth/login", LoginRequest{Email: "olivia@agency.com", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	assert.Nil(t, sessionCookie(w))
}

func TestLogin_UnknownEmail(t *testing.T) {
	r, _ := setupRouter(t)

	w := postJSON(r, "/api/auth/login", LoginRequest{Email: "ghost@agency.com", Password: "s3cret-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_ValidationError(t *testing.T) {
	r, _ := setupRouter(t)

	w := postJSON(r, "/api/auth/login", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), `"field":"email"`)
	assert.Contains(t, w.Body.String(), `"field":"password"`)
}

func TestMe_WithoutSession(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	r, _ := setupRouter(t)

	w := postJSON(r, "/api/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}

package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyops/internal/pkg/response"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func loggedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorLogger())
	r.POST("/api/users", func(c *gin.Context) {
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email is already registered")
	})
	r.GET("/api/ok", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestErrorLogger_LogsConflict(t *testing.T) {
	buf := captureLog(t)
	r := loggedRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set("X-Request-ID", "req-409")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	out := buf.String()
	assert.Contains(t, out, "request_error type=client_error status=409")
	assert.Contains(t, out, "request_id=req-409")
	assert.Contains(t, out, "code=EMAIL_EXISTS")
}

func TestErrorLogger_QuietOnSuccess(t *testing.T) {
	buf := captureLog(t)
	r := loggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, buf.String(), "request_error")
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	buf := captureLog(t)
	r := loggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, buf.String(), "request_error type=panic")
}

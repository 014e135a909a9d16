package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"agencyops/internal/pkg/jwt"
	"agencyops/internal/pkg/response"
)

const (
	LoginPath   = "/login"
	apiPrefix   = "/api/"
	authPrefix  = "/api/auth/"
	ContextUser = "user_id"
)

var staticPrefixes = []string{"/static/", "/assets/", "/_next/", "/favicon.ico", "/robots.txt", "/healthz"}

// SessionVerifier is satisfied by *jwt.Service.
type SessionVerifier interface {
	Verify(token string) (*jwt.Session, bool)
}

type Verdict int

const (
	Bypass Verdict = iota
	Allow
	Unauthorized
	RedirectLogin
)

type Decision struct {
	Verdict Verdict
	UserID  string
}

// Decide is the whole gate policy as a function of the request path and the
// raw session cookie value.
func Decide(p string, token string, sessions SessionVerifier) Decision {
	if isStatic(p) {
		return Decision{Verdict: Bypass}
	}

	var userID string
	if token != "" {
		if s, ok := sessions.Verify(token); ok {
			userID = s.UserID
		}
	}
	if userID != "" {
		return Decision{Verdict: Allow, UserID: userID}
	}

	switch {
	case p == "/api/auth" || strings.HasPrefix(p, authPrefix):
		return Decision{Verdict: Bypass}
	case p == "/api" || strings.HasPrefix(p, apiPrefix):
		return Decision{Verdict: Unauthorized}
	case p == LoginPath:
		return Decision{Verdict: Bypass}
	default:
		return Decision{Verdict: RedirectLogin}
	}
}

func isStatic(p string) bool {
	if p == "/api" || strings.HasPrefix(p, apiPrefix) {
		return false
	}
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return path.Ext(p) != ""
}

// Gate applies Decide to every request.
func Gate(sessions SessionVerifier, cookies CookieSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookies.Name)
		d := Decide(c.Request.URL.Path, token, sessions)

		switch d.Verdict {
		case Allow:
			c.Set(ContextUser, d.UserID)
		case Unauthorized:
			ClearSessionCookie(c, cookies)
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		case RedirectLogin:
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the session user stored by Gate, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ContextUser)
}

package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func SetSessionCookie(c *gin.Context, s CookieSettings, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
}

func ClearSessionCookie(c *gin.Context, s CookieSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}

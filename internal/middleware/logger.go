package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"agencyops/internal/pkg/response"
)

// ErrorLogger logs detailed error information and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(c, start, "panic", err.Error(), debug.Stack())

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Something went wrong, please try again",
					},
				})
				return
			}

			if len(c.Errors) == 0 {
				status := c.Writer.Status()
				switch {
				case status >= http.StatusInternalServerError:
					logRequestError(c, start, "http_error", statusMessage(c, status), nil)
				case status >= http.StatusBadRequest:
					logRequestError(c, start, "client_error", statusMessage(c, status), nil)
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, errorType(err.Type), err.Error(), nil)
				if err.Meta != nil {
					log.Printf("request_error_meta request_id=%s meta=%+v", requestID(c), err.Meta)
				}
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType string, message string, stack []byte) {
	log.Printf(
		"request_error type=%s status=%d method=%s path=%s query=%s client_ip=%s user_id=%s request_id=%s latency=%s error=%q stack=%s",
		errType,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.Request.URL.RawQuery,
		c.ClientIP(),
		c.GetString(ContextUser),
		requestID(c),
		time.Since(start),
		message,
		string(stack),
	)
}

func statusMessage(c *gin.Context, status int) string {
	if code := c.GetString(response.ContextErrorCode); code != "" {
		return fmt.Sprintf("status=%d code=%s", status, code)
	}
	return fmt.Sprintf("status=%d", status)
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}

func errorType(t gin.ErrorType) string {
	switch t {
	case gin.ErrorTypeBind:
		return "bind"
	case gin.ErrorTypeRender:
		return "render"
	case gin.ErrorTypePublic:
		return "public"
	default:
		return "private"
	}
}

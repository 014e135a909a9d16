package request

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencyops/internal/pkg/response"
	"agencyops/internal/pkg/validator"
)

// BindJSON decodes and validates the body into dst. On failure it writes the
// 400 response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON")
		return false
	}
	if issues := validator.Validate(dst); issues != nil {
		ValidationFailed(c, issues)
		return false
	}
	return true
}

func ValidationFailed(c *gin.Context, issues []validator.Issue) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", issues)
}

// FieldError writes a 400 when err carries a *validator.FieldError.
func FieldError(c *gin.Context, err error) bool {
	var fe *validator.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	ValidationFailed(c, []validator.Issue{{Field: fe.Field, Message: fe.Message}})
	return true
}

package v1

import (
	"alvant-portal/pkg/apperror"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst and records a 400 on failure.
// Unknown fields are rejected (see NewRouter).
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	msg := "Invalid request body"
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		msg = "Request body is required"
	case errors.As(err, &typeErr):
		msg = "Invalid value for field " + typeErr.Field
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		msg = "Unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	}
	c.Error(apperror.BadRequest(msg))
	return false
}

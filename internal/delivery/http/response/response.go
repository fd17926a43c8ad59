package response

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/validation"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error     string                 `json:"error"`
	Errors    validation.FieldErrors `json:"errors,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// MessageBody acknowledges a write.
type MessageBody struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Success sends data as the whole body; list endpoints return bare arrays.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Message sends {message, id}.
func Message(c *gin.Context, code int, message, id string) {
	c.JSON(code, MessageBody{Message: message, ID: id})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, fields validation.FieldErrors) {
	c.JSON(code, ErrorBody{
		Error:     message,
		Errors:    fields,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string)
	return idStr
}

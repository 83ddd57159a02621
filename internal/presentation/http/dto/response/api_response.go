package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

const (
	// RequestIDHeader carries the request id in and out of the API
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key the logger middleware stores it under
	RequestIDKey = "request_id"
)

// APIResponse is the envelope every /api endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func RequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Meta = &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: RequestID(c),
	}
	c.JSON(status, body)
}

func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// Page sends one page of results with its pagination block
func Page[T any](c *gin.Context, message string, result *pagination.PaginatedResult[T]) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: result})
}

// Error renders err through its AppError. Anything that is not an
// AppError goes out as a generic 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

func ValidationError(c *gin.Context, errs []apperror.FieldError) {
	write(c, http.StatusBadRequest, APIResponse{Message: "Validation failed", Errors: errs})
}

func fail(c *gin.Context, status int, message string) {
	write(c, status, APIResponse{Message: message})
}

func BadRequest(c *gin.Context, message string)   { fail(c, http.StatusBadRequest, message) }
func Unauthorized(c *gin.Context, message string) { fail(c, http.StatusUnauthorized, message) }
func Forbidden(c *gin.Context, message string)    { fail(c, http.StatusForbidden, message) }
func NotFound(c *gin.Context, message string)     { fail(c, http.StatusNotFound, message) }

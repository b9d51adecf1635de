package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	destinationdomain "github.com/prismpay/prism/internal/destination/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware turns the last collected gin error into the
// JSON error envelope, unless a handler already wrote a response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, prismdomain.ErrMissingFields),
		errors.Is(err, destinationdomain.ErrMissingFields):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "missing required fields",
		}
	case errors.Is(err, prismdomain.ErrPercentageSum):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "total percentage must equal 100%",
		}
	case errors.Is(err, prismdomain.ErrInvalidPercentage):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "split percentages must be greater than zero",
		}
	case errors.Is(err, prismdomain.ErrUnknownDestination):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "split destination does not exist",
		}
	case errors.Is(err, destinationdomain.ErrInvalidType):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "unsupported payment destination type",
		}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, contactdomain.ErrInvalidID),
		errors.Is(err, prismdomain.ErrInvalidID),
		errors.Is(err, destinationdomain.ErrInvalidID):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, prismdomain.ErrSlugTaken):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "a prism with this slug already exists",
		}
	case errors.Is(err, destinationdomain.ErrExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "this payment destination already exists for this contact",
		}
	case errors.Is(err, destinationdomain.ErrReferenced):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "this payment destination is used by existing splits",
		}
	case errors.Is(err, contactdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "contact not found",
		}
	case errors.Is(err, prismdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "prism not found",
		}
	case errors.Is(err, destinationdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "payment destination not found",
		}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog maps an error to (type, code) labels for request logs.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status == http.StatusUnauthorized:
		return "auth", payload.Type
	default:
		return "client", payload.Type
	}
}

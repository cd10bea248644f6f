// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// Client-facing status messages.
const (
	MsgNotFound           = "The requested resource could not be found"
	MsgInternal           = "Internal server error"
	MsgTooManyRequests    = "Too Many Requests"
	MsgServiceUnavailable = "Service Unavailable"
	MsgRequestTimeout     = "Request timed out"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	TraceID       string `json:"traceId,omitempty"`
}

// NewErrorResponse creates an error body for status. An empty message falls
// back to the standard status text.
func NewErrorResponse(status int, message string) *ErrorResponse {
	if message == "" {
		message = http.StatusText(status)
	}

	return &ErrorResponse{
		StatusCode:    status,
		StatusMessage: message,
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// GetTraceID returns the trace ID of the request's active span, or "".
func GetTraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Client errors carry their own message; unknown errors are reported as
// 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		message := MsgNotFound
		var nf *domain.NotFoundError
		if errors.As(err, &nf) && nf.Reason != "" {
			message = nf.Reason
		}

		return http.StatusNotFound, NewErrorResponse(http.StatusNotFound, message)

	case domain.IsValidation(err):
		message := err.Error()
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			message = ve.Message
		}

		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, message)

	case domain.IsMissingParameter(err):
		return http.StatusUnprocessableEntity, NewErrorResponse(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, NewErrorResponse(http.StatusServiceUnavailable, MsgRequestTimeout)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(http.StatusServiceUnavailable, MsgServiceUnavailable)

	default:
		return http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, MsgInternal)
	}
}

// HandleError writes the error response for err and records err on the
// gin context, where the request logger picks it up.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.WithTraceID(GetTraceID(c))

	_ = c.Error(err).SetType(gin.ErrorTypePrivate)

	c.JSON(status, errResp)
}

// AbortWithStatus stops the handler chain and writes the standard error body.
// Middleware uses it for failures that have no domain error behind them.
func AbortWithStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(status, message).WithTraceID(GetTraceID(c)))
}

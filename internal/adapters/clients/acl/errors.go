package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/segmentio/encoding/json"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// ErrorResponse is an error body returned by a dataset host. Both the
// nested form ({"error": {"message": ...}}) and the flat form are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetMessage returns the nested message, falling back to the flat one.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. It returns nil when the body is
// empty, not JSON, or carries no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed fetch of resource to a domain error. clientErr
// is set when no response was received.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, resource string) error {
	if clientErr != nil {
		if errors.Is(clientErr, clients.ErrMaxRetriesExceeded) {
			return domain.NewUnavailableError(serviceName, "max retries exceeded fetching "+resource)
		}
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("fetching %s: %v", resource, clientErr))
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	message := fmt.Sprintf("fetching %s failed with status %d", resource, resp.StatusCode)
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		message = errResp.GetMessage()
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewNotFoundError(serviceName+" resource", resource)
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, message)
	default:
		return domain.NewValidationError("", message)
	}
}

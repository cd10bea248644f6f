package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestParseErrorResponse(t *testing.T) {
	assert.Nil(t, ParseErrorResponse(nil))
	assert.Nil(t, ParseErrorResponse(strings.NewReader("not json")))
	assert.Nil(t, ParseErrorResponse(strings.NewReader(`{}`)))

	nested := ParseErrorResponse(strings.NewReader(`{"error": {"code": "X", "message": "nested"}}`))
	if assert.NotNil(t, nested) {
		assert.Equal(t, "nested", nested.GetMessage())
	}

	flat := ParseErrorResponse(strings.NewReader(`{"message": "flat"}`))
	if assert.NotNil(t, flat) {
		assert.Equal(t, "flat", flat.GetMessage())
	}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		err     error
		checker func(error) bool
		message string
	}{
		{
			name:    "retries exhausted",
			err:     fmt.Errorf("%w: boom", clients.ErrMaxRetriesExceeded),
			checker: domain.IsUnavailable,
			message: "max retries exceeded fetching quotes.json",
		},
		{
			name:    "transport error",
			err:     errors.New("connection reset"),
			checker: domain.IsUnavailable,
			message: "connection reset",
		},
		{
			name:    "not found",
			resp:    response(http.StatusNotFound, ""),
			checker: domain.IsNotFound,
			message: "quotes.json",
		},
		{
			name:    "server error uses body message",
			resp:    response(http.StatusInternalServerError, `{"message": "disk full"}`),
			checker: domain.IsUnavailable,
			message: "disk full",
		},
		{
			name:    "rate limited",
			resp:    response(http.StatusTooManyRequests, ""),
			checker: domain.IsUnavailable,
			message: "status 429",
		},
		{
			name:    "forbidden",
			resp:    response(http.StatusForbidden, ""),
			checker: domain.IsValidation,
			message: "status 403",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.resp, tt.err, "dataset", "quotes.json")
			assert.True(t, tt.checker(err), "unexpected error kind: %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	assert.NoError(t, MapHTTPError(response(http.StatusOK, ""), nil, "dataset", "quotes.json"))
	assert.True(t, domain.IsUnavailable(MapHTTPError(nil, nil, "dataset", "quotes.json")))
}

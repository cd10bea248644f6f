package dto

import "github.com/jsamuelsen/quotable-api/internal/domain/query"

// PaginatedResponse is the envelope returned by every list and search endpoint.
type PaginatedResponse[T any] struct {
	// Count is the number of results on this page.
	Count int `json:"count"`

	// TotalCount is the number of results matching the request across all pages.
	TotalCount int `json:"totalCount"`

	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`

	// LastItemIndex is the 1-based index of the last returned item, null when
	// this is the last page.
	LastItemIndex *int `json:"lastItemIndex"`

	Results []T `json:"results"`
}

// NewPaginatedResponse converts an envelope of domain values with convert.
func NewPaginatedResponse[D, T any](env query.Envelope[D], convert func(*D) T) PaginatedResponse[T] {
	results := make([]T, len(env.Results))
	for i := range env.Results {
		results[i] = convert(&env.Results[i])
	}

	return PaginatedResponse[T]{
		Count:         env.Count,
		TotalCount:    env.TotalCount,
		Page:          env.Page,
		TotalPages:    env.TotalPages,
		LastItemIndex: env.LastItemIndex,
		Results:       results,
	}
}

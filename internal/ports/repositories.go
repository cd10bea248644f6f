// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never storage models
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable)
//   - Filters arrive already normalized; adapters only translate them
package ports

import (
	"context"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

// QuoteRepository reads quotes.
//
// Example usage in application layer:
//
//	quotes, total, err := app.Parallel2(ctx,
//	    func(ctx context.Context) ([]domain.Quote, error) { return repo.List(ctx, filter, page) },
//	    func(ctx context.Context) (int, error) { return repo.Count(ctx, filter) },
//	)
type QuoteRepository interface {
	// List returns one page of quotes matching filter.
	// A page with a zero Limit returns every match.
	List(ctx context.Context, filter query.QuoteFilter, page query.Page) ([]domain.Quote, error)

	// Count returns the number of quotes matching filter.
	Count(ctx context.Context, filter query.QuoteFilter) (int, error)

	// GetByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if the quote does not exist.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// Sample returns up to n randomly chosen quotes matching filter.
	// An empty slice means nothing matched.
	Sample(ctx context.Context, filter query.QuoteFilter, n int) ([]domain.Quote, error)
}

// AuthorRepository reads authors.
type AuthorRepository interface {
	// List returns one page of authors matching filter.
	List(ctx context.Context, filter query.AuthorFilterSet, page query.Page) ([]domain.Author, error)

	// Count returns the number of authors matching filter.
	Count(ctx context.Context, filter query.AuthorFilterSet) (int, error)

	// Search returns one page of authors matching a name search, best match first.
	Search(ctx context.Context, search query.AuthorSearch, page query.Page) ([]domain.Author, error)

	// CountSearch returns the number of authors matching a name search.
	CountSearch(ctx context.Context, search query.AuthorSearch) (int, error)

	// GetByID retrieves an author by identifier.
	// Returns domain.ErrNotFound if the author does not exist.
	GetByID(ctx context.Context, id string) (*domain.Author, error)

	// GetBySlug retrieves an author by slug.
	// Returns domain.ErrNotFound if the author does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Author, error)
}

// TagRepository reads tags.
type TagRepository interface {
	// List returns every tag with its computed quote count, in sort order.
	List(ctx context.Context, sort query.SortSpec) ([]domain.Tag, error)

	// Count returns the number of tags.
	Count(ctx context.Context) (int, error)
}

package ports

import "context"

const (
	// FlagAdvancedQuery enables field prefixes, boolean operators and grouping
	// in quote search. When off, search terms match content or tags.
	FlagAdvancedQuery = "advanced-query"

	// FlagAuthorMatchThreshold sets the default number of name terms an
	// author search result must match. A matchThreshold request parameter
	// overrides it.
	FlagAuthorMatchThreshold = "author-match-threshold"
)

// FeatureFlags evaluates flags loaded from the features section of the
// configuration. Every getter falls back to its default when the flag is
// absent or has the wrong type, so a bad flag never fails a request.
type FeatureFlags interface {
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
	GetInt(ctx context.Context, flag string, defaultValue int) int
}

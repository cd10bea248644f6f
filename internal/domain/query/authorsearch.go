package query

import (
	"strings"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// DefaultMatchThreshold is the number of name terms an author must match
// when the query has at least that many terms.
const DefaultMatchThreshold = 2

// AuthorSearch is a composed author name search.
//
// An author is a result when at least MinMatch of Terms match its name.
// Value is matched against the whole name to rank exact matches first.
type AuthorSearch struct {
	Terms    []string
	Value    string
	MinMatch int

	// Autocomplete matches terms as word prefixes instead of whole words.
	Autocomplete bool
}

// IsEmpty reports whether the search can match nothing.
func (s AuthorSearch) IsEmpty() bool {
	return len(s.Terms) == 0
}

// NewAuthorSearch composes the search for a name query. When the query has no
// substantive terms (only initials or honorifics), its normalized full value
// becomes the single term so the search still matches.
func NewAuthorSearch(raw string, threshold int, autocomplete bool) AuthorSearch {
	name := ParseName(raw)

	terms := name.Terms
	if len(terms) == 0 {
		if whole := strings.Join(domain.Words(domain.Deburr(name.Value)), " "); whole != "" {
			terms = []string{whole}
		}
	}

	threshold = max(threshold, 1)

	return AuthorSearch{
		Terms:        terms,
		Value:        strings.Join(domain.Words(domain.Deburr(name.Value)), " "),
		MinMatch:     min(len(terms), threshold),
		Autocomplete: autocomplete,
	}
}

// ParseAuthorSearch reads query, matchThreshold and autocomplete from p.
// threshold applies when matchThreshold is absent or not a number. A missing
// or blank query is an error.
func ParseAuthorSearch(p Params, threshold int) (AuthorSearch, error) {
	raw := strings.TrimSpace(p.Get("query"))
	if raw == "" {
		return AuthorSearch{}, domain.NewMissingParameterError("query")
	}

	if n, ok := ParseInt(p.Get("matchThreshold")); ok {
		threshold = n
	}

	return NewAuthorSearch(raw, threshold, ToBoolean(p.Get("autocomplete"), true)), nil
}

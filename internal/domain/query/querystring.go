package query

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// Limits of the structured query syntax.
const (
	MaxQueryLength    = 150
	MaxQueryOperators = 5
	MaxFieldPrefixes  = 3
)

// Client-facing parser messages.
const (
	MsgQueryTooLong  = "Query exceeded maximum length. See documentation for limits"
	MsgInvalidPrefix = "Query contains an invalid field prefix. Supported fields are content | author | tags"
)

// Searchable fields.
const (
	SearchFieldContent = "content"
	SearchFieldAuthor  = "author"
	SearchFieldTags    = "tags"
)

var (
	quotedPhrase  = regexp.MustCompile(`^(?s:".+"|'.+')$`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}:\s()\[\]]`)
	operatorWord  = regexp.MustCompile(`\b(?:AND|OR|NOT)\b`)
	fieldPrefix   = regexp.MustCompile(`([\p{L}\p{N}_]+):`)
	contentPrefix = regexp.MustCompile(`(?i)\bcontent:([\p{L}\p{N}_]+|\([\p{L}\p{N}_ ]+\))`)
)

// ParsedQuery is a validated free-text query ready for the storage search.
type ParsedQuery struct {
	// Query is the normalized query string.
	Query string

	// ExactPhrase is set when the user quoted the whole query. Query then
	// holds the lower-cased words of the phrase.
	ExactPhrase bool
}

// IsEmpty reports whether nothing is left to search for.
func (q ParsedQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == ""
}

// ParseQuery validates and normalizes a free-text query.
//
// A query wrapped in matching quotes is an exact phrase. Anything else is a
// structured query: characters other than letters, digits, whitespace,
// parentheses, brackets and colons are dropped, operators (AND, OR, NOT) and
// field prefixes (content:, author:, tags:) are counted against their limits,
// and content:term is widened to also match tags.
func ParseQuery(raw string) (ParsedQuery, error) {
	trimmed := strings.TrimSpace(raw)

	if quotedPhrase.MatchString(trimmed) {
		return ParsedQuery{
			Query:       strings.Join(domain.Words(trimmed), " "),
			ExactPhrase: true,
		}, nil
	}

	q := strings.TrimSpace(disallowed.ReplaceAllString(trimmed, ""))

	operators := len(operatorWord.FindAllString(q, -1))
	prefixes := fieldPrefix.FindAllStringSubmatch(q, -1)

	if operators > MaxQueryOperators || len(prefixes) > MaxFieldPrefixes || utf8.RuneCountInString(q) > MaxQueryLength {
		return ParsedQuery{}, domain.NewValidationErrorWithValue("query", MsgQueryTooLong, raw)
	}

	for _, m := range prefixes {
		if !IsSearchField(m[1]) {
			return ParsedQuery{}, domain.NewValidationErrorWithValue("query", MsgInvalidPrefix, raw)
		}
	}

	q = contentPrefix.ReplaceAllString(q, "(content:$1 OR tags:$1)")

	return ParsedQuery{Query: q}, nil
}

// IsSearchField reports whether name is a supported field prefix.
func IsSearchField(name string) bool {
	switch strings.ToLower(name) {
	case SearchFieldContent, SearchFieldAuthor, SearchFieldTags:
		return true
	default:
		return false
	}
}

package query

import (
	"strconv"
	"strings"
)

// Order is a sort direction.
type Order int

// Sort directions.
const (
	Ascending  Order = 1
	Descending Order = -1
)

// String returns "asc" or "desc".
func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Sortable field names understood by the storage adapters.
const (
	FieldDateAdded    = "dateAdded"
	FieldDateModified = "dateModified"
	FieldAuthor       = "author"
	FieldContent      = "content"
	FieldName         = "name"
	FieldQuoteCount   = "quoteCount"
	FieldRelevance    = "relevance"
)

// SortField is a sortable field and the order it uses unless the request
// says otherwise.
type SortField struct {
	Field string
	Order Order
}

// SortConfig whitelists the sortBy values of one endpoint. Keys of Fields are
// matched case-insensitively.
type SortConfig struct {
	Default SortField
	Fields  map[string]SortField
}

// SortSpec is a resolved sort.
type SortSpec struct {
	Field string
	Order Order
}

// NewSortConfig builds a SortConfig keyed by the lower-cased field names.
func NewSortConfig(def SortField, fields ...SortField) SortConfig {
	cfg := SortConfig{Default: def, Fields: make(map[string]SortField, len(fields))}
	for _, f := range fields {
		cfg.Fields[strings.ToLower(f.Field)] = f
	}

	return cfg
}

// Sort configurations per endpoint.
var (
	QuoteSort = NewSortConfig(
		SortField{FieldDateAdded, Descending},
		SortField{FieldDateAdded, Descending},
		SortField{FieldDateModified, Descending},
		SortField{FieldAuthor, Ascending},
		SortField{FieldContent, Ascending},
	)

	AuthorSort = NewSortConfig(
		SortField{FieldName, Ascending},
		SortField{FieldName, Ascending},
		SortField{FieldQuoteCount, Descending},
		SortField{FieldDateAdded, Descending},
		SortField{FieldDateModified, Descending},
	)

	TagSort = NewSortConfig(
		SortField{FieldName, Ascending},
		SortField{FieldName, Ascending},
		SortField{FieldQuoteCount, Descending},
	)

	SearchQuoteSort = NewSortConfig(
		SortField{FieldRelevance, Descending},
		SortField{FieldRelevance, Descending},
		SortField{FieldDateAdded, Descending},
		SortField{FieldAuthor, Ascending},
		SortField{FieldContent, Ascending},
	)
)

// ParseSortOrder reads asc, ascending, desc, descending, 1 or -1.
// ok is false for anything else.
func ParseSortOrder(s string) (o Order, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}

	switch f {
	case 1:
		return Ascending, true
	case -1:
		return Descending, true
	default:
		return 0, false
	}
}

// NormalizeSort resolves sortBy and sortOrder (or its alias order) against
// cfg. Unknown fields and unreadable orders fall back silently.
func NormalizeSort(p Params, cfg SortConfig) SortSpec {
	field, known := cfg.Fields[strings.ToLower(strings.TrimSpace(p.Get("sortBy")))]
	if !known {
		field = cfg.Default
	}

	spec := SortSpec{Field: field.Field, Order: field.Order}
	if o, ok := ParseSortOrder(p.First("sortOrder", "order")); ok {
		spec.Order = o
	}

	return spec
}

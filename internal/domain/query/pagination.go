package query

// Default bounds shared by every list endpoint.
const (
	DefaultLimit   = 20
	MaxLimit       = 150
	MaxSkip        = 10000
	MaxRandomCount = 50
	MaxLength      = 10000
)

// Limits bounds pagination. The zero value is not usable; start from
// DefaultLimits.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
	MaxSkip      int
}

// DefaultLimits returns the built-in pagination bounds.
func DefaultLimits() Limits {
	return Limits{
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
		MaxSkip:      MaxSkip,
	}
}

// Pagination is the normalized page window of a list request.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// NormalizePagination resolves page, limit and skip.
//
// limit is clamped to [1, MaxLimit] and defaults to DefaultLimit. page is at
// least 1 and determines skip. When skip is supplied at all it wins over page,
// and page is derived back from it.
func NormalizePagination(p Params, limits Limits) Pagination {
	limit := limits.DefaultLimit
	if n, ok := ParseInt(p.Get("limit")); ok {
		limit = clamp(n, 1, limits.MaxLimit)
	}

	page := 1
	if n, ok := ParseInt(p.Get("page")); ok {
		page = max(n, 1)
	}

	skip := limits.MaxSkip
	if page-1 < limits.MaxSkip {
		skip = clamp((page-1)*limit, 0, limits.MaxSkip)
	}

	if p.Has("skip") {
		skip = 0
		if n, ok := ParseInt(p.Get("skip")); ok {
			skip = clamp(n, 0, limits.MaxSkip)
		}

		page = skip/limit + 1
	}

	return Pagination{Page: page, Limit: limit, Skip: skip}
}

// RandomCount resolves the number of quotes a random request returns:
// between 1 and maxCount, 1 by default.
func RandomCount(p Params, maxCount int) int {
	if n, ok := ParseInt(p.Get("limit")); ok {
		return clamp(n, 1, maxCount)
	}

	return 1
}

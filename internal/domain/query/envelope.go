package query

// Envelope is a page of results with its pagination metadata.
type Envelope[T any] struct {
	Count      int
	TotalCount int
	Page       int
	TotalPages int

	// LastItemIndex is the 1-based position of the last returned result, or
	// nil when no results remain past this page.
	LastItemIndex *int

	Results []T
}

// BuildEnvelope assembles the envelope for one page of results.
func BuildEnvelope[T any](results []T, totalCount int, p Pagination) Envelope[T] {
	if results == nil {
		results = []T{}
	}

	env := Envelope[T]{
		Count:      len(results),
		TotalCount: totalCount,
		Page:       p.Page,
		Results:    results,
	}

	if p.Limit > 0 {
		env.TotalPages = (totalCount + p.Limit - 1) / p.Limit
	}

	if last := p.Skip + len(results); last < totalCount {
		env.LastItemIndex = &last
	}

	return env
}

package query

import (
	"math"
	"slices"
	"strings"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// Separators accepted in multi-value parameters.
const (
	anySeparator = "|"
	allSeparator = ","
)

// MsgAuthorComma is returned when an author list uses commas.
const MsgAuthorComma = "Multiple authors should be separated by a pipe."

// TagFilter restricts quotes by tag. It is either AnyOfTags or AllOfTags.
type TagFilter interface {
	// Keys returns the title-cased tag names the filter compares against.
	Keys() []string
	tagFilter()
}

// AnyOfTags matches quotes that carry at least one of the tags.
type AnyOfTags struct {
	Tags []string
}

// AllOfTags matches quotes that carry every one of the tags.
type AllOfTags struct {
	Tags []string
}

func (f AnyOfTags) Keys() []string { return f.Tags }
func (f AllOfTags) Keys() []string { return f.Tags }
func (AnyOfTags) tagFilter() {}
func (AllOfTags) tagFilter() {}

// ParseTags builds the tag filter for raw. A pipe anywhere makes it an
// AnyOfTags split on pipes, and any comma alongside it stays part of a tag
// name. Otherwise the value is split on commas into an AllOfTags. The result
// is nil when raw is blank. A value naming no usable tag, such as "|",
// yields a filter with no tags, which matches nothing.
func ParseTags(raw string) TagFilter {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if strings.Contains(raw, anySeparator) {
		return AnyOfTags{Tags: tagKeys(strings.Split(raw, anySeparator))}
	}

	return AllOfTags{Tags: tagKeys(strings.Split(raw, allSeparator))}
}

func tagKeys(parts []string) []string {
	keys := []string{}
	for _, part := range parts {
		key := domain.TitleCase(part)
		if key == "" || slices.Contains(keys, key) {
			continue
		}
		keys = append(keys, key)
	}

	return keys
}

// AuthorFilter restricts quotes by author. It is either AuthorsBySlug or
// AuthorsByID.
type AuthorFilter interface {
	authorFilter()
}

// AuthorsBySlug matches quotes whose author slug is one of Slugs.
type AuthorsBySlug struct {
	Slugs []string
}

// AuthorsByID matches quotes whose legacy author id is one of IDs.
type AuthorsByID struct {
	IDs []string
}

func (AuthorsBySlug) authorFilter() {}
func (AuthorsByID) authorFilter() {}

// ParseAuthor builds the author filter. author holds names or slugs joined
// by pipes and takes precedence over the deprecated authorID list. A comma
// in author is rejected. The filter is nil when neither is given; a value
// that yields no usable slug or id matches nothing.
func ParseAuthor(author, authorID string) (AuthorFilter, error) {
	if strings.TrimSpace(author) != "" {
		if strings.Contains(author, allSeparator) {
			return nil, domain.NewValidationErrorWithValue("author", MsgAuthorComma, author)
		}

		slugs := []string{}
		for _, name := range strings.Split(author, anySeparator) {
			if slug := domain.Slug(name); slug != "" && !slices.Contains(slugs, slug) {
				slugs = append(slugs, slug)
			}
		}

		return AuthorsBySlug{Slugs: slugs}, nil
	}

	if strings.TrimSpace(authorID) == "" {
		return nil, nil
	}

	ids := []string{}
	for _, id := range strings.Split(authorID, anySeparator) {
		if id = strings.TrimSpace(id); id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return AuthorsByID{IDs: ids}, nil
}

// LengthRange bounds quote length, both ends inclusive.
type LengthRange struct {
	Min int
	Max int
}

// ParseLength builds a length range. Missing, zero or non-numeric bounds fall
// back to 0 and MaxLength. The range is nil when neither bound is given.
func ParseLength(minRaw, maxRaw string) *LengthRange {
	if strings.TrimSpace(minRaw) == "" && strings.TrimSpace(maxRaw) == "" {
		return nil
	}

	r := &LengthRange{Min: 0, Max: MaxLength}
	if f, ok := ParseNumber(minRaw); ok && f != 0 {
		r.Min = int(math.Ceil(math.Max(f, math.MinInt32)))
	}
	if f, ok := ParseNumber(maxRaw); ok && f != 0 {
		r.Max = int(math.Floor(math.Min(f, math.MaxInt32)))
	}

	return r
}

// TextSearch is a parsed free-text query.
type TextSearch struct {
	Query ParsedQuery

	// Advanced enables field prefixes, boolean operators and grouping.
	// Without it every term is matched against content and tags.
	Advanced bool
}

// QuoteFilter combines independent quote filters. Nil members do not
// restrict. All set members must hold.
type QuoteFilter struct {
	Author AuthorFilter
	Tags   TagFilter
	Length *LengthRange
	Text   *TextSearch
}

// AuthorFilterSet restricts author listings.
type AuthorFilterSet struct {
	// Name matches authors whose name contains it, ignoring case.
	Name string

	// Slugs matches any of the given slugs. Nil does not restrict; an empty
	// non-nil slice matches nothing.
	Slugs []string
}

// ParseAuthorListFilter reads name and slug from p.
func ParseAuthorListFilter(p Params) AuthorFilterSet {
	f := AuthorFilterSet{Name: strings.TrimSpace(p.Get("name"))}
	if strings.TrimSpace(p.Get("slug")) == "" {
		return f
	}

	f.Slugs = []string{}
	for _, s := range strings.Split(p.Get("slug"), anySeparator) {
		if slug := domain.Slug(s); slug != "" && !slices.Contains(f.Slugs, slug) {
			f.Slugs = append(f.Slugs, slug)
		}
	}

	return f
}

// Page is the window and ordering of a list read.
type Page struct {
	Skip  int
	Limit int
	Sort  SortSpec
}

// PageOf combines a pagination window with a sort.
func PageOf(p Pagination, s SortSpec) Page {
	return Page{Skip: p.Skip, Limit: p.Limit, Sort: s}
}

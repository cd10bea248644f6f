package domain

import "unicode/utf16"

// Quote represents a quotation with its author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID string

	// Content is the text of the quote.
	Content string

	// Author is the display name of who said or wrote the quote.
	Author string

	// AuthorSlug identifies the author and is derived from the author name.
	AuthorSlug string

	// AuthorID is the legacy author identifier. It is never rendered.
	AuthorID string

	// Tags are categories or themes associated with the quote.
	Tags []string

	// Length is the character count of Content.
	Length int

	DateAdded    string
	DateModified string
}

// QuoteLength returns the length of a quote's content in UTF-16 code units,
// so a character outside the Basic Multilingual Plane counts twice.
func QuoteLength(content string) int {
	n := 0
	for _, r := range content {
		n += utf16.RuneLen(r)
	}

	return n
}

// Author is a person quotes are attributed to.
type Author struct {
	ID          string
	Name        string
	Slug        string
	Bio         string
	Description string
	Link        string

	// QuoteCount is the number of quotes whose AuthorSlug equals Slug.
	QuoteCount int

	DateAdded    string
	DateModified string
}

// AuthorProfile is an author together with every quote attributed to them.
type AuthorProfile struct {
	Author Author
	Quotes []Quote
}

// Tag is a quote category. QuoteCount is computed when tags are read.
type Tag struct {
	ID           string
	Name         string
	QuoteCount   int
	DateAdded    string
	DateModified string
}

// Counts holds the size of each collection.
type Counts struct {
	Quotes  int
	Authors int
	Tags    int
}

// Info describes the dataset served by the API.
type Info struct {
	Version string
	Count   Counts
}

// Dataset is a complete set of records to load into storage.
// Tags may be empty, in which case they are derived from quote tags.
type Dataset struct {
	Quotes  []Quote
	Authors []Author
	Tags    []Tag
}

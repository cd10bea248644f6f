package dto

import "github.com/jsamuelsen/quotable-api/internal/domain"

// QuoteResponse is the JSON form of a quote.
type QuoteResponse struct {
	ID           string   `json:"_id"`
	Content      string   `json:"content"`
	Author       string   `json:"author"`
	AuthorSlug   string   `json:"authorSlug"`
	Length       int      `json:"length"`
	Tags         []string `json:"tags"`
	DateAdded    string   `json:"dateAdded"`
	DateModified string   `json:"dateModified"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	return QuoteResponse{
		ID:           q.ID,
		Content:      q.Content,
		Author:       q.Author,
		AuthorSlug:   q.AuthorSlug,
		Length:       q.Length,
		Tags:         tags,
		DateAdded:    q.DateAdded,
		DateModified: q.DateModified,
	}
}

// NewQuoteResponses converts a slice of quotes. The result is never nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = NewQuoteResponse(&quotes[i])
	}

	return out
}

// AuthorResponse is the JSON form of an author.
type AuthorResponse struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Bio          string `json:"bio"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	QuoteCount   int    `json:"quoteCount"`
	DateAdded    string `json:"dateAdded"`
	DateModified string `json:"dateModified"`
}

// NewAuthorResponse converts a domain author.
func NewAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Bio:          a.Bio,
		Description:  a.Description,
		Link:         a.Link,
		QuoteCount:   a.QuoteCount,
		DateAdded:    a.DateAdded,
		DateModified: a.DateModified,
	}
}

// AuthorProfileResponse is an author with their quotes.
type AuthorProfileResponse struct {
	AuthorResponse
	Quotes []QuoteResponse `json:"quotes"`
}

// NewAuthorProfileResponse converts an author profile.
func NewAuthorProfileResponse(p *domain.AuthorProfile) AuthorProfileResponse {
	return AuthorProfileResponse{
		AuthorResponse: NewAuthorResponse(&p.Author),
		Quotes:         NewQuoteResponses(p.Quotes),
	}
}

// TagResponse is the JSON form of a tag.
type TagResponse struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	QuoteCount   int    `json:"quoteCount"`
	DateAdded    string `json:"dateAdded"`
	DateModified string `json:"dateModified"`
}

// NewTagResponses converts tags. The result is never nil.
func NewTagResponses(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = TagResponse{
			ID:           t.ID,
			Name:         t.Name,
			QuoteCount:   t.QuoteCount,
			DateAdded:    t.DateAdded,
			DateModified: t.DateModified,
		}
	}

	return out
}

// CountResponse holds the size of each collection.
type CountResponse struct {
	Quotes  int `json:"quotes"`
	Authors int `json:"authors"`
	Tags    int `json:"tags"`
}

// NewCountResponse converts collection counts.
func NewCountResponse(c domain.Counts) CountResponse {
	return CountResponse{Quotes: c.Quotes, Authors: c.Authors, Tags: c.Tags}
}

// InfoResponse describes the dataset served by the API.
type InfoResponse struct {
	Count   CountResponse `json:"count"`
	Version string        `json:"version"`
}

// NewInfoResponse converts dataset info.
func NewInfoResponse(info *domain.Info) InfoResponse {
	return InfoResponse{Count: NewCountResponse(info.Count), Version: info.Version}
}

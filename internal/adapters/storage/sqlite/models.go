package sqlite

import (
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

type quoteModel struct {
	bun.BaseModel `bun:"table:quotes,alias:q"`

	ID           string `bun:"id,pk"`
	Content      string `bun:"content"`
	Author       string `bun:"author"`
	AuthorSlug   string `bun:"author_slug"`
	AuthorID     string `bun:"author_id"`
	Tags         string `bun:"tags"`
	Length       int    `bun:"length"`
	DateAdded    string `bun:"date_added"`
	DateModified string `bun:"date_modified"`
}

func newQuoteModel(q domain.Quote) (*quoteModel, error) {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	return &quoteModel{
		ID:           q.ID,
		Content:      q.Content,
		Author:       q.Author,
		AuthorSlug:   q.AuthorSlug,
		AuthorID:     q.AuthorID,
		Tags:         string(raw),
		Length:       q.Length,
		DateAdded:    q.DateAdded,
		DateModified: q.DateModified,
	}, nil
}

func (m *quoteModel) toDomain() (domain.Quote, error) {
	tags := []string{}
	if m.Tags != "" {
		if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
			return domain.Quote{}, err
		}
	}

	return domain.Quote{
		ID:           m.ID,
		Content:      m.Content,
		Author:       m.Author,
		AuthorSlug:   m.AuthorSlug,
		AuthorID:     m.AuthorID,
		Tags:         tags,
		Length:       m.Length,
		DateAdded:    m.DateAdded,
		DateModified: m.DateModified,
	}, nil
}

func quotesToDomain(models []quoteModel) ([]domain.Quote, error) {
	quotes := make([]domain.Quote, 0, len(models))
	for i := range models {
		q, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

type quoteTagModel struct {
	bun.BaseModel `bun:"table:quote_tags,alias:qt"`

	QuoteID string `bun:"quote_id,pk"`
	TagKey  string `bun:"tag_key,pk"`
}

type quoteSearchModel struct {
	bun.BaseModel `bun:"table:quotes_fts"`

	QuoteID string `bun:"quote_id"`
	Body    string `bun:"body"`
	Author  string `bun:"author"`
	Tags    string `bun:"tags"`
}

type authorModel struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID           string `bun:"id,pk"`
	Name         string `bun:"name"`
	Slug         string `bun:"slug"`
	SearchName   string `bun:"search_name"`
	Bio          string `bun:"bio"`
	Description  string `bun:"description"`
	Link         string `bun:"link"`
	QuoteCount   int    `bun:"quote_count"`
	DateAdded    string `bun:"date_added"`
	DateModified string `bun:"date_modified"`
}

func newAuthorModel(a domain.Author) *authorModel {
	return &authorModel{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		SearchName:   searchName(a.Name),
		Bio:          a.Bio,
		Description:  a.Description,
		Link:         a.Link,
		QuoteCount:   a.QuoteCount,
		DateAdded:    a.DateAdded,
		DateModified: a.DateModified,
	}
}

func (m *authorModel) toDomain() domain.Author {
	return domain.Author{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Bio:          m.Bio,
		Description:  m.Description,
		Link:         m.Link,
		QuoteCount:   m.QuoteCount,
		DateAdded:    m.DateAdded,
		DateModified: m.DateModified,
	}
}

func authorsToDomain(models []authorModel) []domain.Author {
	authors := make([]domain.Author, 0, len(models))
	for i := range models {
		authors = append(authors, models[i].toDomain())
	}

	return authors
}

// searchName is the form author names are matched in: lower-cased,
// diacritic-free words padded with spaces so every word, including the
// first and last, is preceded and followed by a space.
func searchName(name string) string {
	return " " + strings.Join(domain.Words(domain.Deburr(name)), " ") + " "
}

type tagModel struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID           string `bun:"id,pk"`
	Name         string `bun:"name"`
	Key          string `bun:"key"`
	QuoteCount   int    `bun:"quote_count,scanonly"`
	DateAdded    string `bun:"date_added"`
	DateModified string `bun:"date_modified"`
}

func (m *tagModel) toDomain() domain.Tag {
	return domain.Tag{
		ID:           m.ID,
		Name:         m.Name,
		QuoteCount:   m.QuoteCount,
		DateAdded:    m.DateAdded,
		DateModified: m.DateModified,
	}
}

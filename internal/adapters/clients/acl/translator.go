package acl

import (
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// Dataset file names, relative to a directory or base URL.
const (
	QuotesFile  = "quotes.json"
	AuthorsFile = "authors.json"
	TagsFile    = "tags.json"
)

// quoteRecord, authorRecord and tagRecord are the dataset file formats.
// Derived fields (length, slugs, quote counts) are accepted but ignored;
// the importer recomputes them.
type quoteRecord struct {
	ID           string   `json:"_id"`
	AltID        string   `json:"id"`
	Content      string   `json:"content"`
	Author       string   `json:"author"`
	AuthorID     string   `json:"authorId"`
	Tags         []string `json:"tags"`
	DateAdded    string   `json:"dateAdded"`
	DateModified string   `json:"dateModified"`
}

type authorRecord struct {
	ID           string `json:"_id"`
	AltID        string `json:"id"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	DateAdded    string `json:"dateAdded"`
	DateModified string `json:"dateModified"`
}

type tagRecord struct {
	ID           string `json:"_id"`
	AltID        string `json:"id"`
	Name         string `json:"name"`
	DateAdded    string `json:"dateAdded"`
	DateModified string `json:"dateModified"`
}

// Translator converts one dataset record into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every record and stops at the first
// error, reporting the failing index.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

// ValidateRequired reports a blank required field.
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

func firstID(ids ...string) string {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

func translateQuote(ext *quoteRecord) (domain.Quote, error) {
	if err := ValidateRequired(ext.Content, "content"); err != nil {
		return domain.Quote{}, err
	}
	if err := ValidateRequired(ext.Author, "author"); err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		ID:           firstID(ext.ID, ext.AltID),
		Content:      ext.Content,
		Author:       strings.TrimSpace(ext.Author),
		AuthorID:     ext.AuthorID,
		Tags:         ext.Tags,
		DateAdded:    ext.DateAdded,
		DateModified: ext.DateModified,
	}, nil
}

func translateAuthor(ext *authorRecord) (domain.Author, error) {
	if err := ValidateRequired(ext.Name, "name"); err != nil {
		return domain.Author{}, err
	}

	return domain.Author{
		ID:           firstID(ext.ID, ext.AltID),
		Name:         strings.TrimSpace(ext.Name),
		Bio:          ext.Bio,
		Description:  ext.Description,
		Link:         ext.Link,
		DateAdded:    ext.DateAdded,
		DateModified: ext.DateModified,
	}, nil
}

func translateTag(ext *tagRecord) (domain.Tag, error) {
	if err := ValidateRequired(ext.Name, "name"); err != nil {
		return domain.Tag{}, err
	}

	return domain.Tag{
		ID:           firstID(ext.ID, ext.AltID),
		Name:         strings.TrimSpace(ext.Name),
		DateAdded:    ext.DateAdded,
		DateModified: ext.DateModified,
	}, nil
}

// decodeRecords decodes a JSON array of records and translates each one.
func decodeRecords[E any, D any](r io.Reader, file string, translate Translator[E, D]) ([]D, error) {
	var records []E
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}

	items, err := TranslateSlice(records, translate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return items, nil
}

// DecodeQuotes reads a quotes file.
func DecodeQuotes(r io.Reader) ([]domain.Quote, error) {
	return decodeRecords[quoteRecord, domain.Quote](r, QuotesFile, translateQuote)
}

// DecodeAuthors reads an authors file.
func DecodeAuthors(r io.Reader) ([]domain.Author, error) {
	return decodeRecords[authorRecord, domain.Author](r, AuthorsFile, translateAuthor)
}

// DecodeTags reads a tags file.
func DecodeTags(r io.Reader) ([]domain.Tag, error) {
	return decodeRecords[tagRecord, domain.Tag](r, TagsFile, translateTag)
}

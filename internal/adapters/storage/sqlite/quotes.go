package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

var quoteSortColumns = map[string]string{
	query.FieldDateAdded:    "q.date_added",
	query.FieldDateModified: "q.date_modified",
	query.FieldAuthor:       "q.author COLLATE NOCASE",
	query.FieldContent:      "q.content COLLATE NOCASE",
}

// QuoteRepository implements ports.QuoteRepository.
type QuoteRepository struct {
	db bun.IDB
}

// NewQuoteRepository creates a quote repository on db.
func NewQuoteRepository(db bun.IDB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// List implements ports.QuoteRepository.
func (r *QuoteRepository) List(ctx context.Context, filter query.QuoteFilter, page query.Page) ([]domain.Quote, error) {
	var models []quoteModel

	q := r.db.NewSelect().Model(&models)

	ranked := filter.Text != nil && page.Sort.Field == query.FieldRelevance
	if ranked {
		match := matchExpression(*filter.Text)
		if match == "" {
			return []domain.Quote{}, nil
		}

		q = q.Join("JOIN quotes_fts ON quotes_fts.quote_id = q.id").
			Where("quotes_fts MATCH ?", match).
			OrderExpr("bm25(quotes_fts) " + relevanceOrder(page.Sort.Order))

		filter.Text = nil
	} else if page.Sort.Field == query.FieldRelevance {
		page.Sort = query.SortSpec{Field: query.FieldDateAdded, Order: query.Descending}
	}

	q, ok := applyQuoteFilter(q, filter)
	if !ok {
		return []domain.Quote{}, nil
	}

	if column, found := quoteSortColumns[page.Sort.Field]; found {
		q = q.OrderExpr(column + " " + sqlOrder(page.Sort.Order))
	}

	q = q.OrderExpr("q.id ASC")

	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Skip)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	quotes, err := quotesToDomain(models)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return quotes, nil
}

// Count implements ports.QuoteRepository.
func (r *QuoteRepository) Count(ctx context.Context, filter query.QuoteFilter) (int, error) {
	q, ok := applyQuoteFilter(r.db.NewSelect().Model((*quoteModel)(nil)), filter)
	if !ok {
		return 0, nil
	}

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// GetByID implements ports.QuoteRepository.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	model := new(quoteModel)

	err := r.db.NewSelect().Model(model).Where("q.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, storageError(err, "quote", id)
	}

	quote, err := model.toDomain()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &quote, nil
}

// Sample implements ports.QuoteRepository.
func (r *QuoteRepository) Sample(ctx context.Context, filter query.QuoteFilter, n int) ([]domain.Quote, error) {
	var models []quoteModel

	q, ok := applyQuoteFilter(r.db.NewSelect().Model(&models), filter)
	if !ok || n <= 0 {
		return []domain.Quote{}, nil
	}

	if err := q.OrderExpr("RANDOM()").Limit(n).Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	quotes, err := quotesToDomain(models)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return quotes, nil
}

// applyQuoteFilter adds the filter's predicates to q. ok is false when the
// filter can match nothing and no query needs to run.
func applyQuoteFilter(q *bun.SelectQuery, filter query.QuoteFilter) (_ *bun.SelectQuery, ok bool) {
	switch f := filter.Author.(type) {
	case query.AuthorsBySlug:
		if len(f.Slugs) == 0 {
			return q, false
		}
		q = q.Where("q.author_slug IN (?)", bun.In(f.Slugs))
	case query.AuthorsByID:
		if len(f.IDs) == 0 {
			return q, false
		}
		q = q.Where("q.author_id IN (?)", bun.In(f.IDs))
	}

	if filter.Tags != nil && len(filter.Tags.Keys()) == 0 {
		return q, false
	}

	switch f := filter.Tags.(type) {
	case query.AnyOfTags:
		q = q.Where("q.id IN (SELECT quote_id FROM quote_tags WHERE tag_key IN (?))", bun.In(f.Tags))
	case query.AllOfTags:
		q = q.Where(
			"q.id IN (SELECT quote_id FROM quote_tags WHERE tag_key IN (?) GROUP BY quote_id HAVING COUNT(DISTINCT tag_key) = ?)",
			bun.In(f.Tags), len(f.Tags),
		)
	}

	if filter.Length != nil {
		q = q.Where("q.length BETWEEN ? AND ?", filter.Length.Min, filter.Length.Max)
	}

	if filter.Text != nil {
		match := matchExpression(*filter.Text)
		if match == "" {
			return q, false
		}
		q = q.Where("q.id IN (SELECT quote_id FROM quotes_fts WHERE quotes_fts MATCH ?)", match)
	}

	return q, true
}

// relevanceOrder sorts bm25 scores, which are lower for better matches.
func relevanceOrder(o query.Order) string {
	if o == query.Ascending {
		return "DESC"
	}
	return "ASC"
}

func sqlOrder(o query.Order) string {
	if o == query.Descending {
		return "DESC"
	}
	return "ASC"
}

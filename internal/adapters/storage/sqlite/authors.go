package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

var authorSortColumns = map[string]string{
	query.FieldName:         "a.name COLLATE NOCASE",
	query.FieldQuoteCount:   "a.quote_count",
	query.FieldDateAdded:    "a.date_added",
	query.FieldDateModified: "a.date_modified",
}

// AuthorRepository implements ports.AuthorRepository.
type AuthorRepository struct {
	db bun.IDB
}

// NewAuthorRepository creates an author repository on db.
func NewAuthorRepository(db bun.IDB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// List implements ports.AuthorRepository.
func (r *AuthorRepository) List(ctx context.Context, filter query.AuthorFilterSet, page query.Page) ([]domain.Author, error) {
	var models []authorModel

	q := applyAuthorFilter(r.db.NewSelect().Model(&models), filter)

	if column, ok := authorSortColumns[page.Sort.Field]; ok {
		q = q.OrderExpr(column + " " + sqlOrder(page.Sort.Order))
	}

	q = q.OrderExpr("a.id ASC")

	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Skip)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return authorsToDomain(models), nil
}

// Count implements ports.AuthorRepository.
func (r *AuthorRepository) Count(ctx context.Context, filter query.AuthorFilterSet) (int, error) {
	count, err := applyAuthorFilter(r.db.NewSelect().Model((*authorModel)(nil)), filter).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// Search implements ports.AuthorRepository. Results are ranked by an exact
// full-name match, then by whether the name contains the whole query, then by
// the number of matched terms and finally by quote count.
func (r *AuthorRepository) Search(ctx context.Context, search query.AuthorSearch, page query.Page) ([]domain.Author, error) {
	if search.IsEmpty() {
		return []domain.Author{}, nil
	}

	var models []authorModel

	matched, args := termMatchExpr(search)
	value := strings.TrimSpace(search.Value)

	q := r.db.NewSelect().
		Model(&models).
		Where("("+matched+") >= ?", append(args, search.MinMatch)...).
		OrderExpr("CASE WHEN a.search_name = ? THEN 1 ELSE 0 END DESC", " "+value+" ").
		OrderExpr("CASE WHEN a.search_name LIKE ? THEN 1 ELSE 0 END DESC", likePattern(value, search.Autocomplete)).
		OrderExpr("("+matched+") DESC", args...).
		OrderExpr("a.quote_count DESC").
		OrderExpr("a.name COLLATE NOCASE ASC")

	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Skip)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return authorsToDomain(models), nil
}

// CountSearch implements ports.AuthorRepository.
func (r *AuthorRepository) CountSearch(ctx context.Context, search query.AuthorSearch) (int, error) {
	if search.IsEmpty() {
		return 0, nil
	}

	matched, args := termMatchExpr(search)

	count, err := r.db.NewSelect().
		Model((*authorModel)(nil)).
		Where("("+matched+") >= ?", append(args, search.MinMatch)...).
		Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// GetByID implements ports.AuthorRepository.
func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*domain.Author, error) {
	return r.get(ctx, "a.id = ?", id)
}

// GetBySlug implements ports.AuthorRepository.
func (r *AuthorRepository) GetBySlug(ctx context.Context, slug string) (*domain.Author, error) {
	return r.get(ctx, "a.slug = ?", slug)
}

func (r *AuthorRepository) get(ctx context.Context, where, value string) (*domain.Author, error) {
	model := new(authorModel)

	if err := r.db.NewSelect().Model(model).Where(where, value).Scan(ctx); err != nil {
		return nil, storageError(err, "author", value)
	}

	author := model.toDomain()

	return &author, nil
}

func applyAuthorFilter(q *bun.SelectQuery, filter query.AuthorFilterSet) *bun.SelectQuery {
	if filter.Name != "" {
		q = q.Where("a.search_name LIKE ?", "%"+strings.Join(domain.Words(domain.Deburr(filter.Name)), " ")+"%")
	}

	switch {
	case filter.Slugs == nil:
	case len(filter.Slugs) == 0:
		q = q.Where("1 = 0")
	default:
		q = q.Where("a.slug IN (?)", bun.In(filter.Slugs))
	}

	return q
}

// termMatchExpr returns an SQL expression counting how many search terms
// match the author's name, and its arguments.
func termMatchExpr(search query.AuthorSearch) (string, []any) {
	parts := make([]string, len(search.Terms))
	args := make([]any, len(search.Terms))

	for i, term := range search.Terms {
		parts[i] = "(CASE WHEN a.search_name LIKE ? THEN 1 ELSE 0 END)"
		args[i] = likePattern(term, search.Autocomplete)
	}

	return strings.Join(parts, " + "), args
}

// likePattern matches term at a word start, as a word prefix when
// autocomplete is on and as whole words otherwise.
func likePattern(term string, autocomplete bool) string {
	if autocomplete {
		return "% " + term + "%"
	}
	return "% " + term + " %"
}

package sqlite

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

var tagSortColumns = map[string]string{
	query.FieldName:       "t.name COLLATE NOCASE",
	query.FieldQuoteCount: "quote_count",
}

// TagRepository implements ports.TagRepository.
type TagRepository struct {
	db bun.IDB
}

// NewTagRepository creates a tag repository on db.
func NewTagRepository(db bun.IDB) *TagRepository {
	return &TagRepository{db: db}
}

// List implements ports.TagRepository. Quote counts are computed from the
// quote_tags index on every call.
func (r *TagRepository) List(ctx context.Context, sort query.SortSpec) ([]domain.Tag, error) {
	var models []tagModel

	q := r.db.NewSelect().
		Model(&models).
		ColumnExpr("t.*").
		ColumnExpr("(SELECT COUNT(*) FROM quote_tags AS qt WHERE qt.tag_key = t.key) AS quote_count")

	if column, ok := tagSortColumns[sort.Field]; ok {
		q = q.OrderExpr(column + " " + sqlOrder(sort.Order))
	}

	if err := q.OrderExpr("t.id ASC").Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	tags := make([]domain.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, models[i].toDomain())
	}

	return tags, nil
}

// Count implements ports.TagRepository.
func (r *TagRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*tagModel)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

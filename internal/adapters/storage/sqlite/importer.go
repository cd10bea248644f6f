package sqlite

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

const insertBatchSize = 500

// ImportOptions controls an import.
type ImportOptions struct {
	// Reset deletes every existing row before inserting.
	Reset bool

	// Now stamps records that carry no dates. Defaults to time.Now.
	Now func() time.Time
}

// ImportResult reports how many rows of each kind were written.
type ImportResult struct {
	Quotes  int
	Authors int
	Tags    int
}

// Importer loads a dataset into the database.
type Importer struct {
	db     *bun.DB
	logger *slog.Logger
}

// NewImporter creates an importer on db.
func NewImporter(db *bun.DB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Importer{db: db, logger: logger}
}

// Import writes ds in a single transaction. Derived fields are recomputed:
// quote length and author slug, author quote counts and search names, and
// one tag row per distinct tag. Authors referenced only by quotes are created.
func (im *Importer) Import(ctx context.Context, ds domain.Dataset, opts ImportOptions) (ImportResult, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	stamp := opts.Now().UTC().Format(time.RFC3339)
	quotes, authors, tags := prepareDataset(ds, stamp)

	err := im.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if opts.Reset {
			if err := resetTables(ctx, tx); err != nil {
				return err
			}
		}

		return insertDataset(ctx, tx, quotes, authors, tags)
	})
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Quotes: len(quotes), Authors: len(authors), Tags: len(tags)}

	im.logger.InfoContext(ctx, "dataset imported",
		slog.Int("quotes", result.Quotes),
		slog.Int("authors", result.Authors),
		slog.Int("tags", result.Tags),
		slog.Bool("reset", opts.Reset),
	)

	return result, nil
}

func prepareDataset(ds domain.Dataset, stamp string) ([]domain.Quote, []domain.Author, []domain.Tag) {
	quotes := make([]domain.Quote, 0, len(ds.Quotes))
	counts := make(map[string]int)
	quoteAuthors := make(map[string]string)
	tagNames := make(map[string]string)
	var tagOrder []string

	for _, q := range ds.Quotes {
		q.ID = orNewID(q.ID)
		q.Length = domain.QuoteLength(q.Content)
		q.AuthorSlug = domain.Slug(q.Author)
		q.DateAdded, q.DateModified = stamps(q.DateAdded, q.DateModified, stamp)

		seen := make(map[string]bool, len(q.Tags))
		tagsOut := make([]string, 0, len(q.Tags))
		for _, name := range q.Tags {
			key := domain.TitleCase(name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			tagsOut = append(tagsOut, name)

			if _, ok := tagNames[key]; !ok {
				tagNames[key] = name
				tagOrder = append(tagOrder, key)
			}
		}
		q.Tags = tagsOut

		counts[q.AuthorSlug]++
		if _, ok := quoteAuthors[q.AuthorSlug]; !ok {
			quoteAuthors[q.AuthorSlug] = q.Author
		}

		quotes = append(quotes, q)
	}

	authors := make([]domain.Author, 0, len(ds.Authors))
	known := make(map[string]bool, len(ds.Authors))

	for _, a := range ds.Authors {
		a.Slug = domain.Slug(a.Name)
		if a.Slug == "" || known[a.Slug] {
			continue
		}
		known[a.Slug] = true

		a.ID = orNewID(a.ID)
		a.QuoteCount = counts[a.Slug]
		a.DateAdded, a.DateModified = stamps(a.DateAdded, a.DateModified, stamp)
		authors = append(authors, a)
	}

	for _, q := range quotes {
		if q.AuthorSlug == "" || known[q.AuthorSlug] {
			continue
		}
		known[q.AuthorSlug] = true

		authors = append(authors, domain.Author{
			ID:           uuid.NewString(),
			Name:         quoteAuthors[q.AuthorSlug],
			Slug:         q.AuthorSlug,
			QuoteCount:   counts[q.AuthorSlug],
			DateAdded:    stamp,
			DateModified: stamp,
		})
	}

	tags := make([]domain.Tag, 0, len(tagOrder))
	explicit := make(map[string]domain.Tag, len(ds.Tags))
	for _, t := range ds.Tags {
		explicit[domain.TitleCase(t.Name)] = t
	}

	for _, t := range ds.Tags {
		key := domain.TitleCase(t.Name)
		if _, ok := tagNames[key]; !ok && key != "" {
			tagNames[key] = t.Name
			tagOrder = append(tagOrder, key)
		}
	}

	for _, key := range tagOrder {
		t, ok := explicit[key]
		if !ok {
			t = domain.Tag{Name: tagNames[key]}
		}

		t.ID = orNewID(t.ID)
		t.DateAdded, t.DateModified = stamps(t.DateAdded, t.DateModified, stamp)
		tags = append(tags, t)
	}

	return quotes, authors, tags
}

func resetTables(ctx context.Context, tx bun.Tx) error {
	for _, table := range []string{"quotes_fts", "quote_tags", "quotes", "authors", "tags"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "failed to clear %s", table)
		}
	}

	return nil
}

func insertDataset(ctx context.Context, tx bun.Tx, quotes []domain.Quote, authors []domain.Author, tags []domain.Tag) error {
	authorRows := make([]*authorModel, 0, len(authors))
	for _, a := range authors {
		authorRows = append(authorRows, newAuthorModel(a))
	}

	quoteRows := make([]*quoteModel, 0, len(quotes))
	var links []quoteTagModel
	searchRows := make([]quoteSearchModel, 0, len(quotes))

	for _, q := range quotes {
		row, err := newQuoteModel(q)
		if err != nil {
			return errors.Wrapf(err, "failed to encode quote %s", q.ID)
		}
		quoteRows = append(quoteRows, row)

		for _, name := range q.Tags {
			links = append(links, quoteTagModel{QuoteID: q.ID, TagKey: domain.TitleCase(name)})
		}

		searchRows = append(searchRows, quoteSearchModel{
			QuoteID: q.ID,
			Body:    q.Content,
			Author:  q.Author,
			Tags:    strings.Join(q.Tags, " "),
		})
	}

	tagRows := make([]*tagModel, 0, len(tags))
	for _, t := range tags {
		tagRows = append(tagRows, &tagModel{
			ID:           t.ID,
			Name:         t.Name,
			Key:          domain.TitleCase(t.Name),
			DateAdded:    t.DateAdded,
			DateModified: t.DateModified,
		})
	}

	if err := insertBatches(ctx, tx, authorRows, "authors"); err != nil {
		return err
	}
	if err := insertBatches(ctx, tx, quoteRows, "quotes"); err != nil {
		return err
	}
	if err := insertBatches(ctx, tx, links, "quote tags"); err != nil {
		return err
	}
	if err := insertBatches(ctx, tx, tagRows, "tags"); err != nil {
		return err
	}

	return insertBatches(ctx, tx, searchRows, "search index")
}

func insertBatches[T any](ctx context.Context, tx bun.Tx, rows []T, what string) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		batch := rows[start:min(start+insertBatchSize, len(rows))]

		if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return errors.Wrapf(err, "failed to insert %s", what)
		}
	}

	return nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}

	return uuid.NewString()
}

func stamps(added, modified, now string) (string, string) {
	if added == "" {
		added = now
	}
	if modified == "" {
		modified = added
	}

	return added, modified
}

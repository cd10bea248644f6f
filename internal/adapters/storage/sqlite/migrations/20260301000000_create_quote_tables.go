package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		statements := []string{
			`CREATE TABLE authors (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL COLLATE NOCASE UNIQUE,
				slug TEXT NOT NULL UNIQUE,
				search_name TEXT NOT NULL,
				bio TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				link TEXT NOT NULL DEFAULT '',
				quote_count INTEGER NOT NULL DEFAULT 0,
				date_added TEXT NOT NULL,
				date_modified TEXT NOT NULL
			)`,
			`CREATE TABLE quotes (
				id TEXT PRIMARY KEY,
				content TEXT NOT NULL,
				author TEXT NOT NULL,
				author_slug TEXT NOT NULL,
				author_id TEXT NOT NULL DEFAULT '',
				tags TEXT NOT NULL DEFAULT '[]',
				length INTEGER NOT NULL,
				date_added TEXT NOT NULL,
				date_modified TEXT NOT NULL
			)`,
			`CREATE INDEX ix_quotes_author_slug ON quotes (author_slug)`,
			`CREATE INDEX ix_quotes_author_id ON quotes (author_id)`,
			`CREATE INDEX ix_quotes_length ON quotes (length)`,
			`CREATE INDEX ix_quotes_date_added ON quotes (date_added)`,
			`CREATE TABLE quote_tags (
				quote_id TEXT NOT NULL REFERENCES quotes (id) ON DELETE CASCADE,
				tag_key TEXT NOT NULL,
				PRIMARY KEY (quote_id, tag_key)
			)`,
			`CREATE INDEX ix_quote_tags_tag_key ON quote_tags (tag_key)`,
			`CREATE TABLE tags (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				key TEXT NOT NULL UNIQUE,
				date_added TEXT NOT NULL,
				date_modified TEXT NOT NULL
			)`,
			`CREATE VIRTUAL TABLE quotes_fts USING fts5(
				quote_id UNINDEXED,
				body,
				author,
				tags,
				tokenize = 'unicode61 remove_diacritics 2'
			)`,
		}

		for _, stmt := range statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	down := func(ctx context.Context, db *bun.DB) error {
		for _, table := range []string{"quotes_fts", "quote_tags", "tags", "quotes", "authors"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	Migrations.MustRegister(up, down)
}

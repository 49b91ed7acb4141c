package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizzer/internal/history"
)

const documentsTable = "documents"

// DocumentRepo stores whole documents by key. It satisfies history.Storage.
type DocumentRepo struct {
	drv *entsql.Driver
}

var _ history.Storage = (*DocumentRepo)(nil)

// Read returns the document stored under key, or history.ErrNoDocument.
func (r *DocumentRepo) Read(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("body").
		From(entsql.Table(documentsTable)).
		Where(entsql.EQ("doc_key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query document %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query document %q: %w", key, err)
		}
		return nil, history.ErrNoDocument
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, fmt.Errorf("scan document %q: %w", key, err)
	}
	return []byte(body), nil
}

// Write inserts or replaces the document stored under key.
func (r *DocumentRepo) Write(ctx context.Context, key string, doc []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(documentsTable).
		Columns("doc_key", "body", "updated_at").
		Values(key, string(doc), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("doc_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/ports"
)

// PostgresRepository records successful enrichments for audit. Writes are
// best-effort from the pipeline's point of view; it logs failures instead of
// propagating them.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.HistoryRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveEnriched upserts the enrichment snapshot keyed by content id.
func (r *PostgresRepository) SaveEnriched(ctx context.Context, entry domain.HistoryEntry) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.sb.
		Insert("enriched_articles").
		Columns("content_id", "title", "source_url", "summary", "relevance_score", "enriched_at").
		Values(entry.ContentID, entry.Title, entry.SourceURL, entry.Summary, entry.RelevanceScore, entry.EnrichedAt).
		Suffix(`ON CONFLICT (content_id) DO UPDATE
                SET summary = EXCLUDED.summary,
                    relevance_score = EXCLUDED.relevance_score,
                    enriched_at = EXCLUDED.enriched_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert enriched: %w", err)
	}

	return nil
}

// WasEnriched reports whether a content id has an audit row.
func (r *PostgresRepository) WasEnriched(ctx context.Context, contentID string) (bool, error) {
	if r.db == nil {
		return false, nil
	}

	query, args, err := r.sb.
		Select("1").
		From("enriched_articles").
		Where(sq.Eq{"content_id": contentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build select: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query enriched: %w", err)
	}

	return true, nil
}

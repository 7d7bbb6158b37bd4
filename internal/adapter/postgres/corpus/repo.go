// Package corpus implements the attested-verse corpus repository using
// PostgreSQL. Entries are keyed by source reference (e.g. "RV 1.1.1");
// the analysis service looks them up by normalized samhita text.
package corpus

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Repo provides corpus entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new corpus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// psql builds $n-placeholder queries for the dynamic list filter.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const corpusColumns = `id, source_ref, samhita, samhita_normalized, samhita_bare, padapatha, meter_raw, meter_family, created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape queries
// ---------------------------------------------------------------------------

const upsertSQL = `
INSERT INTO corpus_entries (source_ref, samhita, samhita_normalized, samhita_bare, padapatha, meter_raw, meter_family)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (source_ref) DO UPDATE SET
    samhita            = EXCLUDED.samhita,
    samhita_normalized = EXCLUDED.samhita_normalized,
    samhita_bare       = EXCLUDED.samhita_bare,
    padapatha          = EXCLUDED.padapatha,
    meter_raw          = EXCLUDED.meter_raw,
    meter_family       = EXCLUDED.meter_family,
    updated_at         = now()
RETURNING ` + corpusColumns

const getBySourceRefSQL = `
SELECT ` + corpusColumns + `
FROM corpus_entries
WHERE source_ref = $1`

const getByNormalizedSQL = `
SELECT ` + corpusColumns + `
FROM corpus_entries
WHERE samhita_normalized = $1
ORDER BY source_ref
LIMIT 1`

const getByBareSQL = `
SELECT ` + corpusColumns + `
FROM corpus_entries
WHERE samhita_bare = $1
ORDER BY source_ref
LIMIT 1`

const countSQL = `SELECT count(*) FROM corpus_entries`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts a corpus entry or, when the source_ref already exists,
// replaces its text and meter columns. Idempotent for repeated imports of
// the same dataset. Returns the persisted entry with generated fields.
func (r *Repo) Upsert(ctx context.Context, e *domain.CorpusEntry) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertSQL,
		e.SourceRef,
		e.Samhita,
		e.SamhitaNormalized,
		e.SamhitaBare,
		ptrStringToPgText(e.Padapatha),
		e.MeterRaw,
		string(e.MeterFamily),
	)

	saved, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "corpus_entry", e.SourceRef)
	}
	return saved, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetBySourceRef returns the entry with the given source reference.
// Returns domain.ErrNotFound when no such reference is attested.
func (r *Repo) GetBySourceRef(ctx context.Context, sourceRef string) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getBySourceRefSQL, sourceRef))
	if err != nil {
		return nil, postgres.MapError(err, "corpus_entry", sourceRef)
	}
	return e, nil
}

// GetByNormalizedText returns the attested entry whose normalized samhita
// matches the input. When the accented key misses, the svara-stripped bare
// key is tried so unaccented input still hits accented corpus rows. Ties on
// either key resolve to the lowest source_ref. Returns domain.ErrNotFound
// when neither key matches.
func (r *Repo) GetByNormalizedText(ctx context.Context, normalized, bare string) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getByNormalizedSQL, normalized))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "corpus_entry", normalized)
	}

	e, err = scanEntry(querier.QueryRow(ctx, getByBareSQL, bare))
	if err != nil {
		return nil, postgres.MapError(err, "corpus_entry", bare)
	}
	return e, nil
}

// List returns entries matching the filter, ordered by source_ref.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f Filter) ([]*domain.CorpusEntry, error) {
	f.normalize()

	q := psql.Select(corpusColumns).From("corpus_entries")
	if f.Family != nil {
		q = q.Where(sq.Eq{"meter_family": string(*f.Family)})
	}
	if f.SourcePrefix != nil && *f.SourcePrefix != "" {
		q = q.Where(sq.Like{"source_ref": *f.SourcePrefix + "%"})
	}
	q = q.OrderBy("source_ref").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list corpus entries: %w", err)
	}
	defer rows.Close()

	result, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("list corpus entries: %w", err)
	}
	return result, nil
}

// Count returns the total number of corpus entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count corpus entries: %w", err)
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (*domain.CorpusEntry, error) {
	var (
		e         domain.CorpusEntry
		padapatha pgtype.Text
		family    string
	)

	err := row.Scan(
		&e.ID,
		&e.SourceRef,
		&e.Samhita,
		&e.SamhitaNormalized,
		&e.SamhitaBare,
		&padapatha,
		&e.MeterRaw,
		&family,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if padapatha.Valid {
		e.Padapatha = &padapatha.String
	}
	e.MeterFamily = domain.MeterFamily(family)

	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.CorpusEntry, error) {
	var result []*domain.CorpusEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.CorpusEntry{}
	}
	return result, nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

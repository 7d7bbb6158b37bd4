package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCorpusEntry inserts one attested verse with the given source_ref.
// Text columns default to a synthetic unaccented verse; callers that need
// specific text should use SeedCorpusEntryWithText. Returns the filled entry.
func SeedCorpusEntry(t *testing.T, pool *pgxpool.Pool, sourceRef string) domain.CorpusEntry {
	t.Helper()
	text := "परीक्षा श्लोकः " + uniqueSuffix()
	return SeedCorpusEntryWithText(t, pool, sourceRef, text, text)
}

// SeedCorpusEntryWithText inserts one attested verse with explicit
// normalized and bare text keys. The raw samhita column stores the
// normalized text; the meter label defaults to an attested gayatri.
func SeedCorpusEntryWithText(t *testing.T, pool *pgxpool.Pool, sourceRef, normalized, bare string) domain.CorpusEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	padapatha := normalized
	e := domain.CorpusEntry{
		ID:                uuid.New(),
		SourceRef:         sourceRef,
		Samhita:           normalized,
		SamhitaNormalized: normalized,
		SamhitaBare:       bare,
		Padapatha:         &padapatha,
		MeterRaw:          "गायत्री",
		MeterFamily:       domain.MeterFamilyGayatri,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO corpus_entries (id, source_ref, samhita, samhita_normalized, samhita_bare, padapatha, meter_raw, meter_family, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.SourceRef, e.Samhita, e.SamhitaNormalized, e.SamhitaBare, e.Padapatha, e.MeterRaw, string(e.MeterFamily), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCorpusEntry insert: %v", err)
	}

	return e
}

// UniqueSourceRef builds a collision-free source reference for tests that
// share the one database container.
func UniqueSourceRef(prefix string) string {
	return prefix + " " + uniqueSuffix()
}

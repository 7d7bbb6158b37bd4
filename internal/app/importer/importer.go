// Package importer loads corpus datasets into the verse store. Input is
// JSONL: one attested verse per line, keyed by source reference. Imports
// are idempotent; re-running the same dataset upserts in place.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/chandas/normalize"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Record is one JSONL line of a corpus dataset.
type Record struct {
	SourceRef string  `json:"source_ref"`
	Samhita   string  `json:"samhita"`
	Padapatha *string `json:"padapatha,omitempty"`
	MeterRaw  string  `json:"meter_raw,omitempty"`
	Family    string  `json:"family,omitempty"`
}

// entryStore defines the corpus write interface needed by the importer.
type entryStore interface {
	Upsert(ctx context.Context, e *domain.CorpusEntry) (*domain.CorpusEntry, error)
}

// txManager defines the transaction boundary interface needed by the importer.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds importer settings.
type Config struct {
	BatchSize int
	DryRun    bool
}

// Stats summarizes one import run.
type Stats struct {
	Read     int
	Imported int
	Skipped  int
}

// Importer reads JSONL corpus records and upserts them in batched
// transactions.
type Importer struct {
	log   *slog.Logger
	store entryStore
	txm   txManager
	cfg   Config
}

// New creates an Importer.
func New(logger *slog.Logger, store entryStore, txm txManager, cfg Config) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Importer{
		log:   logger.With("component", "importer"),
		store: store,
		txm:   txm,
		cfg:   cfg,
	}
}

// Run imports all records from r. Malformed lines and records that fail
// validation are skipped with a warning; a storage error aborts the run.
func (imp *Importer) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var (
		stats Stats
		batch []*domain.CorpusEntry
	)

	scanner := bufio.NewScanner(r)
	// Verses with full padapatha can exceed the default 64K line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Read++

		entry, err := imp.parseLine(line)
		if err != nil {
			stats.Skipped++
			imp.log.Warn("skipping record",
				slog.Int("line", lineNo),
				slog.String("error", err.Error()),
			)
			continue
		}

		batch = append(batch, entry)
		if len(batch) >= imp.cfg.BatchSize {
			if err := imp.flush(ctx, batch); err != nil {
				return stats, fmt.Errorf("import batch ending at line %d: %w", lineNo, err)
			}
			stats.Imported += len(batch)
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	if len(batch) > 0 {
		if err := imp.flush(ctx, batch); err != nil {
			return stats, fmt.Errorf("import final batch: %w", err)
		}
		stats.Imported += len(batch)
	}

	imp.log.Info("import finished",
		slog.Int("read", stats.Read),
		slog.Int("imported", stats.Imported),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// parseLine decodes and validates one JSONL record, producing a corpus
// entry with its normalized lookup keys. A missing family field is
// derived from the attested meter label, which may arrive in Devanagari
// or romanized form.
func (imp *Importer) parseLine(line string) (*domain.CorpusEntry, error) {
	var rec Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	rec.SourceRef = strings.TrimSpace(rec.SourceRef)
	rec.Samhita = strings.TrimSpace(rec.Samhita)
	rec.MeterRaw = strings.TrimSpace(rec.MeterRaw)
	if rec.SourceRef == "" {
		return nil, fmt.Errorf("missing source_ref")
	}
	if rec.Samhita == "" {
		return nil, fmt.Errorf("%s: missing samhita", rec.SourceRef)
	}

	family := domain.MeterFamily(strings.ToLower(strings.TrimSpace(rec.Family)))
	if family != domain.MeterFamilyUnknown && !family.IsValid() {
		return nil, fmt.Errorf("%s: unknown family %q", rec.SourceRef, rec.Family)
	}
	if family == domain.MeterFamilyUnknown && rec.MeterRaw != "" {
		if labels := meter.ParseLabel(rec.MeterRaw); len(labels) > 0 {
			family = labels[0].Family
		}
	}

	normalized, err := normalize.Normalize(rec.Samhita)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.SourceRef, err)
	}

	entry := &domain.CorpusEntry{
		SourceRef:         rec.SourceRef,
		Samhita:           rec.Samhita,
		SamhitaNormalized: normalized,
		SamhitaBare:       normalize.StripSvaras(normalized),
		MeterRaw:          rec.MeterRaw,
		MeterFamily:       family,
	}
	if rec.Padapatha != nil {
		p := strings.TrimSpace(*rec.Padapatha)
		if p != "" {
			entry.Padapatha = &p
		}
	}
	return entry, nil
}

// flush writes one batch inside a single transaction. Dry runs validate
// and count without touching the store.
func (imp *Importer) flush(ctx context.Context, batch []*domain.CorpusEntry) error {
	if imp.cfg.DryRun {
		imp.log.Info("dry run, batch not written", slog.Int("size", len(batch)))
		return nil
	}

	return imp.txm.RunInTx(ctx, func(txCtx context.Context) error {
		for _, e := range batch {
			if _, err := imp.store.Upsert(txCtx, e); err != nil {
				return fmt.Errorf("upsert %s: %w", e.SourceRef, err)
			}
		}
		return nil
	})
}

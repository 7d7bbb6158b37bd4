// Command corpus-import loads an attested-verse dataset into the corpus
// database. Input is JSONL, one verse per line:
//
//	{"source_ref":"RV 1.1.1","samhita":"...","padapatha":"...","meter_raw":"...","family":"gayatri"}
//
// Imports are idempotent: existing source references are updated in
// place. Schema migrations are applied before importing.
//
// Flags:
//
//	--file     path to the JSONL dataset (default: stdin)
//	--batch    number of records per transaction (default 500)
//	--dry-run  parse and validate without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/app"
	"github.com/chandaslab/chandas-backend/internal/app/importer"
	"github.com/chandaslab/chandas-backend/internal/config"
	"github.com/chandaslab/chandas-backend/migrations"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSONL dataset (default: stdin)")
	batchFlag := flag.Int("batch", 500, "number of records per transaction")
	dryRunFlag := flag.Bool("dry-run", false, "parse and validate without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("corpus-import requires DATABASE_DSN")
	}

	logger := app.NewLogger(cfg.Log)

	var input io.Reader = os.Stdin
	if *fileFlag != "" {
		f, err := os.Open(*fileFlag)
		if err != nil {
			logger.Error("open dataset", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if !*dryRunFlag {
		if err := applyMigrations(ctx, cfg.Database.DSN); err != nil {
			logger.Error("apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := corpus.New(pool)

	imp := importer.New(logger, repo, txm, importer.Config{
		BatchSize: *batchFlag,
		DryRun:    *dryRunFlag,
	})

	stats, err := imp.Run(ctx, input)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.Int("read", stats.Read),
		slog.Int("imported", stats.Imported),
		slog.Int("skipped", stats.Skipped),
	)
}

// applyMigrations brings the schema up to date using the embedded goose
// migrations.
func applyMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Command rulegen derives meter rules from the labeled corpus and writes
// them as a rulebook JSON file. Positions where at least the consensus
// fraction of attested verses agree become fixed L or G; the rest become
// wildcards. The output can be served directly via ANALYSIS_RULEBOOK_PATH.
//
// Flags:
//
//	--out          output path (default: stdout)
//	--consensus    agreement fraction for a fixed position (default 0.9)
//	--min-support  smallest group size that yields a rule (default 3)
//	--max-dev      max_deviation recorded on generated rules (default 2)
//	--syllable-tol syllable_tolerance recorded on generated rules (default 1)
//	--priority     priority recorded on generated rules (default 50)
//	--batch        corpus page size (default 500)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/app"
	"github.com/chandaslab/chandas-backend/internal/app/rulegen"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
)

func main() {
	outFlag := flag.String("out", "", "output path (default: stdout)")
	consensusFlag := flag.Float64("consensus", 0.9, "agreement fraction for a fixed position")
	minSupportFlag := flag.Int("min-support", 3, "smallest group size that yields a rule")
	maxDevFlag := flag.Int("max-dev", 2, "max_deviation recorded on generated rules")
	syllableTolFlag := flag.Int("syllable-tol", 1, "syllable_tolerance recorded on generated rules")
	priorityFlag := flag.Int("priority", 50, "priority recorded on generated rules")
	batchFlag := flag.Int("batch", 500, "corpus page size")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("rulegen requires DATABASE_DSN")
	}

	logger := app.NewLogger(cfg.Log)

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	gen := rulegen.New(logger, corpus.New(pool), rulegen.Config{
		Consensus:    *consensusFlag,
		MinSupport:   *minSupportFlag,
		MaxDeviation: *maxDevFlag,
		SyllableTol:  *syllableTolFlag,
		Priority:     *priorityFlag,
		BatchSize:    *batchFlag,
	})

	rules, stats, err := gen.Generate(ctx)
	if err != nil {
		logger.Error("generate rules", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(rules) == 0 {
		logger.Error("no rules generated, corpus has no groups above min support")
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			logger.Error("create output file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := meter.WriteRules(out, rules); err != nil {
		logger.Error("write rulebook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("rulebook written",
		slog.Int("entries", stats.Entries),
		slog.Int("groups", stats.Groups),
		slog.Int("rules", len(rules)),
		slog.Int("skipped_unlabeled", stats.SkippedUnlabeled),
		slog.Int("skipped_irregular", stats.SkippedIrregular),
	)
}

// Command modeltrain fits the softmax fallback classifier on the labeled
// corpus and writes its weights as JSON for ANALYSIS_MODEL_PATH. Training
// matches against the same rulebook the server will serve, so the
// deviation feature means the same thing at training and analysis time.
//
// Flags:
//
//	--out        output path (default: stdout)
//	--rulebook   path to a rulebook JSON override (default: embedded)
//	--epochs     SGD passes over the training set (default 200)
//	--lr         learning rate (default 0.1)
//	--l2         weight decay (default 0.0001)
//	--mini-batch examples per gradient step (default 32)
//	--seed       shuffle seed (default 1)
//	--batch      corpus page size (default 500)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/app"
	"github.com/chandaslab/chandas-backend/internal/app/modeltrain"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
)

func main() {
	outFlag := flag.String("out", "", "output path (default: stdout)")
	rulebookFlag := flag.String("rulebook", "", "path to a rulebook JSON override (default: embedded)")
	epochsFlag := flag.Int("epochs", 200, "SGD passes over the training set")
	lrFlag := flag.Float64("lr", 0.1, "learning rate")
	l2Flag := flag.Float64("l2", 0.0001, "weight decay")
	miniBatchFlag := flag.Int("mini-batch", 32, "examples per gradient step")
	seedFlag := flag.Int64("seed", 1, "shuffle seed")
	batchFlag := flag.Int("batch", 500, "corpus page size")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("modeltrain requires DATABASE_DSN")
	}

	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	if *rulebookFlag != "" {
		cfg.Analysis.RulebookPath = *rulebookFlag
	}

	rulebook, err := meter.Load(cfg.Analysis.RulebookPath)
	if err != nil {
		logger.Error("load rulebook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	trainer := modeltrain.New(logger, corpus.New(pool), rulebook, modeltrain.Config{
		Epochs:    *epochsFlag,
		LearnRate: *lrFlag,
		L2:        *l2Flag,
		MiniBatch: *miniBatchFlag,
		Seed:      *seedFlag,
		BatchSize: *batchFlag,
	})

	weights, stats, err := trainer.Train(ctx)
	if err != nil {
		logger.Error("train model", slog.String("error", err.Error()))
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

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(weights); err != nil {
		logger.Error("write weights", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("model written",
		slog.Int("examples", stats.Examples),
		slog.Int("classes", stats.Classes),
		slog.Float64("loss", stats.FinalLoss),
		slog.Int("skipped_unlabeled", stats.SkippedUnlabeled),
		slog.Int("skipped_unscannable", stats.SkippedUnscannable),
	)
}

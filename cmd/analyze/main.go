// Command analyze scans a Sanskrit verse from the command line or stdin
// and prints its metrical analysis. It runs entirely offline: no corpus
// database is consulted.
//
// Usage:
//
//	analyze [flags] [verse text]
//	echo "verse" | analyze [flags]
//
// Flags:
//
//	--rulebook  path to a rulebook JSON override (default: embedded)
//	--model     path to fallback model weights (overrides config)
//	--json      print the full analysis as JSON
//
// Exit codes: 0 = success, 1 = error, 2 = invalid input.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chandaslab/chandas-backend/internal/adapter/model/softmax"
	"github.com/chandaslab/chandas-backend/internal/app"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
	"github.com/chandaslab/chandas-backend/internal/domain"
	"github.com/chandaslab/chandas-backend/internal/service/analysis"
)

func main() {
	rulebookFlag := flag.String("rulebook", "", "path to a rulebook JSON override (default: embedded)")
	modelFlag := flag.String("model", "", "path to fallback model weights")
	jsonFlag := flag.Bool("json", false, "print the full analysis as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	if *rulebookFlag != "" {
		cfg.Analysis.RulebookPath = *rulebookFlag
	}
	if *modelFlag != "" {
		cfg.Analysis.ModelPath = *modelFlag
	}

	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read stdin: %v", err)
		}
		text = string(data)
	}

	rulebook, err := meter.Load(cfg.Analysis.RulebookPath)
	if err != nil {
		logger.Error("load rulebook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var svc *analysis.Service
	if cfg.Analysis.ModelPath != "" {
		classifier, err := softmax.Load(cfg.Analysis.ModelPath)
		if err != nil {
			logger.Warn("fallback model unavailable",
				slog.String("path", cfg.Analysis.ModelPath),
				slog.String("error", err.Error()),
			)
			svc = analysis.NewService(logger, rulebook, nil, nil, cfg.Analysis)
		} else {
			svc = analysis.NewService(logger, rulebook, nil, classifier, cfg.Analysis)
		}
	} else {
		svc = analysis.NewService(logger, rulebook, nil, nil, cfg.Analysis)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := svc.Analyze(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) ||
			errors.Is(err, domain.ErrInvalidScript) ||
			errors.Is(err, domain.ErrTooLarge) {
			fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
			os.Exit(2)
		}
		logger.Error("analyze", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	printAnalysis(result)
}

func printAnalysis(v *domain.VerseAnalysis) {
	if v.BestLabel != "" {
		fmt.Printf("meter: %s\n", v.BestLabel)
	} else {
		fmt.Println("meter: unresolved")
	}
	fmt.Printf("padas: %d, aksharas: %d\n", len(v.Padas), v.TotalAksharas())

	for i, p := range v.Padas {
		fmt.Printf("  %d. %s\n", i+1, p.Text)
		fmt.Printf("     %s (%d) %s\n", p.LGString(), len(p.Aksharas), v.Ganas[i].String())
	}

	if len(v.Candidates) > 0 {
		fmt.Println("candidates:")
		for _, c := range v.Candidates {
			line := fmt.Sprintf("  %s  dev=%+d  conf=%.2f  %s", c.Meter, c.Deviation, c.Confidence, c.Source)
			if c.Family != domain.MeterFamilyUnknown {
				line += fmt.Sprintf("  (family %s)", c.Family)
			}
			fmt.Println(line)
		}
	}

	for _, w := range v.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if v.Flags.SegmentationUncertain {
		fmt.Println("note: pada segmentation is uncertain")
	}
	if v.Flags.ClassificationUnresolved {
		fmt.Println("note: classification is unresolved")
	}
}

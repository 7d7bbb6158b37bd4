// Package rulegen derives meter rules from the attested corpus. Verses
// are grouped by family and shape; positions where nearly all verses in
// a group agree on a weight become fixed L or G in the generated
// pattern, the rest stay wildcards.
package rulegen

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/chandas/sandhi"
	"github.com/chandaslab/chandas-backend/internal/chandas/syllable"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// corpusSource defines the corpus read interface needed by the generator.
type corpusSource interface {
	List(ctx context.Context, f corpus.Filter) ([]*domain.CorpusEntry, error)
}

// Config holds generation settings.
type Config struct {
	// Consensus is the agreement fraction at which a position becomes a
	// fixed L or G instead of a wildcard.
	Consensus    float64
	MinSupport   int // smallest group that yields a rule
	MaxDeviation int
	SyllableTol  int
	Priority     int
	BatchSize    int // corpus page size
}

// Stats summarizes one generation run.
type Stats struct {
	Entries          int
	SkippedUnlabeled int
	SkippedIrregular int
	Groups           int
}

// Generator builds meter rules from corpus consensus.
type Generator struct {
	log *slog.Logger
	src corpusSource
	cfg Config
}

// New creates a Generator.
func New(logger *slog.Logger, src corpusSource, cfg Config) *Generator {
	if cfg.Consensus <= 0 || cfg.Consensus > 1 {
		cfg.Consensus = 0.9
	}
	if cfg.MinSupport <= 0 {
		cfg.MinSupport = 3
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	// A page larger than the store's cap would read as a short page and
	// end the corpus walk early.
	if cfg.BatchSize > corpus.MaxListLimit {
		cfg.BatchSize = corpus.MaxListLimit
	}
	return &Generator{
		log: logger.With("component", "rulegen"),
		src: src,
		cfg: cfg,
	}
}

// groupKey identifies one family and verse shape. Only verses whose padas
// all carry the same syllable count contribute; irregular shapes are
// skipped.
type groupKey struct {
	family    domain.MeterFamily
	padaCount int
	syllables int
}

type groupAgg struct {
	support int
	guru    [][]int // [pada][position] guru observations
	laghu   [][]int
}

// Generate scans all labeled corpus entries and returns the derived
// rules sorted by family, pada count and syllable count.
func (g *Generator) Generate(ctx context.Context) ([]domain.MeterRule, Stats, error) {
	groups := make(map[groupKey]*groupAgg)
	var stats Stats

	offset := 0
	for {
		page, err := g.src.List(ctx, corpus.Filter{Limit: g.cfg.BatchSize, Offset: offset})
		if err != nil {
			return nil, stats, fmt.Errorf("list corpus entries: %w", err)
		}
		for _, e := range page {
			stats.Entries++
			g.accumulate(e, groups, &stats)
		}
		if len(page) < g.cfg.BatchSize {
			break
		}
		offset += len(page)
	}

	rules := g.buildRules(groups, &stats)

	g.log.Info("rule generation finished",
		slog.Int("entries", stats.Entries),
		slog.Int("unlabeled", stats.SkippedUnlabeled),
		slog.Int("irregular", stats.SkippedIrregular),
		slog.Int("rules", len(rules)),
	)
	return rules, stats, nil
}

// accumulate scans one entry and adds its per-position weights to the
// matching group.
func (g *Generator) accumulate(e *domain.CorpusEntry, groups map[groupKey]*groupAgg, stats *Stats) {
	if e.MeterFamily == domain.MeterFamilyUnknown || !e.MeterFamily.IsValid() {
		stats.SkippedUnlabeled++
		return
	}

	padas, _ := sandhi.Segment(e.SamhitaNormalized)
	if len(padas) == 0 {
		stats.SkippedIrregular++
		return
	}

	weights := make([][]domain.Weight, len(padas))
	syllables := -1
	for i, p := range padas {
		aksharas, _ := syllable.Syllabify(p.Text)
		if len(aksharas) == 0 {
			stats.SkippedIrregular++
			return
		}
		if syllables == -1 {
			syllables = len(aksharas)
		} else if len(aksharas) != syllables {
			stats.SkippedIrregular++
			return
		}
		w := make([]domain.Weight, len(aksharas))
		for j, a := range aksharas {
			w[j] = a.Weight
		}
		weights[i] = w
	}

	key := groupKey{family: e.MeterFamily, padaCount: len(padas), syllables: syllables}
	agg := groups[key]
	if agg == nil {
		agg = &groupAgg{
			guru:  make([][]int, key.padaCount),
			laghu: make([][]int, key.padaCount),
		}
		for i := range agg.guru {
			agg.guru[i] = make([]int, syllables)
			agg.laghu[i] = make([]int, syllables)
		}
		groups[key] = agg
	}

	agg.support++
	for i, w := range weights {
		for j, wt := range w {
			switch wt {
			case domain.WeightGuru:
				agg.guru[i][j]++
			case domain.WeightLaghu:
				agg.laghu[i][j]++
			}
		}
	}
}

func (g *Generator) buildRules(groups map[groupKey]*groupAgg, stats *Stats) []domain.MeterRule {
	keys := make([]groupKey, 0, len(groups))
	for k, agg := range groups {
		if agg.support >= g.cfg.MinSupport {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].family != keys[j].family {
			return keys[i].family < keys[j].family
		}
		if keys[i].padaCount != keys[j].padaCount {
			return keys[i].padaCount < keys[j].padaCount
		}
		return keys[i].syllables < keys[j].syllables
	})

	rules := make([]domain.MeterRule, 0, len(keys))
	for _, k := range keys {
		agg := groups[k]
		stats.Groups++

		patterns := make([]string, k.padaCount)
		for i := 0; i < k.padaCount; i++ {
			var b strings.Builder
			for j := 0; j < k.syllables; j++ {
				guruFrac := float64(agg.guru[i][j]) / float64(agg.support)
				laghuFrac := float64(agg.laghu[i][j]) / float64(agg.support)
				switch {
				case guruFrac >= g.cfg.Consensus:
					b.WriteByte('G')
				case laghuFrac >= g.cfg.Consensus:
					b.WriteByte('L')
				default:
					b.WriteRune(domain.PatternWildcard)
				}
			}
			patterns[i] = b.String()
		}

		rules = append(rules, domain.MeterRule{
			Name:         fmt.Sprintf("%s-%dx%d", k.family, k.padaCount, k.syllables),
			Family:       k.family,
			PadaCountMin: k.padaCount,
			PadaCountMax: k.padaCount,
			Syllables:    []int{k.syllables},
			SyllableTol:  g.cfg.SyllableTol,
			Patterns:     patterns,
			MaxDeviation: g.cfg.MaxDeviation,
			Priority:     g.cfg.Priority,
			FinalLenient: true,
			Support:      agg.support,
		})
	}
	return rules
}

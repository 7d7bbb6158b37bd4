// Package modeltrain fits the softmax fallback classifier on labeled corpus
// verses. Feature vectors come from the same extractor the analysis service
// uses, including the best-rule deviation slot, so trained weights and
// runtime inputs always agree on shape and meaning.
package modeltrain

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/chandaslab/chandas-backend/internal/adapter/model/softmax"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/chandas/prosody"
	"github.com/chandaslab/chandas-backend/internal/chandas/sandhi"
	"github.com/chandaslab/chandas-backend/internal/chandas/syllable"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

type corpusSource interface {
	List(ctx context.Context, f corpus.Filter) ([]*domain.CorpusEntry, error)
}

// Config controls one training run. Zero values fall back to defaults.
type Config struct {
	Epochs    int     // SGD passes over the training set
	LearnRate float64 // step size
	L2        float64 // weight decay
	MiniBatch int     // examples per gradient step
	Seed      int64   // shuffle seed, fixed so runs are reproducible
	BatchSize int     // corpus page size
}

// Stats summarizes one training run.
type Stats struct {
	Entries            int
	SkippedUnlabeled   int
	SkippedUnscannable int
	Examples           int
	Classes            int
	FinalLoss          float64
}

// Trainer fits classifier weights from the labeled corpus.
type Trainer struct {
	log   *slog.Logger
	src   corpusSource
	rules *meter.Rulebook
	cfg   Config
}

// New creates a Trainer. The rulebook must be the one the server will
// match against, or the deviation feature drifts between training and
// inference.
func New(logger *slog.Logger, src corpusSource, rules *meter.Rulebook, cfg Config) *Trainer {
	if cfg.Epochs <= 0 {
		cfg.Epochs = 200
	}
	if cfg.LearnRate <= 0 {
		cfg.LearnRate = 0.1
	}
	if cfg.L2 < 0 {
		cfg.L2 = 0
	}
	if cfg.MiniBatch <= 0 {
		cfg.MiniBatch = 32
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	// A page larger than the store's cap would read as a short page and
	// end the corpus walk early.
	if cfg.BatchSize > corpus.MaxListLimit {
		cfg.BatchSize = corpus.MaxListLimit
	}
	return &Trainer{
		log:   logger.With("component", "modeltrain"),
		src:   src,
		rules: rules,
		cfg:   cfg,
	}
}

type example struct {
	x     []float64
	label int
}

// Train scans the labeled corpus and returns fitted weights ready for
// softmax.New or serialization.
func (t *Trainer) Train(ctx context.Context) (softmax.Weights, Stats, error) {
	raw, stats, err := t.collect(ctx)
	if err != nil {
		return softmax.Weights{}, stats, err
	}
	if len(raw) == 0 {
		return softmax.Weights{}, stats, fmt.Errorf("modeltrain: no trainable examples in corpus")
	}

	labels, examples := indexLabels(raw)
	stats.Examples = len(examples)
	stats.Classes = len(labels)
	if len(labels) < 2 {
		return softmax.Weights{}, stats, fmt.Errorf("modeltrain: need at least two label classes, got %d", len(labels))
	}

	mean, std := standardize(examples)
	rows, bias := t.fit(ctx, examples, len(labels), &stats)
	if err := ctx.Err(); err != nil {
		return softmax.Weights{}, stats, err
	}

	t.log.Info("training finished",
		slog.Int("examples", stats.Examples),
		slog.Int("classes", stats.Classes),
		slog.Int("epochs", t.cfg.Epochs),
		slog.Float64("loss", stats.FinalLoss),
	)
	return softmax.Weights{
		Labels:     labels,
		FeatureDim: domain.FeatureDim,
		Mean:       mean,
		Std:        std,
		Weights:    rows,
		Bias:       bias,
	}, stats, nil
}

type rawExample struct {
	x      []float64
	family domain.MeterFamily
}

func (t *Trainer) collect(ctx context.Context) ([]rawExample, Stats, error) {
	var (
		raw   []rawExample
		stats Stats
	)
	offset := 0
	for {
		page, err := t.src.List(ctx, corpus.Filter{Limit: t.cfg.BatchSize, Offset: offset})
		if err != nil {
			return nil, stats, fmt.Errorf("list corpus entries: %w", err)
		}
		for _, e := range page {
			stats.Entries++
			if e.MeterFamily == domain.MeterFamilyUnknown || !e.MeterFamily.IsValid() {
				stats.SkippedUnlabeled++
				continue
			}

			padas, _ := sandhi.Segment(e.SamhitaNormalized)
			total := 0
			for i := range padas {
				aksharas, _ := syllable.Syllabify(padas[i].Text)
				padas[i].Aksharas = aksharas
				total += len(aksharas)
			}
			if len(padas) == 0 || total == 0 {
				stats.SkippedUnscannable++
				continue
			}

			bestRuleDev := -1
			if cands := t.rules.Match(padas); len(cands) > 0 {
				bestRuleDev = cands[0].Deviation
			}

			vec := prosody.Extract(padas, bestRuleDev)
			raw = append(raw, rawExample{x: vec.Floats(), family: e.MeterFamily})
		}
		if len(page) < t.cfg.BatchSize {
			break
		}
		offset += len(page)
	}
	return raw, stats, nil
}

// indexLabels assigns each observed family a stable index in sorted order.
func indexLabels(raw []rawExample) ([]string, []example) {
	set := make(map[string]bool)
	for _, r := range raw {
		set[string(r.family)] = true
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	examples := make([]example, len(raw))
	for i, r := range raw {
		examples[i] = example{x: r.x, label: index[string(r.family)]}
	}
	return labels, examples
}

// standardize centers and scales the examples in place and returns the
// recorded mean and std. A zero std marks a constant feature; scoring
// centers those without scaling, and training does the same.
func standardize(examples []example) (mean, std []float64) {
	dim := len(examples[0].x)
	mean = make([]float64, dim)
	std = make([]float64, dim)
	n := float64(len(examples))

	for _, e := range examples {
		for j, v := range e.x {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	for _, e := range examples {
		for j, v := range e.x {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
	}

	for _, e := range examples {
		for j := range e.x {
			s := std[j]
			if s <= 0 {
				s = 1
			}
			e.x[j] = (e.x[j] - mean[j]) / s
		}
	}
	return mean, std
}

// fit runs mini-batch SGD with cross-entropy loss.
func (t *Trainer) fit(ctx context.Context, examples []example, classes int, stats *Stats) ([][]float64, []float64) {
	dim := len(examples[0].x)
	rows := make([][]float64, classes)
	gradRows := make([][]float64, classes)
	for k := range rows {
		rows[k] = make([]float64, dim)
		gradRows[k] = make([]float64, dim)
	}
	bias := make([]float64, classes)
	gradBias := make([]float64, classes)

	rng := rand.New(rand.NewSource(t.cfg.Seed))
	order := rng.Perm(len(examples))

	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		if ctx.Err() != nil {
			return rows, bias
		}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var loss float64
		for start := 0; start < len(order); start += t.cfg.MiniBatch {
			end := min(start+t.cfg.MiniBatch, len(order))
			for k := range gradRows {
				gradBias[k] = 0
				for j := range gradRows[k] {
					gradRows[k][j] = 0
				}
			}

			for _, i := range order[start:end] {
				e := examples[i]
				p := probs(rows, bias, e.x)
				loss += -math.Log(math.Max(p[e.label], 1e-12))
				for k := range p {
					d := p[k]
					if k == e.label {
						d--
					}
					gradBias[k] += d
					for j, v := range e.x {
						gradRows[k][j] += d * v
					}
				}
			}

			step := t.cfg.LearnRate / float64(end-start)
			for k := range rows {
				bias[k] -= step * gradBias[k]
				for j := range rows[k] {
					rows[k][j] -= step*gradRows[k][j] + t.cfg.LearnRate*t.cfg.L2*rows[k][j]
				}
			}
		}
		stats.FinalLoss = loss / float64(len(examples))

		if (epoch+1)%50 == 0 {
			t.log.Debug("epoch done",
				slog.Int("epoch", epoch+1),
				slog.Float64("loss", stats.FinalLoss),
			)
		}
	}
	return rows, bias
}

// probs computes the softmax distribution with max subtraction, the same
// way the classifier scores at serving time.
func probs(rows [][]float64, bias []float64, x []float64) []float64 {
	logits := make([]float64, len(rows))
	for k, row := range rows {
		s := bias[k]
		for j, v := range x {
			s += row[j] * v
		}
		logits[k] = s
	}
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	var sum float64
	out := make([]float64, len(logits))
	for k, l := range logits {
		out[k] = math.Exp(l - maxLogit)
		sum += out[k]
	}
	for k := range out {
		out[k] /= sum
	}
	return out
}

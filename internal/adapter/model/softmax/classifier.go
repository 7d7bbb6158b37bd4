// Package softmax implements the statistical fallback classifier as a linear
// softmax model over verse feature vectors. Weights are trained offline by
// cmd/modeltrain and loaded from a JSON file at startup; the classifier is
// immutable afterwards and safe for concurrent use.
package softmax

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Weights is the persisted parameter set of a trained classifier. The trainer
// writes this structure as JSON; Load reads it back. Weights holds one row per
// label; Mean and Std standardize features before scoring.
type Weights struct {
	Labels     []string    `json:"labels"`
	FeatureDim int         `json:"feature_dim"`
	Mean       []float64   `json:"mean"`
	Std        []float64   `json:"std"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

// Classifier scores feature vectors against a fixed label set.
type Classifier struct {
	w Weights
}

// Load reads classifier weights from a JSON file. Any failure, whether a
// missing file, malformed JSON, or inconsistent shapes, wraps
// domain.ErrModelUnavailable so callers can degrade to rule-only analysis.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("softmax: %v: %w", err, domain.ErrModelUnavailable)
	}

	var w Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("softmax: decode weights %s: %v: %w", path, err, domain.ErrModelUnavailable)
	}

	return New(w)
}

// New validates the weight shapes and returns a ready classifier.
func New(w Weights) (*Classifier, error) {
	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("softmax: %v: %w", err, domain.ErrModelUnavailable)
	}
	return &Classifier{w: w}, nil
}

func (w Weights) validate() error {
	if len(w.Labels) == 0 {
		return fmt.Errorf("weights declare no labels")
	}
	if w.FeatureDim != domain.FeatureDim {
		return fmt.Errorf("weights declare feature_dim %d, extractor produces %d", w.FeatureDim, domain.FeatureDim)
	}
	if len(w.Mean) != w.FeatureDim || len(w.Std) != w.FeatureDim {
		return fmt.Errorf("mean/std length %d/%d, want %d", len(w.Mean), len(w.Std), w.FeatureDim)
	}
	if len(w.Weights) != len(w.Labels) {
		return fmt.Errorf("%d weight rows for %d labels", len(w.Weights), len(w.Labels))
	}
	for i, row := range w.Weights {
		if len(row) != w.FeatureDim {
			return fmt.Errorf("weight row %d has length %d, want %d", i, len(row), w.FeatureDim)
		}
	}
	if len(w.Bias) != len(w.Labels) {
		return fmt.Errorf("%d bias terms for %d labels", len(w.Bias), len(w.Labels))
	}
	return nil
}

// Predict returns the full probability distribution over the label set,
// sorted by descending probability with ties broken by label. The
// distribution always sums to 1.
func (c *Classifier) Predict(_ context.Context, f domain.FeatureVector) ([]domain.LabelProb, error) {
	x := f.Floats()
	for j := range x {
		std := c.w.Std[j]
		if std <= 0 {
			// Constant feature in the training set; center only.
			std = 1
		}
		x[j] = (x[j] - c.w.Mean[j]) / std
	}

	logits := make([]float64, len(c.w.Labels))
	for i, row := range c.w.Weights {
		s := c.w.Bias[i]
		for j, v := range x {
			s += row[j] * v
		}
		logits[i] = s
	}

	// Softmax with max subtraction so large logits cannot overflow.
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	var sum float64
	probs := make([]float64, len(logits))
	for i, l := range logits {
		probs[i] = math.Exp(l - maxLogit)
		sum += probs[i]
	}

	out := make([]domain.LabelProb, len(logits))
	for i, p := range probs {
		out[i] = domain.LabelProb{Label: c.w.Labels[i], Prob: p / sum}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Prob != out[b].Prob {
			return out[a].Prob > out[b].Prob
		}
		return out[a].Label < out[b].Label
	})
	return out, nil
}

package domain

// Feature vector geometry. Fixed so every verse maps to the same number of
// model inputs regardless of its pada count or length.
const (
	FeaturePadaSlots  = 8
	FeatureWeightBits = 64

	// FeatureDim is the length of the slice returned by Floats.
	FeatureDim = 2 + FeaturePadaSlots + FeatureWeightBits + 1
)

// FeatureVector is the fixed-shape numeric input consumed by the
// statistical fallback classifier.
type FeatureVector struct {
	TotalAksharas    int
	PadaCount        int
	SyllablesPerPada [FeaturePadaSlots]int
	// WeightBits encodes the verse-wide weight sequence, 1 for guru and
	// 0 for laghu or absent, truncated or zero-padded to the fixed width.
	WeightBits [FeatureWeightBits]float64
	// BestRuleDeviation is the deviation of the best rule candidate, or
	// -1 when no rule survived its own budget.
	BestRuleDeviation int
}

// Floats flattens the vector in declaration order: total aksharas, pada
// count, per-pada syllable counts, weight bits, best-rule deviation.
func (f FeatureVector) Floats() []float64 {
	out := make([]float64, 0, FeatureDim)
	out = append(out, float64(f.TotalAksharas), float64(f.PadaCount))
	for _, c := range f.SyllablesPerPada {
		out = append(out, float64(c))
	}
	out = append(out, f.WeightBits[:]...)
	out = append(out, float64(f.BestRuleDeviation))
	return out
}

// LabelProb is one entry of a fallback model's output distribution.
type LabelProb struct {
	Label string
	Prob  float64
}

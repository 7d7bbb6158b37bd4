package meter

import "github.com/chandaslab/chandas-backend/internal/domain"

// Score converts a deviation count into the proportion of matching
// positions, clamped to [0,1]. Monotonically decreasing in deviation.
func Score(deviation, positions int) float64 {
	if positions <= 0 {
		return 0
	}
	s := 1 - float64(deviation)/float64(positions)
	if s < 0 {
		return 0
	}
	return s
}

// NeedsFallback reports whether the ranked candidates are inconclusive:
// the list is empty or the best confidence falls below the threshold.
func NeedsFallback(candidates []domain.ClassificationResult, threshold float64) bool {
	return len(candidates) == 0 || candidates[0].Confidence < threshold
}

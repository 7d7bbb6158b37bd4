package meter

import "github.com/chandaslab/chandas-backend/internal/domain"

// FamilyHeuristic names a verse's base family from its shape alone, the
// Pingala way: an exact-shape table when all padas carry the same count,
// otherwise the family whose base count lies closest to the first
// pada's. Ties keep the canonical family order. False only for an empty
// verse.
func FamilyHeuristic(counts []int) (domain.MeterFamily, bool) {
	if len(counts) == 0 {
		return domain.MeterFamilyUnknown, false
	}
	first := counts[0]
	allEqual := true
	for _, c := range counts {
		if c != first {
			allEqual = false
			break
		}
	}

	if allEqual {
		switch n := len(counts); {
		case n == 3 && first == 8:
			return domain.MeterFamilyGayatri, true
		case n == 4 && first == 8:
			return domain.MeterFamilyAnushtubh, true
		case n == 5 && first == 8:
			return domain.MeterFamilyPankti, true
		case n == 4 && first == 11:
			return domain.MeterFamilyTrishtubh, true
		case n == 4 && first == 12:
			return domain.MeterFamilyJagati, true
		case n == 4 && first == 9:
			return domain.MeterFamilyBrihati, true
		case n >= 2 && n <= 4 && first == 7:
			return domain.MeterFamilyUshnih, true
		}
	}

	best := domain.MeterFamilyUnknown
	bestAbs := -1
	for _, fam := range domain.MeterFamilies() {
		d := first - fam.BaseSyllables()
		if d < 0 {
			d = -d
		}
		if bestAbs < 0 || d < bestAbs {
			bestAbs, best = d, fam
		}
	}
	return best, true
}

// FamilyDeviation returns D, the first pada's syllable count minus the
// family's base count. Zero when the family or the counts are unknown.
func FamilyDeviation(family domain.MeterFamily, counts []int) int {
	if len(counts) == 0 || family.BaseSyllables() == 0 {
		return 0
	}
	return counts[0] - family.BaseSyllables()
}

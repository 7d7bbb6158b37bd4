package meter

import (
	"sort"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Match evaluates every rule against the scanned padas and returns the
// surviving candidates ranked best first. Ranking is a total order:
// deviation ascending, then priority ascending, then declaration order.
// A rule whose deviation exceeds its own budget is excluded outright.
func (rb *Rulebook) Match(padas []domain.Pada) []domain.ClassificationResult {
	type scored struct {
		res      domain.ClassificationResult
		priority int
	}
	var cands []scored
	for _, rule := range rb.rules {
		ev, ok := evaluate(rule, padas)
		if !ok || ev.deviation > rule.MaxDeviation {
			continue
		}
		cands = append(cands, scored{
			res: domain.ClassificationResult{
				Meter:      rule.Name,
				Family:     rule.Family,
				Deviation:  ev.deviation,
				Confidence: Score(ev.deviation, ev.positions),
				Mismatches: ev.mismatches,
				Source:     domain.CandidateSourceRule,
			},
			priority: rule.Priority,
		})
	}
	// SliceStable keeps declaration order for full ties.
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].res.Deviation != cands[j].res.Deviation {
			return cands[i].res.Deviation < cands[j].res.Deviation
		}
		return cands[i].priority < cands[j].priority
	})
	out := make([]domain.ClassificationResult, len(cands))
	for i, c := range cands {
		out[i] = c.res
	}
	return out
}

// evaluation is the outcome of comparing one rule with one verse.
type evaluation struct {
	deviation  int
	positions  int // total compared positions, the confidence denominator
	mismatches []domain.Mismatch
}

// evaluate reports whether the rule is a candidate for the verse shape
// and, if so, its deviation detail. Candidacy needs the pada count
// inside the rule's bounds and every pada's syllable count within the
// rule's per-pada tolerance. Deviation then counts positionwise weight
// mismatches (wildcards free, final-lenient waivers free) plus one for
// every syllable of count difference.
func evaluate(rule domain.MeterRule, padas []domain.Pada) (evaluation, bool) {
	var ev evaluation
	if len(padas) < rule.PadaCountMin || len(padas) > rule.PadaCountMax {
		return ev, false
	}
	for i, p := range padas {
		diff := len(p.Aksharas) - rule.ExpectedSyllables(i)
		if diff < 0 {
			diff = -diff
		}
		if diff > rule.SyllableTol {
			return ev, false
		}
	}

	for i, p := range padas {
		pattern := []rune(rule.PatternForPada(i))
		obs := p.Aksharas

		overlap := len(obs)
		if len(pattern) < overlap {
			overlap = len(pattern)
		}
		for j := 0; j < overlap; j++ {
			want := domain.Weight(pattern[j])
			if pattern[j] == domain.PatternWildcard {
				continue
			}
			got := obs[j].Weight
			if got == want {
				continue
			}
			m := domain.Mismatch{PadaIndex: i, Position: j, Expected: want, Observed: got}
			if rule.FinalLenient && want == domain.WeightGuru &&
				obs[j].GuruReason == domain.GuruReasonFinalPosition {
				m.Waived = true
			} else {
				ev.deviation++
			}
			ev.mismatches = append(ev.mismatches, m)
		}

		// Count difference: every missing or extra syllable costs one.
		longer := len(obs)
		if len(pattern) > longer {
			longer = len(pattern)
		}
		for j := overlap; j < longer; j++ {
			m := domain.Mismatch{PadaIndex: i, Position: j, Expected: domain.WeightUndetermined, Observed: domain.WeightUndetermined}
			if j < len(obs) {
				m.Observed = obs[j].Weight
			}
			if j < len(pattern) && pattern[j] != domain.PatternWildcard {
				m.Expected = domain.Weight(pattern[j])
			}
			ev.deviation++
			ev.mismatches = append(ev.mismatches, m)
		}
		ev.positions += longer
	}
	return ev, true
}

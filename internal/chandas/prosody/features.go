package prosody

import (
	"strings"

	"github.com/chandaslab/chandas-backend/internal/chandas/script"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Stobha syllables as they surface in Samavedic material. Detection is
// substring-based and deliberately loose; the flag feeds the feature
// vector and the response, never the weight scan.
var stobhaParticles = []string{"हो", "हि", "है", "हौ", "ओ", "आइ", "इउ", "हु", "हे", "हा"}

// DetectVedic inspects normalized text for recitation features that fall
// outside plain classical prosody.
func DetectVedic(normalized string) domain.VedicFlags {
	flags := domain.VedicFlags{
		HasPluti: strings.ContainsRune(normalized, script.PlutiDigit),
	}
	for _, p := range stobhaParticles {
		if strings.Contains(normalized, p) {
			flags.HasStobha = true
			break
		}
	}
	for _, r := range normalized {
		if script.IsVedicSign(r) {
			flags.HasVedicSigns = true
			break
		}
	}
	return flags
}

// Extract flattens a scanned verse into the fixed-shape vector the
// fallback model consumes. Padas and weights beyond the fixed slots are
// truncated; missing ones stay zero.
func Extract(padas []domain.Pada, bestRuleDeviation int) domain.FeatureVector {
	vec := domain.FeatureVector{
		PadaCount:         len(padas),
		BestRuleDeviation: bestRuleDeviation,
	}
	bit := 0
	for i, p := range padas {
		vec.TotalAksharas += len(p.Aksharas)
		if i < domain.FeaturePadaSlots {
			vec.SyllablesPerPada[i] = len(p.Aksharas)
		}
		for _, a := range p.Aksharas {
			if bit >= domain.FeatureWeightBits {
				break
			}
			if a.IsGuru() {
				vec.WeightBits[bit] = 1
			}
			bit++
		}
	}
	return vec
}

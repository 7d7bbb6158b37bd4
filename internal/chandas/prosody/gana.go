// Package prosody derives the classical descriptions of a scanned verse:
// gana triads, the numeric feature vector for the statistical fallback
// and the Vedic recitation flags.
package prosody

import "github.com/chandaslab/chandas-backend/internal/domain"

// ganaOf names every weight triad. The table is total over {L,G}^3, so
// encoding never fails for scanned weights.
var ganaOf = map[[3]domain.Weight]domain.Gana{
	{domain.WeightLaghu, domain.WeightLaghu, domain.WeightLaghu}: domain.GanaNa,
	{domain.WeightLaghu, domain.WeightLaghu, domain.WeightGuru}:  domain.GanaYa,
	{domain.WeightLaghu, domain.WeightGuru, domain.WeightLaghu}:  domain.GanaTa,
	{domain.WeightLaghu, domain.WeightGuru, domain.WeightGuru}:   domain.GanaRa,
	{domain.WeightGuru, domain.WeightLaghu, domain.WeightLaghu}:  domain.GanaMa,
	{domain.WeightGuru, domain.WeightLaghu, domain.WeightGuru}:   domain.GanaBha,
	{domain.WeightGuru, domain.WeightGuru, domain.WeightLaghu}:   domain.GanaSa,
	{domain.WeightGuru, domain.WeightGuru, domain.WeightGuru}:    domain.GanaJa,
}

// EncodeGanas folds a weight sequence into complete triads; whatever is
// left over is kept verbatim as the tail. Unknown weights read as laghu
// so the triad table stays total.
func EncodeGanas(weights []domain.Weight) domain.GanaSequence {
	var seq domain.GanaSequence
	i := 0
	for ; i+3 <= len(weights); i += 3 {
		var key [3]domain.Weight
		for j := 0; j < 3; j++ {
			w := weights[i+j]
			if w != domain.WeightGuru {
				w = domain.WeightLaghu
			}
			key[j] = w
		}
		seq.Ganas = append(seq.Ganas, ganaOf[key])
	}
	if i < len(weights) {
		seq.Tail = append(seq.Tail, weights[i:]...)
	}
	return seq
}

// Package syllable breaks a pada into aksharas and assigns each its
// prosodic weight. Grouping follows classical syllabification: a
// consonant cluster attaches as the onset of the following vowel, and
// only a cluster with nothing after it closes the preceding akshara as
// coda. Clusters join across spaces inside a pada, since word breaks do
// not interrupt prosody.
package syllable

import (
	"fmt"

	"github.com/chandaslab/chandas-backend/internal/chandas/script"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// builder accumulates one akshara while the rune walk is inside it.
type builder struct {
	text    []rune
	vowel   []rune
	coda    []rune
	onsetCC int
	accent  domain.Accent
	pluti   bool
}

// accentRank orders svara marks for the one-accent-per-akshara rule:
// anudatta wins over udatta, udatta over svarita.
func accentRank(a domain.Accent) int {
	switch a {
	case domain.AccentAnudatta:
		return 3
	case domain.AccentUdatta:
		return 2
	case domain.AccentSvarita:
		return 1
	}
	return 0
}

// Syllabify splits one pada's samhita text into aksharas. Returned
// warnings report accent or coda marks that had no syllable to carry
// them; such marks are dropped rather than failing the pada.
func Syllabify(text string) ([]domain.Akshara, []string) {
	runes := []rune(text)
	var built []builder
	var warnings []string

	var onset []rune
	onsetCC := 0

	emit := func(nucleus []rune) {
		b := builder{
			text:    append(append([]rune(nil), onset...), nucleus...),
			vowel:   nucleus,
			onsetCC: onsetCC,
		}
		built = append(built, b)
		onset = nil
		onsetCC = 0
	}
	last := func() *builder {
		if len(built) == 0 {
			return nil
		}
		return &built[len(built)-1]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t':
			// clusters continue across word breaks

		case script.IsConsonant(r):
			onset = append(onset, r)
			onsetCC++
			if i+1 < len(runes) && runes[i+1] == script.Nukta {
				onset = append(onset, script.Nukta)
				i++
			}
			if i+1 < len(runes) && runes[i+1] == script.Virama {
				onset = append(onset, script.Virama)
				i++
				continue
			}
			if i+1 < len(runes) && script.IsDependentSign(runes[i+1]) {
				continue
			}
			emit(nil) // inherent a

		case script.IsIndependentVowel(r):
			emit([]rune{r})

		case script.IsDependentSign(r):
			emit([]rune{r})

		case script.IsCodaMark(r) || script.IsVedicSign(r):
			b := last()
			if b == nil {
				warnings = append(warnings, fmt.Sprintf("mark %U has no syllable to attach to", r))
				continue
			}
			b.coda = append(b.coda, r)
			b.text = append(b.text, r)

		case script.IsSvaraMark(r):
			b := last()
			if b == nil {
				warnings = append(warnings, fmt.Sprintf("accent mark %U has no syllable to attach to", r))
				continue
			}
			b.text = append(b.text, r)
			if a := script.AccentOf(r); accentRank(a) > accentRank(b.accent) {
				b.accent = a
			}

		case r == script.PlutiDigit:
			if b := last(); b != nil {
				b.pluti = true
				b.text = append(b.text, r)
			}

		default:
			// avagraha, danda remnants and stray runes carry no weight
		}
	}

	if len(onset) > 0 {
		b := last()
		if b == nil {
			warnings = append(warnings, "consonant cluster with no vowel in pada")
		} else {
			b.coda = append(b.coda, onset...)
			b.text = append(b.text, onset...)
		}
	}

	return assign(built), warnings
}

// assign computes weight, reason and matra for every built akshara. The
// conjunct rule needs the following akshara's onset, so it runs after
// grouping is complete.
func assign(built []builder) []domain.Akshara {
	aks := make([]domain.Akshara, len(built))
	for i, b := range built {
		nextOnset := 0
		if i+1 < len(built) {
			nextOnset = built[i+1].onsetCC
		}
		w, reason := weigh(b, nextOnset)

		matra := 1
		if w == domain.WeightGuru {
			matra = 2
		}
		if b.pluti {
			matra = 3
		}

		vowel := "अ"
		if len(b.vowel) > 0 {
			vowel = string(b.vowel)
		}

		if w == domain.WeightLaghu && i == len(built)-1 {
			reason = domain.GuruReasonFinalPosition
		}

		aks[i] = domain.Akshara{
			Index:      i,
			Text:       string(b.text),
			Vowel:      vowel,
			Coda:       string(b.coda),
			Matra:      matra,
			Weight:     w,
			GuruReason: reason,
			Accent:     b.accent,
		}
	}
	return aks
}

// weigh applies the weight rules in precedence order: a long nucleus,
// then a conjunct environment, then nasal and visarga codas.
func weigh(b builder, nextOnset int) (domain.Weight, domain.GuruReason) {
	long := b.pluti
	for _, r := range b.vowel {
		if script.IsLongVowel(r) {
			long = true
		}
	}
	if long {
		return domain.WeightGuru, domain.GuruReasonLongVowel
	}

	codaCluster := false
	nasal := false
	visarga := false
	for _, r := range b.coda {
		switch {
		case script.IsConsonant(r):
			codaCluster = true
		case r == script.Anusvara || r == script.Candrabindu:
			nasal = true
		case r == script.Visarga || script.IsVedicSign(r):
			visarga = true
		}
	}

	if nextOnset >= 2 || codaCluster {
		return domain.WeightGuru, domain.GuruReasonConjunct
	}
	if nasal {
		return domain.WeightGuru, domain.GuruReasonAnusvara
	}
	if visarga {
		return domain.WeightGuru, domain.GuruReasonVisarga
	}
	return domain.WeightLaghu, domain.GuruReasonNone
}

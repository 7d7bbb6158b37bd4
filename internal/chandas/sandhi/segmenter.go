// Package sandhi splits a normalized samhita verse into padas and
// recovers word boundaries by reversing common external-sandhi
// junctions. Reversal is purely orthographic: an ordered rule table is
// tried at each candidate junction and the first split whose fragments
// are both pronounceable wins. Junctions that no rule can reverse are
// kept as single fused words and reported through the uncertainty flag.
package sandhi

import (
	"strings"

	"github.com/chandaslab/chandas-backend/internal/chandas/script"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// minFragmentAksharas guards vowel-sign junctions: a split is only
// plausible when both fragments carry at least two syllables. Avagraha
// junctions are exempt since the mark itself attests the boundary.
const minFragmentAksharas = 2

// Segment breaks a normalized verse into padas and their words. The
// returned flag is true when at least one junction could not be
// reversed and a fused word was kept.
func Segment(normalized string) ([]domain.Pada, bool) {
	texts := splitPadaTexts(normalized)
	padas := make([]domain.Pada, 0, len(texts))
	uncertain := false
	for i, text := range texts {
		words := segmentWords(text)
		for _, w := range words {
			if w.Fused {
				uncertain = true
			}
		}
		padas = append(padas, domain.Pada{
			Index:  i,
			Text:   text,
			Words:  words,
			Sandhi: profileOf(words),
		})
	}
	return padas, uncertain
}

// splitPadaTexts cuts the verse at danda tokens. Normalization has
// already collapsed danda runs to "|" or "||" surrounded by single
// spaces, so a plain token walk suffices.
func splitPadaTexts(s string) []string {
	var texts []string
	var cur []string
	for _, tok := range strings.Fields(s) {
		if tok == "|" || tok == "||" {
			if len(cur) > 0 {
				texts = append(texts, strings.Join(cur, " "))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		texts = append(texts, strings.Join(cur, " "))
	}
	return texts
}

// segmentWords splits one pada into words: whitespace first, then
// avagraha junctions, then fused vowel junctions inside each token.
func segmentWords(padaText string) []domain.Word {
	var words []domain.Word
	for _, tok := range strings.Fields(padaText) {
		words = append(words, splitToken(tok)...)
	}
	return words
}

func splitToken(tok string) []domain.Word {
	if i := strings.IndexRune(tok, script.Avagraha); i >= 0 {
		left, right, ok := reverseAvagraha(tok[:i], tok[i+len(string(script.Avagraha)):])
		if !ok {
			return []domain.Word{{Text: tok, Fused: true}}
		}
		words := splitToken(left)
		return append(words, splitToken(right)...)
	}
	left, right, ok := reverseVowelJunction(tok)
	if !ok {
		return []domain.Word{{Text: tok}}
	}
	words := splitToken(left)
	return append(words, splitToken(right)...)
}

// reverseAvagraha restores the elided vowel at an avagraha mark. The
// rule table is ordered; the first rule whose left suffix matches and
// whose fragments are pronounceable is applied.
func reverseAvagraha(left, right string) (string, string, bool) {
	for _, r := range avagrahaRules {
		if r.leftSuffix != "" && !strings.HasSuffix(left, r.leftSuffix) {
			continue
		}
		l := strings.TrimSuffix(left, r.trimSuffix) + r.tail
		rr := r.head + right
		if validFragment(l) && validFragment(rr) {
			return l, rr, true
		}
	}
	return "", "", false
}

// reverseVowelJunction scans the token left to right for a dependent
// sign that a rule can reverse. Both fragments must be pronounceable
// and carry minFragmentAksharas syllables, which rejects genuine long
// vowels inside ordinary words.
func reverseVowelJunction(tok string) (string, string, bool) {
	runes := []rune(tok)
	for i, ru := range runes {
		for _, r := range vowelRules {
			if ru != r.junction {
				continue
			}
			if r.prev != 0 && (i == 0 || runes[i-1] != r.prev) {
				continue
			}
			left := string(runes[:i]) + r.tail
			right := r.head + string(runes[i+1:])
			if aksharaCount(left) < minFragmentAksharas || aksharaCount(right) < minFragmentAksharas {
				continue
			}
			if validFragment(left) && validFragment(right) {
				return left, right, true
			}
		}
	}
	return "", "", false
}

// validFragment reports whether a fragment can stand as a word: it has
// at least one vowel nucleus and does not open with a dependent sign,
// virama or bare coda mark.
func validFragment(s string) bool {
	if aksharaCount(s) == 0 {
		return false
	}
	for _, r := range s {
		if script.IsSvaraMark(r) || script.IsVedicSign(r) {
			continue
		}
		return !script.IsDependentSign(r) && !script.IsCodaMark(r) && r != script.Virama
	}
	return false
}

// aksharaCount counts vowel nuclei without full syllabification. A
// consonant contributes an inherent vowel unless a virama or dependent
// sign follows it.
func aksharaCount(s string) int {
	runes := []rune(s)
	n := 0
	for i, r := range runes {
		switch {
		case script.IsIndependentVowel(r), script.IsDependentSign(r):
			n++
		case script.IsConsonant(r):
			next := nextPhonemic(runes, i+1)
			if next != script.Virama && !script.IsDependentSign(next) {
				n++
			}
		}
	}
	return n
}

// nextPhonemic returns the first rune at or after i that is not a svara
// or Vedic annotation mark, or zero at end of input.
func nextPhonemic(runes []rune, i int) rune {
	for ; i < len(runes); i++ {
		if script.IsSvaraMark(runes[i]) || script.IsVedicSign(runes[i]) {
			continue
		}
		return runes[i]
	}
	return 0
}

// profileOf summarizes the sandhi surface of a word list for the
// feature extractor.
func profileOf(words []domain.Word) domain.SandhiProfile {
	var p domain.SandhiProfile
	for _, w := range words {
		runes := []rune(w.Text)
		last := lastPhonemic(runes)
		switch last {
		case script.Visarga:
			p.WordFinalVisarga++
		case script.Anusvara:
			p.WordFinalAnusvara++
		}
		for i, r := range runes {
			if r == script.Virama && nextPhonemic(runes, i+1) != 0 {
				p.InternalClusters++
			}
		}
	}
	return p
}

func lastPhonemic(runes []rune) rune {
	for i := len(runes) - 1; i >= 0; i-- {
		if script.IsSvaraMark(runes[i]) || script.IsVedicSign(runes[i]) {
			continue
		}
		return runes[i]
	}
	return 0
}

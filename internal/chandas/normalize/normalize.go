// Package normalize canonicalizes Sanskrit verse text for metrical
// analysis. The pipeline is NFC composition, transliteration of romanized
// input, punctuation stripping, svara-mark reattachment and danda layout.
// Normalize is a pure function and idempotent on its own output.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/chandaslab/chandas-backend/internal/chandas/script"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Normalize canonicalizes verse text. Romanized input (no Devanagari, some
// Latin) is transliterated first. Danda marks become "|" and "||" boundary
// tokens with uniform spacing rather than disappearing with the rest of
// the punctuation. Fails with domain.ErrInvalidScript when nothing
// phonemic survives.
func Normalize(input string) (string, error) {
	s := norm.NFC.String(input)

	if !script.HasDevanagari(s) && script.HasLatinLetter(s) {
		s = script.Transliterate(s)
	}

	s = stripNonPhonemic(s)
	s = reattachSvaras(s)
	s = layoutDandas(s)

	if !hasPhonemicContent(s) {
		return "", fmt.Errorf("normalize: %w", domain.ErrInvalidScript)
	}
	return s, nil
}

// StripSvaras removes all Vedic accent marks, preserving base letters.
// Used to build the bare lookup key for unaccented corpus queries.
func StripSvaras(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if script.IsSvaraMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripNonPhonemic keeps Devanagari (letters, signs, svara marks, the
// pluti digit), danda characters and whitespace. Everything else,
// including Latin leftovers and ASCII digits, is dropped.
func stripNonPhonemic(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case script.IsDevanagari(r):
			b.WriteRune(r)
		case r == '|' || r == '/' || r == '\\':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// reattachSvaras moves an accent mark separated from its vowel by
// whitespace back onto the preceding character. A mark with no preceding
// character stays put; the syllabifier reports it as unaligned.
func reattachSvaras(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if script.IsSvaraMark(r) {
			j := len(out)
			for j > 0 && out[j-1] == ' ' {
				j--
			}
			if j < len(out) {
				out = append(out[:j], append([]rune{r}, out[j:]...)...)
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// layoutDandas rewrites danda variants as "|" and "||" tokens separated
// from the text by single spaces, collapsing runs of three or more bars
// to a verse-final double danda. Also collapses all other whitespace.
func layoutDandas(s string) string {
	var tokens []string
	var word strings.Builder
	bars := 0

	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	flushBars := func() {
		if bars == 0 {
			return
		}
		if bars == 1 {
			tokens = append(tokens, "|")
		} else {
			tokens = append(tokens, "||")
		}
		bars = 0
	}

	for _, r := range s {
		switch {
		case r == '|' || r == script.Danda || r == '/' || r == '\\':
			flushWord()
			bars++
		case r == script.DoubleDanda:
			flushWord()
			bars += 2
		case r == ' ':
			flushWord()
		default:
			flushBars()
			word.WriteRune(r)
		}
	}
	flushWord()
	flushBars()

	return strings.Join(tokens, " ")
}

// hasPhonemicContent reports whether s contains at least one vowel or
// consonant. Accent marks and structural signs alone do not qualify.
func hasPhonemicContent(s string) bool {
	for _, r := range s {
		if script.IsIndependentVowel(r) || script.IsDependentSign(r) || script.IsConsonant(r) {
			return true
		}
	}
	return false
}

// Package script classifies Devanagari code points for metrical analysis
// and transliterates romanized Sanskrit (IAST or Harvard-Kyoto) into
// Devanagari. Tables follow the conventions of Vedic editions: svara
// marks from the Devanagari block plus the Vedic Extensions block.
package script

import "github.com/chandaslab/chandas-backend/internal/domain"

// Structural code points.
const (
	Virama      = '्' // ्
	Avagraha    = 'ऽ' // ऽ
	Anusvara    = 'ं' // ं
	Visarga     = 'ः' // ः
	Candrabindu = 'ँ' // ँ
	Nukta       = '़' // ़
	Danda       = '।' // ।
	DoubleDanda = '॥' // ॥
	Om          = 'ॐ' // ॐ
	PlutiDigit  = '३'      // digit three marks pluta lengthening
)

var (
	independentVowels = runeSet("अआइईउऊऋॠऌॡएऐओऔॐ")
	dependentSigns    = runeSet("ािीुूृॄॢॣेैोौॅॉॆॊ")
	consonants        = runeSet("कखगघङचछजझञटठडढणतथदधनपफबभमयरलवशषसहळऴ")

	// Long nuclei across both independent and dependent forms. ॐ counts
	// long: its nucleus is the long diphthong o.
	longVowels = runeSet("आईऊॠॡएऐओऔॐाीूॄॣेैोौ")
)

func runeSet(s string) map[rune]bool {
	m := make(map[rune]bool, len(s))
	for _, r := range s {
		m[r] = true
	}
	return m
}

// IsIndependentVowel reports whether r is a standalone vowel letter.
func IsIndependentVowel(r rune) bool { return independentVowels[r] }

// IsDependentSign reports whether r is a matra (dependent vowel sign).
func IsDependentSign(r rune) bool { return dependentSigns[r] }

// IsConsonant reports whether r is a Devanagari consonant letter.
func IsConsonant(r rune) bool { return consonants[r] }

// IsLongVowel reports whether the vowel letter or sign r is prosodically
// long (two morae).
func IsLongVowel(r rune) bool { return longVowels[r] }

// IsCodaMark reports whether r attaches to the preceding akshara as a
// weight-bearing or nasalizing mark.
func IsCodaMark(r rune) bool {
	return r == Anusvara || r == Visarga || r == Candrabindu
}

// IsDanda reports whether r is a pada or verse delimiter.
func IsDanda(r rune) bool {
	return r == Danda || r == DoubleDanda || r == '|'
}

// IsDevanagari reports whether r belongs to the Devanagari block or the
// Vedic Extensions block.
func IsDevanagari(r rune) bool {
	return (r >= 0x0900 && r <= 0x097F) || (r >= 0x1CD0 && r <= 0x1CFF)
}

// IsSvaraMark reports whether r is a Vedic accent or recitation mark that
// normalization must keep attached to its vowel.
func IsSvaraMark(r rune) bool {
	switch {
	case r >= 0x0951 && r <= 0x0954:
		return true
	case r >= 0x1CD0 && r <= 0x1CE8:
		return true
	case r == 0x1CF2 || r == 0x1CF3 || r == 0x1CF4:
		return true
	}
	return false
}

// IsVedicSign reports whether r is one of the ardhavisarga signs that mark
// specialized Vedic recitation (jihvamuliya/upadhmaniya).
func IsVedicSign(r rune) bool {
	return r == 0x1CF2 || r == 0x1CF3
}

// AccentOf maps a svara mark to its accent category. Marks from the Vedic
// Extensions block all read as svarita; unknown runes read as none.
// Precedence across several marks on one akshara is the caller's concern.
func AccentOf(r rune) domain.Accent {
	switch {
	case r == 0x0951:
		return domain.AccentUdatta
	case r == 0x0952:
		return domain.AccentAnudatta
	case r == 0x0953 || r == 0x0954:
		return domain.AccentSvarita
	case r >= 0x1CD0 && r <= 0x1CE8:
		return domain.AccentSvarita
	}
	return domain.AccentNone
}

// HasDevanagari reports whether s contains at least one Devanagari rune.
func HasDevanagari(s string) bool {
	for _, r := range s {
		if IsDevanagari(r) {
			return true
		}
	}
	return false
}

// HasLatinLetter reports whether s contains at least one Latin letter,
// including the IAST diacritic range.
func HasLatinLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= 0x00C0 && r <= 0x024F) || (r >= 0x1E00 && r <= 0x1EFF) {
			return true
		}
	}
	return false
}

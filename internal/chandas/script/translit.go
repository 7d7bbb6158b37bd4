package script

import (
	"strings"
	"unicode"
)

// romanVowel holds both Devanagari forms of one vowel. A zero sign marks
// the inherent a, which leaves a preceding consonant bare.
type romanVowel struct {
	independent rune
	sign        rune
}

// Vowel keys cover IAST (precomposed NFC forms) and Harvard-Kyoto. The
// Rigvedic convention applies: ḷ is the retroflex consonant ळ, so the
// vocalic l vowels are reachable only through Harvard-Kyoto lR/lRR.
var romanVowels = map[string]romanVowel{
	"a":  {'अ', 0},
	"ā":  {'आ', 'ा'},
	"i":  {'इ', 'ि'},
	"ī":  {'ई', 'ी'},
	"u":  {'उ', 'ु'},
	"ū":  {'ऊ', 'ू'},
	"ṛ":  {'ऋ', 'ृ'},
	"ṝ":  {'ॠ', 'ॄ'},
	"e":  {'ए', 'े'},
	"ē":  {'ए', 'े'},
	"ai": {'ऐ', 'ै'},
	"o":  {'ओ', 'ो'},
	"ō":  {'ओ', 'ो'},
	"au": {'औ', 'ौ'},

	"A":   {'आ', 'ा'},
	"I":   {'ई', 'ी'},
	"U":   {'ऊ', 'ू'},
	"R":   {'ऋ', 'ृ'},
	"RR":  {'ॠ', 'ॄ'},
	"lR":  {'ऌ', 'ॢ'},
	"lRR": {'ॡ', 'ॣ'},
}

var romanConsonants = map[string]rune{
	"kh": 'ख', "gh": 'घ', "ch": 'छ', "jh": 'झ',
	"ṭh": 'ठ', "ḍh": 'ढ', "th": 'थ', "dh": 'ध', "ph": 'फ', "bh": 'भ',
	"k": 'क', "g": 'ग', "ṅ": 'ङ', "c": 'च', "j": 'ज', "ñ": 'ञ',
	"ṭ": 'ट', "ḍ": 'ड', "ṇ": 'ण', "t": 'त', "d": 'द', "n": 'न',
	"p": 'प', "b": 'ब', "m": 'म', "y": 'य', "r": 'र', "l": 'ल',
	"v": 'व', "ś": 'श', "ṣ": 'ष', "s": 'स', "h": 'ह',
	"ḷ": 'ळ', "ḻ": 'ळ',

	"Th": 'ठ', "Dh": 'ढ',
	"G": 'ङ', "J": 'ञ', "T": 'ट', "D": 'ड', "N": 'ण',
	"z": 'श', "S": 'ष', "L": 'ळ',
}

// Marks that attach to the syllable rather than forming one.
var romanMarks = map[string]rune{
	"ṃ":      Anusvara,
	"ṁ":      Anusvara,
	"M":      Anusvara,
	"ḥ":      Visarga,
	"H":      Visarga,
	"m̐": Candrabindu,
	"'":      Avagraha,
	"’": Avagraha,
	"́": '॑', // combining acute marks udatta
	"̀": '॒', // combining grave marks anudatta
	"3":      PlutiDigit,
}

// Precomposed accented vowels appear when NFC merges an IAST vowel with
// its pitch mark. Each expands to the bare vowel plus the svara mark.
var accentedVowels = map[rune]struct {
	vowel  string
	accent rune
}{
	'á': {"a", '॑'},
	'à': {"a", '॒'},
	'é': {"e", '॑'},
	'è': {"e", '॒'},
	'í': {"i", '॑'},
	'ì': {"i", '॒'},
	'ó': {"o", '॑'},
	'ò': {"o", '॒'},
	'ú': {"u", '॑'},
	'ù': {"u", '॒'},
}

const maxRomanKey = 3

// Transliterate converts romanized Sanskrit into Devanagari. Input with
// IAST diacritics is case-folded first; otherwise capital letters read as
// Harvard-Kyoto. Runes with no reading pass through unchanged.
func Transliterate(s string) string {
	if hasIASTDiacritics(s) {
		s = strings.ToLower(s)
	}
	runes := []rune(s)

	var out strings.Builder
	out.Grow(len(s))
	pendingConsonant := false

	flushConsonant := func() {
		if pendingConsonant {
			out.WriteRune(Virama)
			pendingConsonant = false
		}
	}

	for i := 0; i < len(runes); {
		if exp, ok := accentedVowels[runes[i]]; ok {
			v := romanVowels[exp.vowel]
			if pendingConsonant {
				if v.sign != 0 {
					out.WriteRune(v.sign)
				}
				pendingConsonant = false
			} else {
				out.WriteRune(v.independent)
			}
			out.WriteRune(exp.accent)
			i++
			continue
		}

		key, kind, deva := matchRoman(runes[i:min(i+maxRomanKey, len(runes))])
		switch kind {
		case romanKindVowel:
			v := romanVowels[key]
			if pendingConsonant {
				if v.sign != 0 {
					out.WriteRune(v.sign)
				}
				pendingConsonant = false
			} else {
				out.WriteRune(v.independent)
			}
		case romanKindConsonant:
			if pendingConsonant {
				out.WriteRune(Virama)
			}
			out.WriteRune(deva)
			pendingConsonant = true
		case romanKindMark:
			flushConsonant()
			out.WriteRune(deva)
		default:
			flushConsonant()
			out.WriteRune(runes[i])
			i++
			continue
		}
		i += len([]rune(key))
	}
	flushConsonant()

	return out.String()
}

type romanKind int

const (
	romanKindNone romanKind = iota
	romanKindVowel
	romanKindConsonant
	romanKindMark
)

// matchRoman finds the longest table key at the start of window.
func matchRoman(window []rune) (string, romanKind, rune) {
	for n := len(window); n > 0; n-- {
		key := string(window[:n])
		if _, ok := romanVowels[key]; ok {
			return key, romanKindVowel, 0
		}
		if c, ok := romanConsonants[key]; ok {
			return key, romanKindConsonant, c
		}
		if m, ok := romanMarks[key]; ok {
			return key, romanKindMark, m
		}
	}
	return "", romanKindNone, 0
}

func hasIASTDiacritics(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII && (unicode.Is(unicode.Latin, r) || r == '́' || r == '̀' || r == '̐') {
			return true
		}
	}
	return false
}

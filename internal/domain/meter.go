package domain

import "strings"

// PatternWildcard marks a rule pattern position that matches any weight.
const PatternWildcard = '.'

// MeterRule is one canonical rulebook entry. Rules are immutable after the
// rulebook loads; the matcher reads them concurrently without locking.
type MeterRule struct {
	Name   string
	Family MeterFamily

	// PadaCountMin and PadaCountMax bound the number of padas; fixed-shape
	// meters declare Min == Max.
	PadaCountMin int
	PadaCountMax int

	// Syllables is the expected akshara count per pada, cycled when the
	// verse has more padas than entries. SyllableTol widens each count by
	// an absolute per-pada tolerance for variable Vedic meters.
	Syllables   []int
	SyllableTol int

	// Patterns hold per-pada weight templates (L, G or the wildcard dot),
	// cycled across padas the same way as Syllables.
	Patterns []string

	MaxDeviation int
	Priority     int
	FinalLenient bool

	// Support is the corpus attestation count behind a generated rule.
	Support int
}

// ExpectedSyllables returns the expected count for the given pada index,
// cycling over the declared per-pada counts.
func (r MeterRule) ExpectedSyllables(padaIdx int) int {
	if len(r.Syllables) == 0 {
		return 0
	}
	return r.Syllables[padaIdx%len(r.Syllables)]
}

// PatternForPada returns the weight template for the given pada index,
// cycling over the declared patterns. Empty when the rule has none.
func (r MeterRule) PatternForPada(padaIdx int) string {
	if len(r.Patterns) == 0 {
		return ""
	}
	return r.Patterns[padaIdx%len(r.Patterns)]
}

// MeterLabel is a composite meter designation: an optional deviation
// prefix, optional variant qualifiers and the base family.
type MeterLabel struct {
	Deviation DeviationPrefix
	Variants  []string
	Family    MeterFamily
	Raw       string
}

// String renders the label in canonical romanized form, e.g.
// "svaraj brahmi trishtubh". Falls back to Raw when no family is known.
func (l MeterLabel) String() string {
	if l.Family == MeterFamilyUnknown {
		return l.Raw
	}
	parts := make([]string, 0, len(l.Variants)+2)
	if l.Deviation != DeviationNone {
		parts = append(parts, string(l.Deviation))
	}
	parts = append(parts, l.Variants...)
	parts = append(parts, string(l.Family))
	return strings.Join(parts, " ")
}

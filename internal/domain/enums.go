package domain

// Weight is the prosodic weight of an akshara.
type Weight string

const (
	WeightLaghu        Weight = "L"
	WeightGuru         Weight = "G"
	WeightUndetermined Weight = "?"
)

func (w Weight) String() string { return string(w) }

func (w Weight) IsValid() bool {
	switch w {
	case WeightLaghu, WeightGuru, WeightUndetermined:
		return true
	}
	return false
}

// GuruReason explains why an akshara carries guru weight.
type GuruReason string

const (
	GuruReasonNone      GuruReason = "NONE"
	GuruReasonLongVowel GuruReason = "LONG_VOWEL"
	GuruReasonConjunct  GuruReason = "CONJUNCT"
	GuruReasonAnusvara  GuruReason = "ANUSVARA"
	GuruReasonVisarga   GuruReason = "VISARGA"
	// GuruReasonFinalPosition marks a pada-final laghu akshara that a meter
	// rule with final-position leniency may count as guru. The syllabifier
	// records the eligibility; only the matcher applies it.
	GuruReasonFinalPosition GuruReason = "FINAL_POSITION"
)

func (r GuruReason) String() string { return string(r) }

func (r GuruReason) IsValid() bool {
	switch r {
	case GuruReasonNone, GuruReasonLongVowel, GuruReasonConjunct,
		GuruReasonAnusvara, GuruReasonVisarga, GuruReasonFinalPosition:
		return true
	}
	return false
}

// Accent is the Vedic pitch accent attached to an akshara.
type Accent string

const (
	AccentNone     Accent = "NONE"
	AccentUdatta   Accent = "UDATTA"
	AccentAnudatta Accent = "ANUDATTA"
	AccentSvarita  Accent = "SVARITA"
)

func (a Accent) String() string { return string(a) }

func (a Accent) IsValid() bool {
	switch a {
	case AccentNone, AccentUdatta, AccentAnudatta, AccentSvarita:
		return true
	}
	return false
}

// Gana is one of the eight fixed Pingala triad names.
type Gana string

const (
	GanaNa  Gana = "na"  // LLL
	GanaYa  Gana = "ya"  // LLG
	GanaTa  Gana = "ta"  // LGL
	GanaRa  Gana = "ra"  // LGG
	GanaMa  Gana = "ma"  // GLL
	GanaBha Gana = "bha" // GLG
	GanaSa  Gana = "sa"  // GGL
	GanaJa  Gana = "ja"  // GGG
)

func (g Gana) String() string { return string(g) }

func (g Gana) IsValid() bool {
	switch g {
	case GanaNa, GanaYa, GanaTa, GanaRa, GanaMa, GanaBha, GanaSa, GanaJa:
		return true
	}
	return false
}

// MeterFamily is one of the seven major Vedic chandas families.
type MeterFamily string

const (
	MeterFamilyGayatri   MeterFamily = "gayatri"
	MeterFamilyUshnih    MeterFamily = "ushnih"
	MeterFamilyAnushtubh MeterFamily = "anushtubh"
	MeterFamilyBrihati   MeterFamily = "brihati"
	MeterFamilyPankti    MeterFamily = "pankti"
	MeterFamilyTrishtubh MeterFamily = "trishtubh"
	MeterFamilyJagati    MeterFamily = "jagati"
	MeterFamilyUnknown   MeterFamily = ""
)

func (f MeterFamily) String() string { return string(f) }

func (f MeterFamily) IsValid() bool {
	switch f {
	case MeterFamilyGayatri, MeterFamilyUshnih, MeterFamilyAnushtubh,
		MeterFamilyBrihati, MeterFamilyPankti, MeterFamilyTrishtubh, MeterFamilyJagati:
		return true
	}
	return false
}

// BaseSyllables returns the canonical per-pada syllable count for the
// family, or 0 for an unknown family.
func (f MeterFamily) BaseSyllables() int {
	switch f {
	case MeterFamilyGayatri:
		return 8
	case MeterFamilyUshnih:
		return 7
	case MeterFamilyAnushtubh:
		return 8
	case MeterFamilyBrihati:
		return 9
	case MeterFamilyPankti:
		return 8
	case MeterFamilyTrishtubh:
		return 11
	case MeterFamilyJagati:
		return 12
	}
	return 0
}

// MeterFamilies lists the seven families in canonical order.
func MeterFamilies() []MeterFamily {
	return []MeterFamily{
		MeterFamilyGayatri,
		MeterFamilyUshnih,
		MeterFamilyAnushtubh,
		MeterFamilyBrihati,
		MeterFamilyPankti,
		MeterFamilyTrishtubh,
		MeterFamilyJagati,
	}
}

// DeviationPrefix names the per-pada syllable-count deviation of a verse
// from its family base count, per the traditional labeling convention.
type DeviationPrefix string

const (
	DeviationNone    DeviationPrefix = ""
	DeviationNichrid DeviationPrefix = "nichrid"
	DeviationBhurik  DeviationPrefix = "bhurik"
	DeviationViraj   DeviationPrefix = "viraj"
	DeviationSvaraj  DeviationPrefix = "svaraj"
)

func (d DeviationPrefix) String() string { return string(d) }

func (d DeviationPrefix) IsValid() bool {
	switch d {
	case DeviationNone, DeviationNichrid, DeviationBhurik, DeviationViraj, DeviationSvaraj:
		return true
	}
	return false
}

// DeviationPrefixForD maps D = actual − base syllables per pada to its
// traditional label. D of 0, −2 or lower yields no prefix.
func DeviationPrefixForD(d int) DeviationPrefix {
	switch {
	case d == -1:
		return DeviationNichrid
	case d == 1:
		return DeviationBhurik
	case d == 2:
		return DeviationViraj
	case d >= 3:
		return DeviationSvaraj
	}
	return DeviationNone
}

// CandidateSource identifies which layer produced a meter candidate.
type CandidateSource string

const (
	CandidateSourceRule   CandidateSource = "RULE"
	CandidateSourceCorpus CandidateSource = "CORPUS"
	CandidateSourceModel  CandidateSource = "MODEL"
)

func (s CandidateSource) String() string { return string(s) }

func (s CandidateSource) IsValid() bool {
	switch s {
	case CandidateSourceRule, CandidateSourceCorpus, CandidateSourceModel:
		return true
	}
	return false
}

package domain

import "strings"

// Akshara is a single syllabic unit: one vowel nucleus with its leading
// consonant cluster and any coda marks (halanta consonants, anusvara,
// visarga, candrabindu). Immutable once produced; Index is stable within
// its pada.
type Akshara struct {
	Index      int
	Text       string
	Vowel      string
	Coda       string
	Matra      int // prosodic morae: 1 light, 2 heavy
	Weight     Weight
	GuruReason GuruReason
	Accent     Accent
}

// IsGuru reports whether the akshara carries heavy weight.
func (a Akshara) IsGuru() bool { return a.Weight == WeightGuru }

// Word is one padapatha fragment recovered by sandhi reversal. Fused marks
// a junction that could not be reversed; the surface form is kept intact.
type Word struct {
	Text  string
	Fused bool
}

// SandhiProfile summarizes phonological joins observed in one pada.
type SandhiProfile struct {
	WordFinalVisarga  int
	WordFinalAnusvara int
	InternalClusters  int
}

// Pada is one metrical line of a verse in samhita form. Owned exclusively
// by its VerseAnalysis; never shared across analyses.
type Pada struct {
	Index    int
	Text     string
	Words    []Word
	Aksharas []Akshara
	Sandhi   SandhiProfile
}

// Weights returns the pada's weight sequence in akshara order.
func (p Pada) Weights() []Weight {
	out := make([]Weight, len(p.Aksharas))
	for i, a := range p.Aksharas {
		out[i] = a.Weight
	}
	return out
}

// LGString renders the weight sequence as a compact "GLLG…" string.
func (p Pada) LGString() string {
	var b strings.Builder
	for _, a := range p.Aksharas {
		b.WriteString(string(a.Weight))
	}
	return b.String()
}

// GanaSequence is the triad encoding of one pada's weights. Tail holds the
// 0–2 weights left over when the length is not a multiple of three.
type GanaSequence struct {
	Ganas []Gana
	Tail  []Weight
}

// String renders the sequence in the conventional hyphenated form, with
// the unlabeled tail appended as raw weights.
func (s GanaSequence) String() string {
	parts := make([]string, 0, len(s.Ganas)+1)
	for _, g := range s.Ganas {
		parts = append(parts, string(g))
	}
	if len(s.Tail) > 0 {
		var tail strings.Builder
		for _, w := range s.Tail {
			tail.WriteString(string(w))
		}
		parts = append(parts, tail.String())
	}
	return strings.Join(parts, "-")
}

// VedicFlags records recitation features that matter for Vedic material.
type VedicFlags struct {
	HasPluti      bool
	HasStobha     bool
	HasVedicSigns bool
}

// Mismatch records one position where the observed weight differs from a
// rule's expectation. Waived mismatches are pada-final laghu positions a
// rule counted as guru under final-position leniency; they contribute
// nothing to the deviation count.
type Mismatch struct {
	PadaIndex int
	Position  int
	Expected  Weight
	Observed  Weight
	Waived    bool
}

// ClassificationResult is one ranked meter candidate.
type ClassificationResult struct {
	Meter      string
	Family     MeterFamily
	Deviation  int
	Confidence float64
	Mismatches []Mismatch
	Source     CandidateSource
}

// AnalysisFlags carries the recoverable uncertainty markers of an analysis.
type AnalysisFlags struct {
	SegmentationUncertain    bool
	ClassificationUnresolved bool
}

// VerseAnalysis is the complete result of analyzing one verse. It is fully
// constructed or not returned at all; partial knowledge is expressed through
// Flags and Warnings, never through omitted fields.
type VerseAnalysis struct {
	Input      string
	Normalized string
	Padas      []Pada
	Ganas      []GanaSequence // parallel to Padas
	Candidates []ClassificationResult
	BestLabel  string
	Vedic      VedicFlags
	Flags      AnalysisFlags
	Warnings   []string
}

// SyllableCounts returns the akshara count of each pada in order.
func (v VerseAnalysis) SyllableCounts() []int {
	out := make([]int, len(v.Padas))
	for i, p := range v.Padas {
		out[i] = len(p.Aksharas)
	}
	return out
}

// TotalAksharas returns the akshara count over all padas.
func (v VerseAnalysis) TotalAksharas() int {
	n := 0
	for _, p := range v.Padas {
		n += len(p.Aksharas)
	}
	return n
}

// WeightString renders all pada weight sequences joined by " | ".
func (v VerseAnalysis) WeightString() string {
	parts := make([]string, len(v.Padas))
	for i, p := range v.Padas {
		parts[i] = p.LGString()
	}
	return strings.Join(parts, " | ")
}

// Best returns the top-ranked candidate, or false when the list is empty.
func (v VerseAnalysis) Best() (ClassificationResult, bool) {
	if len(v.Candidates) == 0 {
		return ClassificationResult{}, false
	}
	return v.Candidates[0], true
}

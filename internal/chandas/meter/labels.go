package meter

import (
	"strings"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Attested Devanagari spellings of the seven families, including the
// forms with a trailing छन्दः qualifier that appear in corpus labels.
var devanagariFamilies = map[string]domain.MeterFamily{
	"गायत्री":          domain.MeterFamilyGayatri,
	"गायत्रीः":         domain.MeterFamilyGayatri,
	"गायत्री छन्दः":    domain.MeterFamilyGayatri,
	"गायत्री छन्दस्":   domain.MeterFamilyGayatri,
	"उष्णिक्":          domain.MeterFamilyUshnih,
	"उष्णिह्":          domain.MeterFamilyUshnih,
	"उष्णिक् छन्दः":    domain.MeterFamilyUshnih,
	"उष्णिह् छन्दः":    domain.MeterFamilyUshnih,
	"उष्णिह् छन्दस्":   domain.MeterFamilyUshnih,
	"अनुष्टुप्":        domain.MeterFamilyAnushtubh,
	"अनुष्टुप् छन्दः":  domain.MeterFamilyAnushtubh,
	"अनुष्टुभ्":        domain.MeterFamilyAnushtubh,
	"अनुष्टुभ् छन्दः":  domain.MeterFamilyAnushtubh,
	"अनुष्टुप् छन्दस्": domain.MeterFamilyAnushtubh,
	"बृहती":            domain.MeterFamilyBrihati,
	"बृहतीः":           domain.MeterFamilyBrihati,
	"बृहती छन्दः":      domain.MeterFamilyBrihati,
	"बृहती छन्दस्":     domain.MeterFamilyBrihati,
	"पङ्क्तिः":         domain.MeterFamilyPankti,
	"पङ्क्ति":          domain.MeterFamilyPankti,
	"पंक्ति":           domain.MeterFamilyPankti,
	"पंक्तिः":          domain.MeterFamilyPankti,
	"पङ्क्ति छन्दः":    domain.MeterFamilyPankti,
	"त्रिष्टुप्":       domain.MeterFamilyTrishtubh,
	"त्रिष्टुप् छन्दः": domain.MeterFamilyTrishtubh,
	"त्रिष्टुभ्":       domain.MeterFamilyTrishtubh,
	"त्रिष्टुभ् छन्दः": domain.MeterFamilyTrishtubh,
	"त्रिष्टुप् छन्दस्": domain.MeterFamilyTrishtubh,
	"जगती":             domain.MeterFamilyJagati,
	"जगतीः":            domain.MeterFamilyJagati,
	"जगती छन्दः":       domain.MeterFamilyJagati,
	"जगती छन्दस्":      domain.MeterFamilyJagati,
}

var devanagariDeviations = map[string]domain.DeviationPrefix{
	"स्वराड्": domain.DeviationSvaraj,
	"स्वराड":  domain.DeviationSvaraj,
	"भुरिक्":  domain.DeviationBhurik,
	"भूरिक्":  domain.DeviationBhurik,
	"विराट्":  domain.DeviationViraj,
	"विराज्":  domain.DeviationViraj,
	"विराज":   domain.DeviationViraj,
	"निचृत्":  domain.DeviationNichrid,
	"निचृद्":  domain.DeviationNichrid,
}

// Common Devanagari qualifier spellings rendered to their romanized
// variant names.
var devanagariVariants = map[string]string{
	"ब्राह्मी":    "brahmi",
	"याजुषी":      "yajushi",
	"आर्ची":       "archi",
	"आर्षी":       "arshi",
	"साम्नी":      "samni",
	"प्राजापत्या": "prajapatya",
}

// asciiFolder flattens IAST diacritics into the plain identifiers the
// rulebook and corpus use.
var asciiFolder = strings.NewReplacer(
	"ā", "a", "ī", "i", "ū", "u", "ṛ", "r", "ṝ", "r",
	"ṅ", "n", "ñ", "n", "ś", "sh", "ṣ", "sh", "ṭ", "t", "ḍ", "d",
	"’", "", "'", "",
)

// romanFamilies includes the one spelling the diacritic fold misses:
// bṛhatī folds to brhati, not brihati.
var romanFamilies = map[string]domain.MeterFamily{
	"gayatri":   domain.MeterFamilyGayatri,
	"ushnih":    domain.MeterFamilyUshnih,
	"anushtubh": domain.MeterFamilyAnushtubh,
	"brihati":   domain.MeterFamilyBrihati,
	"brhati":    domain.MeterFamilyBrihati,
	"pankti":    domain.MeterFamilyPankti,
	"trishtubh": domain.MeterFamilyTrishtubh,
	"jagati":    domain.MeterFamilyJagati,
}

var romanDeviations = map[string]domain.DeviationPrefix{
	"nichrid": domain.DeviationNichrid,
	"bhurik":  domain.DeviationBhurik,
	"viraj":   domain.DeviationViraj,
	"svaraj":  domain.DeviationSvaraj,
}

// stripInvisible drops zero-width and BOM runes that creep into labels
// copied from digital editions.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
}

// ParseLabel decodes a raw meter designation cell. Comma-separated
// components each become one MeterLabel (heterometric verses carry one
// label per pada group). Within a component, tokens are classified as
// family, deviation prefix or variant qualifier; unrecognized tokens
// survive as variants so no attested qualifier is lost.
func ParseLabel(raw string) []domain.MeterLabel {
	var out []domain.MeterLabel
	for _, comp := range strings.Split(raw, ",") {
		comp = strings.TrimSpace(comp)
		if comp == "" {
			continue
		}
		label := domain.MeterLabel{Raw: comp}
		whole := strings.TrimSpace(stripInvisible(comp))

		if fam, ok := devanagariFamilies[whole]; ok {
			label.Family = fam
			out = append(out, label)
			continue
		}

		for _, tok := range strings.Fields(whole) {
			switch {
			case devanagariFamilies[tok] != domain.MeterFamilyUnknown:
				label.Family = devanagariFamilies[tok]
			case devanagariDeviations[tok] != domain.DeviationNone:
				label.Deviation = devanagariDeviations[tok]
			case devanagariVariants[tok] != "":
				label.Variants = append(label.Variants, devanagariVariants[tok])
			case splitFused(tok, &label):
			default:
				folded := strings.ToLower(asciiFolder.Replace(tok))
				if fam, ok := romanFamilies[folded]; ok {
					label.Family = fam
				} else if dev, ok := romanDeviations[folded]; ok {
					label.Deviation = dev
				} else if folded != "" {
					label.Variants = append(label.Variants, folded)
				}
			}
		}
		out = append(out, label)
	}
	return out
}

// splitFused handles tokens like निचृद्गायत्री where a deviation prefix
// is written solid with the family name.
func splitFused(tok string, label *domain.MeterLabel) bool {
	for prefix, dev := range devanagariDeviations {
		rest, ok := strings.CutPrefix(tok, prefix)
		if !ok {
			continue
		}
		if fam, ok := devanagariFamilies[rest]; ok {
			label.Deviation = dev
			label.Family = fam
			return true
		}
	}
	return false
}

// ComposeLabel builds the inferred designation for a family and its
// syllable deviation D.
func ComposeLabel(family domain.MeterFamily, d int) domain.MeterLabel {
	return domain.MeterLabel{Deviation: domain.DeviationPrefixForD(d), Family: family}
}

package domain

import "testing"

func TestWeight_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		weight Weight
		want   bool
	}{
		{WeightLaghu, true},
		{WeightGuru, true},
		{WeightUndetermined, true},
		{Weight("X"), false},
		{Weight(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.weight), func(t *testing.T) {
			t.Parallel()
			if got := tt.weight.IsValid(); got != tt.want {
				t.Errorf("Weight(%q).IsValid() = %v, want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestGuruReason_IsValid(t *testing.T) {
	t.Parallel()

	valid := []GuruReason{
		GuruReasonNone, GuruReasonLongVowel, GuruReasonConjunct,
		GuruReasonAnusvara, GuruReasonVisarga, GuruReasonFinalPosition,
	}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("GuruReason(%q).IsValid() = false, want true", r)
		}
	}
	if GuruReason("SHORT_OPEN").IsValid() {
		t.Error("GuruReason(SHORT_OPEN).IsValid() = true, want false")
	}
}

func TestAccent_IsValid(t *testing.T) {
	t.Parallel()

	valid := []Accent{AccentNone, AccentUdatta, AccentAnudatta, AccentSvarita}
	for _, a := range valid {
		if !a.IsValid() {
			t.Errorf("Accent(%q).IsValid() = false, want true", a)
		}
	}
	if Accent("GRAVE").IsValid() {
		t.Error("Accent(GRAVE).IsValid() = true, want false")
	}
}

func TestGana_IsValid(t *testing.T) {
	t.Parallel()

	valid := []Gana{GanaNa, GanaYa, GanaTa, GanaRa, GanaMa, GanaBha, GanaSa, GanaJa}
	if len(valid) != 8 {
		t.Fatalf("expected 8 ganas, got %d", len(valid))
	}
	for _, g := range valid {
		if !g.IsValid() {
			t.Errorf("Gana(%q).IsValid() = false, want true", g)
		}
	}
	if Gana("ka").IsValid() {
		t.Error("Gana(ka).IsValid() = true, want false")
	}
}

func TestMeterFamily_BaseSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family MeterFamily
		want   int
	}{
		{MeterFamilyGayatri, 8},
		{MeterFamilyUshnih, 7},
		{MeterFamilyAnushtubh, 8},
		{MeterFamilyBrihati, 9},
		{MeterFamilyPankti, 8},
		{MeterFamilyTrishtubh, 11},
		{MeterFamilyJagati, 12},
		{MeterFamilyUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			t.Parallel()
			if got := tt.family.BaseSyllables(); got != tt.want {
				t.Errorf("MeterFamily(%q).BaseSyllables() = %d, want %d", tt.family, got, tt.want)
			}
		})
	}
}

func TestMeterFamilies_AllValid(t *testing.T) {
	t.Parallel()

	families := MeterFamilies()
	if len(families) != 7 {
		t.Fatalf("expected 7 families, got %d", len(families))
	}
	for _, f := range families {
		if !f.IsValid() {
			t.Errorf("MeterFamily(%q).IsValid() = false, want true", f)
		}
		if f.BaseSyllables() == 0 {
			t.Errorf("MeterFamily(%q).BaseSyllables() = 0, want > 0", f)
		}
	}
}

func TestDeviationPrefixForD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    int
		want DeviationPrefix
	}{
		{-3, DeviationNone},
		{-2, DeviationNone},
		{-1, DeviationNichrid},
		{0, DeviationNone},
		{1, DeviationBhurik},
		{2, DeviationViraj},
		{3, DeviationSvaraj},
		{5, DeviationSvaraj},
	}
	for _, tt := range tests {
		if got := DeviationPrefixForD(tt.d); got != tt.want {
			t.Errorf("DeviationPrefixForD(%d) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCandidateSource_IsValid(t *testing.T) {
	t.Parallel()

	valid := []CandidateSource{CandidateSourceRule, CandidateSourceCorpus, CandidateSourceModel}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("CandidateSource(%q).IsValid() = false, want true", s)
		}
	}
	if CandidateSource("ORACLE").IsValid() {
		t.Error("CandidateSource(ORACLE).IsValid() = true, want false")
	}
}

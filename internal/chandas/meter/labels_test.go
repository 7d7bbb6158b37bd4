package meter

import (
	"reflect"
	"testing"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

func TestParseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []domain.MeterLabel
	}{
		{
			name: "heterometric two components",
			raw:  "स्वराड् ब्राह्मी त्रिष्टुप्, याजुषी जगती",
			want: []domain.MeterLabel{
				{
					Deviation: domain.DeviationSvaraj,
					Variants:  []string{"brahmi"},
					Family:    domain.MeterFamilyTrishtubh,
					Raw:       "स्वराड् ब्राह्मी त्रिष्टुप्",
				},
				{
					Variants: []string{"yajushi"},
					Family:   domain.MeterFamilyJagati,
					Raw:      "याजुषी जगती",
				},
			},
		},
		{
			name: "fused deviation prefix",
			raw:  "निचृद्गायत्री",
			want: []domain.MeterLabel{{
				Deviation: domain.DeviationNichrid,
				Family:    domain.MeterFamilyGayatri,
				Raw:       "निचृद्गायत्री",
			}},
		},
		{
			name: "chandah qualifier matched whole",
			raw:  "गायत्री छन्दः",
			want: []domain.MeterLabel{{
				Family: domain.MeterFamilyGayatri,
				Raw:    "गायत्री छन्दः",
			}},
		},
		{
			name: "romanized with deviation",
			raw:  "nichrid gayatri",
			want: []domain.MeterLabel{{
				Deviation: domain.DeviationNichrid,
				Family:    domain.MeterFamilyGayatri,
				Raw:       "nichrid gayatri",
			}},
		},
		{
			name: "iast diacritics folded",
			raw:  "bṛhatī",
			want: []domain.MeterLabel{{
				Family: domain.MeterFamilyBrihati,
				Raw:    "bṛhatī",
			}},
		},
		{
			name: "zero-width joiner stripped before fused split",
			raw:  "निचृद्‌गायत्री",
			want: []domain.MeterLabel{{
				Deviation: domain.DeviationNichrid,
				Family:    domain.MeterFamilyGayatri,
				Raw:       "निचृद्‌गायत्री",
			}},
		},
		{
			name: "unrecognized qualifier kept as variant",
			raw:  "द्विपदा विराट्",
			want: []domain.MeterLabel{{
				Deviation: domain.DeviationViraj,
				Variants:  []string{"द्विपदा"},
				Raw:       "द्विपदा विराट्",
			}},
		},
		{
			name: "empty components dropped",
			raw:  " , ,",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseLabel(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLabel(%q)\n got %+v\nwant %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMeterLabelString(t *testing.T) {
	t.Parallel()

	got := ParseLabel("स्वराड् ब्राह्मी त्रिष्टुप्")
	if len(got) != 1 {
		t.Fatalf("ParseLabel returned %d labels, want 1", len(got))
	}
	if s := got[0].String(); s != "svaraj brahmi trishtubh" {
		t.Errorf("String() = %q, want %q", s, "svaraj brahmi trishtubh")
	}

	// Without a recognized family the raw cell is preserved verbatim.
	unknown := ParseLabel("द्विपदा विराट्")
	if s := unknown[0].String(); s != "द्विपदा विराट्" {
		t.Errorf("String() = %q, want the raw cell", s)
	}
}

func TestComposeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family domain.MeterFamily
		d      int
		want   string
	}{
		{domain.MeterFamilyGayatri, 0, "gayatri"},
		{domain.MeterFamilyAnushtubh, -1, "nichrid anushtubh"},
		{domain.MeterFamilyTrishtubh, 1, "bhurik trishtubh"},
		{domain.MeterFamilyJagati, 2, "viraj jagati"},
		{domain.MeterFamilyBrihati, 3, "svaraj brihati"},
		{domain.MeterFamilyUshnih, 5, "svaraj ushnih"},
		{domain.MeterFamilyPankti, -2, "pankti"},
	}
	for _, tt := range tests {
		if got := ComposeLabel(tt.family, tt.d).String(); got != tt.want {
			t.Errorf("ComposeLabel(%s, %d) = %q, want %q", tt.family, tt.d, got, tt.want)
		}
	}
}

package script

import (
	"testing"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

func TestRuneClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(rune) bool
		yes  []rune
		no   []rune
	}{
		{
			name: "IsIndependentVowel",
			fn:   IsIndependentVowel,
			yes:  []rune{'अ', 'आ', 'ऋ', 'ए', 'औ', 'ॐ'},
			no:   []rune{'क', 'ा', '्', 'ः', '।'},
		},
		{
			name: "IsDependentSign",
			fn:   IsDependentSign,
			yes:  []rune{'ा', 'ि', 'ी', 'ृ', 'े', 'ौ'},
			no:   []rune{'अ', 'क', 'ं', 'ः', '्'},
		},
		{
			name: "IsConsonant",
			fn:   IsConsonant,
			yes:  []rune{'क', 'ञ', 'ट', 'ह', 'ळ'},
			no:   []rune{'अ', 'ा', '्', 'ऽ', '।'},
		},
		{
			name: "IsLongVowel",
			fn:   IsLongVowel,
			yes:  []rune{'आ', 'ई', 'ए', 'ऐ', 'ा', 'ी', 'े', 'ौ'},
			no:   []rune{'अ', 'इ', 'उ', 'ऋ', 'ि', 'ु', 'ृ'},
		},
		{
			name: "IsCodaMark",
			fn:   IsCodaMark,
			yes:  []rune{'ं', 'ः', 'ँ'},
			no:   []rune{'्', 'ा', 'क', 'ऽ'},
		},
		{
			name: "IsDanda",
			fn:   IsDanda,
			yes:  []rune{'।', '॥'},
			no:   []rune{'|', '!', 'क'},
		},
		{
			name: "IsSvaraMark",
			fn:   IsSvaraMark,
			yes:  []rune{'॑', '॒', '᳚', '᳝'},
			no:   []rune{'्', 'ं', 'क', 'a'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, r := range tt.yes {
				if !tt.fn(r) {
					t.Errorf("%s(%q) = false, want true", tt.name, r)
				}
			}
			for _, r := range tt.no {
				if tt.fn(r) {
					t.Errorf("%s(%q) = true, want false", tt.name, r)
				}
			}
		})
	}
}

func TestAccentOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    rune
		want domain.Accent
	}{
		{'॑', domain.AccentUdatta},
		{'॒', domain.AccentAnudatta},
		{'᳚', domain.AccentSvarita},
		{'क', domain.AccentNone},
		{'्', domain.AccentNone},
	}
	for _, tt := range tests {
		if got := AccentOf(tt.r); got != tt.want {
			t.Errorf("AccentOf(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestHasDevanagari(t *testing.T) {
	t.Parallel()

	if !HasDevanagari("x अ y") {
		t.Error("HasDevanagari() missed a Devanagari rune")
	}
	if HasDevanagari("agnim ile havyavahanam") {
		t.Error("HasDevanagari() reported true for plain Latin")
	}
}

func TestHasLatinLetter(t *testing.T) {
	t.Parallel()

	if !HasLatinLetter("अग्निम् a") {
		t.Error("HasLatinLetter() missed an ASCII letter")
	}
	if !HasLatinLetter("īḷe") {
		t.Error("HasLatinLetter() missed a Latin letter with diacritics")
	}
	if HasLatinLetter("अग्निम् । १२") {
		t.Error("HasLatinLetter() reported true without Latin letters")
	}
}

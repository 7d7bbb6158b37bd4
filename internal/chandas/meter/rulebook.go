// Package meter holds the canonical rulebook, the weight-pattern matcher
// with its deterministic ranking, the confidence scorer and the meter
// label codec. The rulebook and all rules are immutable once loaded and
// are read concurrently without locking.
package meter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

//go:embed rules.json
var embeddedRules []byte

// Rulebook is the loaded, validated set of meter rules in declaration
// order. Declaration order is part of the matcher's tie-break contract.
type Rulebook struct {
	rules []domain.MeterRule
}

// ruleRow is the persisted JSON shape of one rule. A row declares either
// a fixed pada_count or a min/max range, and either one uniform
// syllable_count or explicit per-pada syllables.
type ruleRow struct {
	Name          string   `json:"name"`
	Family        string   `json:"family,omitempty"`
	PadaCount     int      `json:"pada_count,omitempty"`
	PadaCountMin  int      `json:"pada_count_min,omitempty"`
	PadaCountMax  int      `json:"pada_count_max,omitempty"`
	SyllableCount int      `json:"syllable_count,omitempty"`
	Syllables     []int    `json:"syllables,omitempty"`
	SyllableTol   int      `json:"syllable_tolerance,omitempty"`
	Patterns      []string `json:"patterns"`
	MaxDeviation  int      `json:"max_deviation"`
	Priority      int      `json:"priority"`
	FinalLenient  bool     `json:"final_lenient,omitempty"`
	Support       int      `json:"support,omitempty"`
}

// Load returns the embedded canonical rulebook, or the rulebook read
// from path when path is non-empty.
func Load(path string) (*Rulebook, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// LoadEmbedded parses the rulebook compiled into the binary.
func LoadEmbedded() (*Rulebook, error) {
	return parseRulebook(embeddedRules)
}

// LoadFile parses a rulebook override from disk.
func LoadFile(path string) (*Rulebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("meter: read rulebook: %w", err)
	}
	return parseRulebook(data)
}

func parseRulebook(data []byte) (*Rulebook, error) {
	var rows []ruleRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("meter: decode rulebook: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("meter: rulebook is empty")
	}

	seen := make(map[string]bool, len(rows))
	rules := make([]domain.MeterRule, 0, len(rows))
	for i, row := range rows {
		rule, err := row.toRule()
		if err != nil {
			return nil, fmt.Errorf("meter: rule %d %q: %w", i, row.Name, err)
		}
		if seen[rule.Name] {
			return nil, fmt.Errorf("meter: duplicate rule name %q", rule.Name)
		}
		seen[rule.Name] = true
		rules = append(rules, rule)
	}
	return &Rulebook{rules: rules}, nil
}

func (row ruleRow) toRule() (domain.MeterRule, error) {
	var zero domain.MeterRule
	if row.Name == "" {
		return zero, fmt.Errorf("missing name")
	}

	family := domain.MeterFamily(row.Family)
	if family != domain.MeterFamilyUnknown && !family.IsValid() {
		return zero, fmt.Errorf("unknown family %q", row.Family)
	}

	min, max := row.PadaCountMin, row.PadaCountMax
	if row.PadaCount != 0 {
		if min != 0 || max != 0 {
			return zero, fmt.Errorf("pada_count conflicts with pada_count_min/max")
		}
		min, max = row.PadaCount, row.PadaCount
	}
	if min < 1 || max < min {
		return zero, fmt.Errorf("invalid pada count bounds [%d,%d]", min, max)
	}

	syllables := row.Syllables
	if len(syllables) == 0 {
		if row.SyllableCount < 1 {
			return zero, fmt.Errorf("missing syllable count")
		}
		syllables = []int{row.SyllableCount}
	}
	for _, c := range syllables {
		if c < 1 {
			return zero, fmt.Errorf("invalid syllable count %d", c)
		}
	}
	if row.SyllableTol < 0 {
		return zero, fmt.Errorf("negative syllable tolerance")
	}

	if len(row.Patterns) == 0 {
		return zero, fmt.Errorf("missing patterns")
	}
	for _, p := range row.Patterns {
		for _, r := range p {
			if r != 'L' && r != 'G' && r != domain.PatternWildcard {
				return zero, fmt.Errorf("pattern %q has invalid symbol %q", p, r)
			}
		}
	}
	if row.MaxDeviation < 0 {
		return zero, fmt.Errorf("negative max deviation")
	}

	rule := domain.MeterRule{
		Name:         row.Name,
		Family:       family,
		PadaCountMin: min,
		PadaCountMax: max,
		Syllables:    syllables,
		SyllableTol:  row.SyllableTol,
		Patterns:     row.Patterns,
		MaxDeviation: row.MaxDeviation,
		Priority:     row.Priority,
		FinalLenient: row.FinalLenient,
		Support:      row.Support,
	}

	// Each pada's pattern must be as long as its expected count, or the
	// positionwise comparison would drift.
	for i := 0; i < max; i++ {
		if got, want := len(rule.PatternForPada(i)), rule.ExpectedSyllables(i); got != want {
			return zero, fmt.Errorf("pattern length %d does not match %d expected syllables for pada %d", got, want, i)
		}
	}
	return rule, nil
}

// Rules returns the rules in declaration order. Callers must treat the
// slice as read-only.
func (rb *Rulebook) Rules() []domain.MeterRule { return rb.rules }

// Len reports the number of loaded rules.
func (rb *Rulebook) Len() int { return len(rb.rules) }

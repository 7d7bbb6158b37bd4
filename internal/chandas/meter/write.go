package meter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// WriteRules serializes rules to the persisted rulebook JSON format, the
// same format Load reads. Rules are written in the given order; callers
// that care about matcher tie-breaks must sort beforehand.
func WriteRules(w io.Writer, rules []domain.MeterRule) error {
	rows := make([]ruleRow, len(rules))
	for i, r := range rules {
		rows[i] = rowFromRule(r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("meter: encode rulebook: %w", err)
	}
	return nil
}

func rowFromRule(r domain.MeterRule) ruleRow {
	row := ruleRow{
		Name:         r.Name,
		Family:       string(r.Family),
		SyllableTol:  r.SyllableTol,
		Patterns:     r.Patterns,
		MaxDeviation: r.MaxDeviation,
		Priority:     r.Priority,
		FinalLenient: r.FinalLenient,
		Support:      r.Support,
	}

	if r.PadaCountMin == r.PadaCountMax {
		row.PadaCount = r.PadaCountMin
	} else {
		row.PadaCountMin = r.PadaCountMin
		row.PadaCountMax = r.PadaCountMax
	}

	if len(r.Syllables) == 1 {
		row.SyllableCount = r.Syllables[0]
	} else {
		row.Syllables = r.Syllables
	}

	return row
}

package corpus

import "github.com/chandaslab/chandas-backend/internal/domain"

// Filter defines parameters for listing corpus entries.
type Filter struct {
	// Family filters entries attested with the given base family.
	// nil means no family filter.
	Family *domain.MeterFamily

	// SourcePrefix filters source_ref by prefix, e.g. "RV" for Rigveda
	// references. nil or empty string means no source filter.
	SourcePrefix *string

	// Limit is the maximum number of entries to return.
	// Default: 500, max: MaxListLimit.
	Limit int

	// Offset is the number of entries to skip (offset-based pagination).
	Offset int
}

// MaxListLimit caps one List page. Batch consumers that detect the end
// of the corpus by a short page must not request more than this.
const MaxListLimit = 5000

const defaultLimit = 500

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

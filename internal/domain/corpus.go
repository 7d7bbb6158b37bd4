package domain

import (
	"time"

	"github.com/google/uuid"
)

// CorpusEntry is one attested verse from the reference corpus. Entries are
// reference data shared by all callers; the analysis service looks them up
// by normalized samhita text to short-circuit known verses.
type CorpusEntry struct {
	ID        uuid.UUID
	SourceRef string

	Samhita           string
	SamhitaNormalized string
	// SamhitaBare is the normalized text with svara marks stripped, kept as
	// a second lookup key for unaccented input.
	SamhitaBare string
	Padapatha   *string

	MeterRaw    string
	MeterFamily MeterFamily

	CreatedAt time.Time
	UpdatedAt time.Time
}

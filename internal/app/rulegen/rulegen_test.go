package rulegen

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

type corpusSourceMock struct {
	entries []*domain.CorpusEntry
}

func (m *corpusSourceMock) List(_ context.Context, f corpus.Filter) ([]*domain.CorpusEntry, error) {
	if f.Offset >= len(m.entries) {
		return []*domain.CorpusEntry{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[f.Offset:end], nil
}

// verse joins padas with danda tokens in the normalized layout.
func verse(padas ...string) string {
	return strings.Join(padas, " | ") + " ||"
}

func labeled(ref, text string, family domain.MeterFamily) *domain.CorpusEntry {
	return &domain.CorpusEntry{
		SourceRef:         ref,
		Samhita:           text,
		SamhitaNormalized: text,
		SamhitaBare:       text,
		MeterFamily:       family,
	}
}

func newTestGenerator(src corpusSource, cfg Config) *Generator {
	return New(slog.Default(), src, cfg)
}

func TestGenerate_ConsensusPattern(t *testing.T) {
	t.Parallel()

	// गा scans guru, ग scans laghu. Two verses are all-guru; the third is
	// laghu at the first position of its first pada. At 0.9 consensus that
	// position falls to a wildcard while every other stays fixed G.
	allGuru := strings.Repeat("गा", 8)
	mixed := "ग" + strings.Repeat("गा", 7)

	src := &corpusSourceMock{entries: []*domain.CorpusEntry{
		labeled("RV 1.1.1", verse(allGuru, allGuru, allGuru), domain.MeterFamilyGayatri),
		labeled("RV 1.1.2", verse(allGuru, allGuru, allGuru), domain.MeterFamilyGayatri),
		labeled("RV 1.1.3", verse(mixed, allGuru, allGuru), domain.MeterFamilyGayatri),
	}}

	gen := newTestGenerator(src, Config{MinSupport: 3, MaxDeviation: 2, SyllableTol: 1, Priority: 50})

	rules, stats, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.Equal(t, "gayatri-3x8", rule.Name)
	assert.Equal(t, domain.MeterFamilyGayatri, rule.Family)
	assert.Equal(t, 3, rule.PadaCountMin)
	assert.Equal(t, 3, rule.PadaCountMax)
	assert.Equal(t, []int{8}, rule.Syllables)
	assert.Equal(t, 3, rule.Support)
	assert.True(t, rule.FinalLenient)

	require.Len(t, rule.Patterns, 3)
	assert.Equal(t, ".GGGGGGG", rule.Patterns[0])
	assert.Equal(t, "GGGGGGGG", rule.Patterns[1])
	assert.Equal(t, "GGGGGGGG", rule.Patterns[2])

	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 1, stats.Groups)
}

func TestGenerate_SkipsUnlabeledAndIrregular(t *testing.T) {
	t.Parallel()

	allGuru := strings.Repeat("गा", 8)

	src := &corpusSourceMock{entries: []*domain.CorpusEntry{
		labeled("X 1", verse(allGuru, allGuru, allGuru), domain.MeterFamilyUnknown),
		labeled("X 2", verse(allGuru, "गागा"), domain.MeterFamilyGayatri),
	}}

	gen := newTestGenerator(src, Config{MinSupport: 1})

	rules, stats, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rules)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.SkippedUnlabeled)
	assert.Equal(t, 1, stats.SkippedIrregular)
}

func TestGenerate_MinSupportFiltersSmallGroups(t *testing.T) {
	t.Parallel()

	allGuru := strings.Repeat("गा", 8)

	src := &corpusSourceMock{entries: []*domain.CorpusEntry{
		labeled("RV 1.1.1", verse(allGuru, allGuru, allGuru), domain.MeterFamilyGayatri),
		labeled("RV 1.1.2", verse(allGuru, allGuru, allGuru), domain.MeterFamilyGayatri),
	}}

	gen := newTestGenerator(src, Config{MinSupport: 3})

	rules, stats, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rules)
	assert.Equal(t, 0, stats.Groups)
}

func TestGenerate_OrdersByFamilyThenShape(t *testing.T) {
	t.Parallel()

	guru8 := strings.Repeat("गा", 8)
	guru11 := strings.Repeat("गा", 11)

	src := &corpusSourceMock{entries: []*domain.CorpusEntry{
		labeled("T 1", verse(guru11, guru11, guru11, guru11), domain.MeterFamilyTrishtubh),
		labeled("RV 1.1.1", verse(guru8, guru8, guru8), domain.MeterFamilyGayatri),
	}}

	gen := newTestGenerator(src, Config{MinSupport: 1})

	rules, _, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "gayatri-3x8", rules[0].Name)
	assert.Equal(t, "trishtubh-4x11", rules[1].Name)
}

func TestGenerate_PaginatesThroughCorpus(t *testing.T) {
	t.Parallel()

	allGuru := strings.Repeat("गा", 8)
	entries := make([]*domain.CorpusEntry, 5)
	for i := range entries {
		entries[i] = labeled("RV 1.1.1", verse(allGuru, allGuru, allGuru), domain.MeterFamilyGayatri)
	}

	gen := newTestGenerator(&corpusSourceMock{entries: entries}, Config{MinSupport: 1, BatchSize: 2})

	rules, stats, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Entries)
	require.Len(t, rules, 1)
	assert.Equal(t, 5, rules[0].Support)
}

package modeltrain

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandaslab/chandas-backend/internal/adapter/model/softmax"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/chandas/prosody"
	"github.com/chandaslab/chandas-backend/internal/chandas/sandhi"
	"github.com/chandaslab/chandas-backend/internal/chandas/syllable"
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

func verse(padas ...string) string {
	return strings.Join(padas, " | ") + " ||"
}

func labeled(text string, family domain.MeterFamily) *domain.CorpusEntry {
	return &domain.CorpusEntry{
		SourceRef:         "T 1",
		Samhita:           text,
		SamhitaNormalized: text,
		SamhitaBare:       text,
		MeterFamily:       family,
	}
}

// trainingSet builds clearly separable fixtures: short three-pada verses
// labeled gayatri and long four-pada verses labeled jagati.
func trainingSet(perClass int) []*domain.CorpusEntry {
	short := strings.Repeat("गा", 8)
	long := strings.Repeat("गा", 12)

	var entries []*domain.CorpusEntry
	for i := 0; i < perClass; i++ {
		entries = append(entries,
			labeled(verse(short, short, short), domain.MeterFamilyGayatri),
			labeled(verse(long, long, long, long), domain.MeterFamilyJagati),
		)
	}
	return entries
}

func newTestTrainer(t *testing.T, src corpusSource, cfg Config) *Trainer {
	t.Helper()
	rb, err := meter.LoadEmbedded()
	require.NoError(t, err)
	return New(slog.Default(), src, rb, cfg)
}

// featuresOf runs the same scan pipeline the trainer uses, so predictions
// can be checked against vectors shaped exactly like the training data.
func featuresOf(t *testing.T, rb *meter.Rulebook, normalized string) domain.FeatureVector {
	t.Helper()
	padas, _ := sandhi.Segment(normalized)
	for i := range padas {
		padas[i].Aksharas, _ = syllable.Syllabify(padas[i].Text)
	}
	dev := -1
	if cands := rb.Match(padas); len(cands) > 0 {
		dev = cands[0].Deviation
	}
	return prosody.Extract(padas, dev)
}

func TestTrain_SeparatesFamilies(t *testing.T) {
	t.Parallel()

	src := &corpusSourceMock{entries: trainingSet(6)}
	tr := newTestTrainer(t, src, Config{})

	weights, stats, err := tr.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Entries)
	assert.Equal(t, 12, stats.Examples)
	assert.Equal(t, 2, stats.Classes)
	assert.Equal(t, []string{"gayatri", "jagati"}, weights.Labels)
	assert.Equal(t, domain.FeatureDim, weights.FeatureDim)
	assert.Greater(t, stats.FinalLoss, 0.0)

	clf, err := softmax.New(weights)
	require.NoError(t, err)

	rb, err := meter.LoadEmbedded()
	require.NoError(t, err)

	short := strings.Repeat("गा", 8)
	long := strings.Repeat("गा", 12)

	probs, err := clf.Predict(context.Background(), featuresOf(t, rb, verse(short, short, short)))
	require.NoError(t, err)
	assert.Equal(t, "gayatri", probs[0].Label)
	assert.Greater(t, probs[0].Prob, 0.7)

	probs, err = clf.Predict(context.Background(), featuresOf(t, rb, verse(long, long, long, long)))
	require.NoError(t, err)
	assert.Equal(t, "jagati", probs[0].Label)
	assert.Greater(t, probs[0].Prob, 0.7)
}

func TestTrain_DeterministicForFixedSeed(t *testing.T) {
	t.Parallel()

	first, _, err := newTestTrainer(t, &corpusSourceMock{entries: trainingSet(4)}, Config{Epochs: 20}).
		Train(context.Background())
	require.NoError(t, err)

	second, _, err := newTestTrainer(t, &corpusSourceMock{entries: trainingSet(4)}, Config{Epochs: 20}).
		Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrain_SkipsUnlabeledAndUnscannable(t *testing.T) {
	t.Parallel()

	entries := trainingSet(3)
	entries = append(entries,
		labeled(verse(strings.Repeat("गा", 8)), domain.MeterFamilyUnknown),
		labeled("||", domain.MeterFamilyGayatri),
	)

	tr := newTestTrainer(t, &corpusSourceMock{entries: entries}, Config{Epochs: 5})

	_, stats, err := tr.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Entries)
	assert.Equal(t, 1, stats.SkippedUnlabeled)
	assert.Equal(t, 1, stats.SkippedUnscannable)
	assert.Equal(t, 6, stats.Examples)
}

func TestTrain_ErrsWithoutExamples(t *testing.T) {
	t.Parallel()

	entries := []*domain.CorpusEntry{
		labeled(verse(strings.Repeat("गा", 8)), domain.MeterFamilyUnknown),
	}
	tr := newTestTrainer(t, &corpusSourceMock{entries: entries}, Config{Epochs: 5})

	_, _, err := tr.Train(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trainable examples")
}

func TestTrain_ErrsWithSingleClass(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("गा", 8)
	entries := []*domain.CorpusEntry{
		labeled(verse(short, short, short), domain.MeterFamilyGayatri),
		labeled(verse(short, short, short), domain.MeterFamilyGayatri),
	}
	tr := newTestTrainer(t, &corpusSourceMock{entries: entries}, Config{Epochs: 5})

	_, _, err := tr.Train(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two label classes")
}

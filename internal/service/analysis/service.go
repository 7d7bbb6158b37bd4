// Package analysis orchestrates verse analysis: normalization, pada
// segmentation, syllabification, gana encoding, meter matching, corpus
// lookup and the statistical fallback. The service owns no linguistic
// logic itself; every stage lives under internal/chandas.
package analysis

import (
	"context"
	"log/slog"

	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// corpusStore defines the corpus lookup interface needed by the analysis service.
type corpusStore interface {
	GetByNormalizedText(ctx context.Context, normalized, bare string) (*domain.CorpusEntry, error)
}

// fallbackModel defines the statistical classifier interface needed by the analysis service.
type fallbackModel interface {
	Predict(ctx context.Context, f domain.FeatureVector) ([]domain.LabelProb, error)
}

// Service implements verse analysis operations.
type Service struct {
	log    *slog.Logger
	rules  *meter.Rulebook
	corpus corpusStore
	model  fallbackModel
	cfg    config.AnalysisConfig
}

// NewService creates a new analysis service. corpus and model may be nil:
// a nil corpus store behaves as an always-miss lookup, and a nil model
// leaves low-confidence verses unresolved.
func NewService(
	logger *slog.Logger,
	rules *meter.Rulebook,
	corpus corpusStore,
	model fallbackModel,
	cfg config.AnalysisConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "analysis"),
		rules:  rules,
		corpus: corpus,
		model:  model,
		cfg:    cfg,
	}
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/chandas/normalize"
	"github.com/chandaslab/chandas-backend/internal/chandas/prosody"
	"github.com/chandaslab/chandas-backend/internal/chandas/sandhi"
	"github.com/chandaslab/chandas-backend/internal/chandas/syllable"
	"github.com/chandaslab/chandas-backend/internal/domain"
)

// Analyze runs the full pipeline over one verse. Recoverable trouble rides
// inside the result as flags and warnings; an error return means the input
// itself was unusable (empty, oversized, or no interpretable script).
func (s *Service) Analyze(ctx context.Context, input string) (*domain.VerseAnalysis, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	normalized, err := normalize.Normalize(input)
	if err != nil {
		return nil, err
	}

	padas, uncertain := sandhi.Segment(normalized)
	if s.cfg.MaxPadas > 0 && len(padas) > s.cfg.MaxPadas {
		return nil, domain.NewValidationError("text",
			fmt.Sprintf("verse has %d padas, limit %d", len(padas), s.cfg.MaxPadas))
	}

	var warnings []string
	for i := range padas {
		aksharas, warns := syllable.Syllabify(padas[i].Text)
		padas[i].Aksharas = aksharas
		for _, w := range warns {
			warnings = append(warnings, fmt.Sprintf("pada %d: %s", i+1, w))
		}
	}

	ganas := make([]domain.GanaSequence, len(padas))
	for i, p := range padas {
		ganas[i] = prosody.EncodeGanas(p.Weights())
	}

	candidates := s.rules.Match(padas)
	bestRuleDev := -1
	if len(candidates) > 0 {
		bestRuleDev = candidates[0].Deviation
	}

	if attested := s.lookupCorpus(ctx, normalized); attested != nil {
		candidates = append([]domain.ClassificationResult{*attested}, candidates...)
	}

	flags := domain.AnalysisFlags{SegmentationUncertain: uncertain}
	if meter.NeedsFallback(candidates, s.cfg.ConfidenceThreshold) {
		flags.ClassificationUnresolved = true
		if cand := s.predictFallback(ctx, padas, bestRuleDev); cand != nil {
			candidates = append(candidates, *cand)
		}
	}

	va := &domain.VerseAnalysis{
		Input:      input,
		Normalized: normalized,
		Padas:      padas,
		Ganas:      ganas,
		Candidates: candidates,
		BestLabel:  bestLabel(candidates, padas),
		Vedic:      prosody.DetectVedic(normalized),
		Flags:      flags,
		Warnings:   warnings,
	}

	s.log.InfoContext(ctx, "verse analyzed",
		slog.Int("padas", len(padas)),
		slog.Int("aksharas", va.TotalAksharas()),
		slog.Int("candidates", len(candidates)),
		slog.String("best_label", va.BestLabel),
		slog.Bool("unresolved", flags.ClassificationUnresolved),
	)

	return va, nil
}

// lookupCorpus consults the attested corpus when one is configured. A hit
// with a usable meter label becomes a confidence-1.0 candidate ranked ahead
// of every rule candidate. A miss or store failure falls through to pure
// analysis; store errors are logged, never fatal.
func (s *Service) lookupCorpus(ctx context.Context, normalized string) *domain.ClassificationResult {
	if s.corpus == nil {
		return nil
	}

	entry, err := s.corpus.GetByNormalizedText(ctx, normalized, normalize.StripSvaras(normalized))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "corpus lookup failed", slog.String("error", err.Error()))
		}
		return nil
	}

	name, family := attestedMeter(entry)
	if name == "" {
		return nil
	}
	return &domain.ClassificationResult{
		Meter:      name,
		Family:     family,
		Confidence: 1.0,
		Source:     domain.CandidateSourceCorpus,
	}
}

// attestedMeter renders a corpus entry's meter annotation as a canonical
// romanized label. Entries annotated in Devanagari parse through the label
// codec; an unparseable annotation is kept verbatim.
func attestedMeter(entry *domain.CorpusEntry) (string, domain.MeterFamily) {
	if labels := meter.ParseLabel(entry.MeterRaw); len(labels) > 0 {
		family := labels[0].Family
		if !family.IsValid() {
			family = entry.MeterFamily
		}
		return labels[0].String(), family
	}
	if entry.MeterFamily.IsValid() {
		return entry.MeterFamily.String(), entry.MeterFamily
	}
	return "", domain.MeterFamilyUnknown
}

// predictFallback asks the statistical model for a family suggestion. The
// returned candidate carries the model's own probability as confidence and
// ranks after every rule candidate.
func (s *Service) predictFallback(ctx context.Context, padas []domain.Pada, bestRuleDev int) *domain.ClassificationResult {
	if s.model == nil {
		return nil
	}

	probs, err := s.model.Predict(ctx, prosody.Extract(padas, bestRuleDev))
	if err != nil {
		s.log.WarnContext(ctx, "fallback model failed", slog.String("error", err.Error()))
		return nil
	}
	if len(probs) == 0 {
		return nil
	}

	family := domain.MeterFamily(probs[0].Label)
	if !family.IsValid() {
		return nil
	}
	d := meter.FamilyDeviation(family, syllableCounts(padas))
	return &domain.ClassificationResult{
		Meter:      meter.ComposeLabel(family, d).String(),
		Family:     family,
		Confidence: probs[0].Prob,
		Source:     domain.CandidateSourceModel,
	}
}

// bestLabel renders the gold label for the top candidate. With no candidate
// at all, the Pingala count heuristic still names the closest family.
func bestLabel(candidates []domain.ClassificationResult, padas []domain.Pada) string {
	counts := syllableCounts(padas)

	if len(candidates) > 0 {
		best := candidates[0]
		if best.Source != domain.CandidateSourceRule || !best.Family.IsValid() {
			return best.Meter
		}
		d := meter.FamilyDeviation(best.Family, counts)
		return meter.ComposeLabel(best.Family, d).String()
	}

	if family, ok := meter.FamilyHeuristic(counts); ok {
		d := meter.FamilyDeviation(family, counts)
		return meter.ComposeLabel(family, d).String()
	}
	return ""
}

func syllableCounts(padas []domain.Pada) []int {
	counts := make([]int, len(padas))
	for i, p := range padas {
		counts[i] = len(p.Aksharas)
	}
	return counts
}

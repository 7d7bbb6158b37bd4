package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chandaslab/chandas-backend/internal/domain"
)

// analysisService defines the minimal interface needed by AnalyzeHandler.
type analysisService interface {
	Analyze(ctx context.Context, input string) (*domain.VerseAnalysis, error)
}

// AnalyzeHandler serves the verse analysis REST endpoint.
type AnalyzeHandler struct {
	svc analysisService
	log *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(svc analysisService, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, log: logger.With("handler", "analyze")}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type verseResponse struct {
	Input      string              `json:"input"`
	Normalized string              `json:"normalized"`
	Padas      []padaResponse      `json:"padas"`
	Candidates []candidateResponse `json:"candidates"`
	BestLabel  string              `json:"bestLabel,omitempty"`
	Vedic      vedicResponse       `json:"vedic"`
	Flags      flagsResponse       `json:"flags"`
	Warnings   []string            `json:"warnings,omitempty"`
}

type padaResponse struct {
	Index    int               `json:"index"`
	Text     string            `json:"text"`
	Words    []wordResponse    `json:"words"`
	Aksharas []aksharaResponse `json:"aksharas"`
	Sandhi   sandhiResponse    `json:"sandhi"`
	Weights  string            `json:"weights"`
	Ganas    string            `json:"ganas"`
}

type wordResponse struct {
	Text  string `json:"text"`
	Fused bool   `json:"fused,omitempty"`
}

type aksharaResponse struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Vowel      string `json:"vowel"`
	Matra      int    `json:"matra"`
	Weight     string `json:"weight"`
	GuruReason string `json:"guruReason,omitempty"`
	Accent     string `json:"accent,omitempty"`
}

type sandhiResponse struct {
	WordFinalVisarga  int `json:"wordFinalVisarga"`
	WordFinalAnusvara int `json:"wordFinalAnusvara"`
	InternalClusters  int `json:"internalClusters"`
}

type candidateResponse struct {
	Meter      string             `json:"meter"`
	Family     string             `json:"family,omitempty"`
	Deviation  int                `json:"deviation"`
	Confidence float64            `json:"confidence"`
	Mismatches []mismatchResponse `json:"mismatches,omitempty"`
	Source     string             `json:"source"`
}

type mismatchResponse struct {
	Pada     int    `json:"pada"`
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Observed string `json:"observed"`
	Waived   bool   `json:"waived,omitempty"`
}

type vedicResponse struct {
	HasPluti      bool `json:"hasPluti"`
	HasStobha     bool `json:"hasStobha"`
	HasVedicSigns bool `json:"hasVedicSigns"`
}

type flagsResponse struct {
	SegmentationUncertain    bool `json:"segmentationUncertain"`
	ClassificationUnresolved bool `json:"classificationUnresolved"`
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toVerseResponse(result))
}

func (h *AnalyzeHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidScript):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toVerseResponse(v *domain.VerseAnalysis) verseResponse {
	resp := verseResponse{
		Input:      v.Input,
		Normalized: v.Normalized,
		Padas:      make([]padaResponse, len(v.Padas)),
		Candidates: make([]candidateResponse, len(v.Candidates)),
		BestLabel:  v.BestLabel,
		Vedic: vedicResponse{
			HasPluti:      v.Vedic.HasPluti,
			HasStobha:     v.Vedic.HasStobha,
			HasVedicSigns: v.Vedic.HasVedicSigns,
		},
		Flags: flagsResponse{
			SegmentationUncertain:    v.Flags.SegmentationUncertain,
			ClassificationUnresolved: v.Flags.ClassificationUnresolved,
		},
		Warnings: v.Warnings,
	}
	for i, p := range v.Padas {
		resp.Padas[i] = toPadaResponse(p, v.Ganas[i])
	}
	for i, c := range v.Candidates {
		resp.Candidates[i] = toCandidateResponse(c)
	}
	return resp
}

func toPadaResponse(p domain.Pada, ganas domain.GanaSequence) padaResponse {
	resp := padaResponse{
		Index:    p.Index,
		Text:     p.Text,
		Words:    make([]wordResponse, len(p.Words)),
		Aksharas: make([]aksharaResponse, len(p.Aksharas)),
		Sandhi: sandhiResponse{
			WordFinalVisarga:  p.Sandhi.WordFinalVisarga,
			WordFinalAnusvara: p.Sandhi.WordFinalAnusvara,
			InternalClusters:  p.Sandhi.InternalClusters,
		},
		Weights: p.LGString(),
		Ganas:   ganas.String(),
	}
	for i, word := range p.Words {
		resp.Words[i] = wordResponse{Text: word.Text, Fused: word.Fused}
	}
	for i, a := range p.Aksharas {
		resp.Aksharas[i] = toAksharaResponse(a)
	}
	return resp
}

func toAksharaResponse(a domain.Akshara) aksharaResponse {
	resp := aksharaResponse{
		Index:  a.Index,
		Text:   a.Text,
		Vowel:  a.Vowel,
		Matra:  a.Matra,
		Weight: a.Weight.String(),
	}
	if a.GuruReason != domain.GuruReasonNone {
		resp.GuruReason = a.GuruReason.String()
	}
	if a.Accent != domain.AccentNone {
		resp.Accent = a.Accent.String()
	}
	return resp
}

func toCandidateResponse(c domain.ClassificationResult) candidateResponse {
	resp := candidateResponse{
		Meter:      c.Meter,
		Family:     c.Family.String(),
		Deviation:  c.Deviation,
		Confidence: c.Confidence,
		Source:     c.Source.String(),
	}
	if len(c.Mismatches) > 0 {
		resp.Mismatches = make([]mismatchResponse, len(c.Mismatches))
		for i, m := range c.Mismatches {
			resp.Mismatches[i] = mismatchResponse{
				Pada:     m.PadaIndex,
				Position: m.Position,
				Expected: m.Expected.String(),
				Observed: m.Observed.String(),
				Waived:   m.Waived,
			}
		}
	}
	return resp
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/testhelper"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
	"github.com/chandaslab/chandas-backend/internal/service/analysis"
	"github.com/chandaslab/chandas-backend/internal/transport/middleware"
	"github.com/chandaslab/chandas-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	rulebook, err := meter.LoadEmbedded()
	require.NoError(t, err)

	// 3. Analysis service backed by the real corpus store. No fallback
	// model: e2e covers rule and corpus classification paths.
	svc := analysis.NewService(logger, rulebook, corpus.New(pool), nil, config.AnalysisConfig{
		ConfidenceThreshold: 0.75,
		MaxInputBytes:       65536,
		MaxPadas:            64,
	})

	// 4. Handlers and middleware chain.
	analyzeHandler := rest.NewAnalyzeHandler(svc, logger)
	healthHandler := rest.NewHealthHandler(pool, "test-version")

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
	)(http.HandlerFunc(analyzeHandler.Analyze))

	// 5. Mux.
	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/analyze", chain)
	mux.Handle("OPTIONS /api/v1/analyze", chain)
	mux.HandleFunc("GET /livez", healthHandler.Live)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// 6. httptest server.
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// analyze posts one verse to the analyze endpoint and returns status and
// decoded body.
func (ts *testServer) analyze(t *testing.T, text string) (int, map[string]any) {
	t.Helper()

	jsonBody, err := json.Marshal(map[string]any{"text": text})
	require.NoError(t, err)

	resp, err := ts.Client.Post(ts.URL+"/api/v1/analyze", "application/json", bytes.NewReader(jsonBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// firstCandidate extracts the top-ranked candidate from a decoded analyze
// response.
func firstCandidate(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	candidates, ok := body["candidates"].([]any)
	require.True(t, ok, "expected candidates array")
	require.NotEmpty(t, candidates)
	first, ok := candidates[0].(map[string]any)
	require.True(t, ok)
	return first
}

package devserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
	"git.home.luguber.info/inful/deckshell/internal/testutil"
)

func newProject(t *testing.T) *config.Config {
	t.Helper()
	cfg := testutil.NewProject(t).WithDeck("---\ntitle: Dev\n---\n\n# One\n").Config()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.Debounce = 20 * time.Millisecond
	return cfg
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDocumentBeforeAnyBuild(t *testing.T) {
	s := New(Options{Config: newProject(t)})

	rec := get(t, s.Handler(), "/", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "no successful build yet")
}

func TestServesDocumentAfterRebuild(t *testing.T) {
	s := New(Options{Config: newProject(t)})
	require.NoError(t, s.Rebuild(context.Background()))
	h := s.Handler()

	rec := get(t, h, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "<title>Dev - Slidev</title>")
	require.Contains(t, rec.Body.String(), `charset="slidev:entry"`)
	require.Contains(t, rec.Body.String(), `src="/@fs/`)

	etag := rec.Header().Get("ETag")
	require.Equal(t, `"`+s.Revision()+`"`, etag)

	notModified := get(t, h, "/index.html", http.Header{"If-None-Match": {etag}})
	require.Equal(t, http.StatusNotModified, notModified.Code)

	missing := get(t, h, "/nope", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestFailedRebuildKeepsLastGoodDocument(t *testing.T) {
	cfg := newProject(t)
	s := New(Options{Config: cfg})
	require.NoError(t, s.Rebuild(context.Background()))
	rev := s.Revision()

	require.NoError(t, os.Remove(filepath.Join(cfg.ClientRoot, "index.html")))
	require.Error(t, s.Rebuild(context.Background()))
	require.Equal(t, rev, s.Revision())

	rec := get(t, s.Handler(), "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<title>Dev - Slidev</title>")

	health := get(t, s.Handler(), "/healthz", nil)
	require.Equal(t, http.StatusOK, health.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &resp))
	require.Equal(t, "degraded", resp.Status)
	require.Contains(t, resp.LastError, "client template not found")
	require.Equal(t, rev, resp.Revision)
}

func TestHealthBeforeAnyBuild(t *testing.T) {
	cfg := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.ClientRoot, "index.html")))
	s := New(Options{Config: cfg})
	require.Error(t, s.Rebuild(context.Background()))

	health := get(t, s.Handler(), "/healthz", nil)
	require.Equal(t, http.StatusServiceUnavailable, health.Code)

	rec := get(t, s.Handler(), "/", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "client template not found")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	s := New(Options{Config: newProject(t), Registry: reg, Recorder: metrics.NewPrometheusRecorder(reg)})
	require.NoError(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `deckshell_dev_regenerations_total{result="success"} 1`)
	require.Contains(t, body, `deckshell_assemble_outcomes_total{mode="dev",outcome="success"} 1`)
}

func TestRunRegeneratesOnChange(t *testing.T) {
	cfg := newProject(t)
	s := New(Options{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			t.Error("dev server did not stop")
		}
	})

	require.Eventually(t, func() bool { return s.Addr() != nil }, 5*time.Second, 10*time.Millisecond)
	first := s.Revision()
	require.NotEmpty(t, first)

	testutil.WriteFile(t, cfg.Deck, "---\ntitle: Changed\n---\n")
	require.Eventually(t, func() bool { return s.Revision() != first }, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + s.Addr().String() + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "<title>Changed - Slidev</title>")
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveAssembleDuration("dev", 2*time.Millisecond)
	pr.IncAssembleOutcome("dev", OutcomeSuccess)
	pr.IncRootFragment(FragmentMerged)
	pr.IncRootFragment(FragmentRejected)
	pr.IncRootFragment(FragmentRejected)
	pr.IncRegeneration(false)

	if got := testutil.ToFloat64(pr.rootFragments.WithLabelValues("rejected")); got != 2 {
		t.Fatalf("expected 2 rejected fragments, got %v", got)
	}
	if got := testutil.ToFloat64(pr.regenerations.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed regeneration, got %v", got)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(mfs))
	}
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveAssembleDuration("build", time.Second)
	pr.IncAssembleOutcome("build", OutcomeFailed)
	pr.IncRootFragment(FragmentMissing)
	pr.IncRegeneration(true)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncAssembleOutcome("build", OutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deckshell_assemble_outcomes_total") {
		t.Fatalf("expected assemble outcomes in scrape output")
	}
}

package shell

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/deckshell/internal/metrics"
)

// captureRenderer returns the template unchanged and keeps what it was given.
type captureRenderer struct {
	calls int
	head  HeadDescription
	doc   string
	err   error
}

func (r *captureRenderer) Render(_ context.Context, head HeadDescription, template string) (string, error) {
	r.calls++
	r.head = head
	r.doc = template
	if r.err != nil {
		return "", r.err
	}
	return template, nil
}

type countingRecorder struct {
	mu        sync.Mutex
	fragments map[metrics.FragmentResult]int
	outcomes  map[metrics.OutcomeLabel]int
	durations int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		fragments: map[metrics.FragmentResult]int{},
		outcomes:  map[metrics.OutcomeLabel]int{},
	}
}

func (r *countingRecorder) ObserveAssembleDuration(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *countingRecorder) IncAssembleOutcome(_ string, o metrics.OutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[o]++
}

func (r *countingRecorder) IncRootFragment(f metrics.FragmentResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragments[f]++
}

func (r *countingRecorder) IncRegeneration(bool) {}

func writeIndex(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(content), 0o600))
}

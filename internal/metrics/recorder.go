package metrics

import "time"

// FragmentResult enumerates what happened to one override root's index.html.
type FragmentResult string

const (
	FragmentMerged   FragmentResult = "merged"
	FragmentMissing  FragmentResult = "missing"
	FragmentRejected FragmentResult = "rejected"
)

// OutcomeLabel enumerates shell generation outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for shell generation.
type Recorder interface {
	ObserveAssembleDuration(mode string, d time.Duration)
	IncAssembleOutcome(mode string, outcome OutcomeLabel)
	IncRootFragment(result FragmentResult)
	IncRegeneration(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveAssembleDuration(string, time.Duration) {}
func (NoopRecorder) IncAssembleOutcome(string, OutcomeLabel)       {}
func (NoopRecorder) IncRootFragment(FragmentResult)                {}
func (NoopRecorder) IncRegeneration(bool)                          {}

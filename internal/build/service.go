package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/deckshell/internal/config"
)

// Service is the canonical interface for producing the document shell.
type Service interface {
	// Run executes one generation: load deck → resolve deck config → assemble → (write).
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs of one generation.
type Request struct {
	// Config is the loaded configuration.
	Config *config.Config

	// Mode overrides Config.Mode when set.
	Mode config.Mode

	// Write stores the document as <output>/index.html.
	Write bool
}

// Result is the outcome of one generation.
type Result struct {
	Status Status

	// HTML is the assembled document.
	HTML string

	// OutputPath is the written file, empty when nothing was written.
	OutputPath string

	Mode      config.Mode
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status represents the outcome of a generation.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the generation produced a document.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

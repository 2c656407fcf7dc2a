package build

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/deckshell/internal/config"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/headmatter"
	"git.home.luguber.info/inful/deckshell/internal/headrender"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
	"git.home.luguber.info/inful/deckshell/internal/observability"
	"git.home.luguber.info/inful/deckshell/internal/shell"
)

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	renderer shell.HeadRenderer
	resolver shell.PathResolver
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewService creates a DefaultService rendering with headrender and recording nothing.
func NewService() *DefaultService {
	return &DefaultService{
		renderer: headrender.New(),
		resolver: shell.AtFSResolver{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithRenderer replaces the head renderer (for testing).
func (s *DefaultService) WithRenderer(r shell.HeadRenderer) *DefaultService {
	if r != nil {
		s.renderer = r
	}
	return s
}

// WithLogger sets the logger.
func (s *DefaultService) WithLogger(l *slog.Logger) *DefaultService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes one generation.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{StartTime: start}
	finish := func(status Status) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
	}

	if req.Config == nil {
		finish(StatusFailed)
		return result, ferrors.ConfigError("config required").Build()
	}
	cfg := req.Config
	mode := req.Mode
	if mode == "" {
		mode = cfg.Mode
	}
	result.Mode = mode
	ctx = observability.WithMode(observability.WithRunID(ctx, uuid.NewString()), mode.String())

	if err := ctx.Err(); err != nil {
		finish(StatusCancelled)
		return result, err
	}

	deck, err := s.loadDeck(observability.WithStage(ctx, "deck"), cfg.Deck)
	if err != nil {
		finish(StatusFailed)
		return result, err
	}

	ctx = observability.WithStage(ctx, "assemble")
	html, err := shell.SetupIndexHTML(ctx, shell.Options{
		ClientRoot: cfg.ClientRoot,
		Roots:      cfg.Roots,
		UserRoot:   cfg.UserRoot,
		Entry:      cfg.Entry,
		Deck:       deck,
		DeckConfig: config.ResolveDeck(deck, cfg.Base, mode),
		Resolver:   s.resolver,
		Renderer:   s.renderer,
		Logger:     observability.Logger(ctx, s.logger),
		Recorder:   s.recorder,
	})
	if err != nil {
		if ctx.Err() != nil {
			finish(StatusCancelled)
		} else {
			finish(StatusFailed)
		}
		return result, err
	}
	result.HTML = html

	if req.Write {
		path, werr := writeOutput(cfg.Output.Directory, html)
		if werr != nil {
			finish(StatusFailed)
			return result, werr
		}
		result.OutputPath = path
		observability.Logger(observability.WithStage(ctx, "write"), s.logger).
			Info("Wrote index.html", logfields.Path(path))
	}

	finish(StatusSuccess)
	return result, nil
}

// loadDeck parses the deck file. A deck that does not exist yet yields nil so the shell
// can still be served with defaults while the user creates it.
func (s *DefaultService) loadDeck(ctx context.Context, path string) (*headmatter.Deck, error) {
	if path == "" {
		return nil, nil
	}
	deck, err := headmatter.Load(path)
	if err == nil {
		return deck, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		observability.Logger(ctx, s.logger).Warn("Deck file not found; using defaults", logfields.Path(path))
		return nil, nil
	}
	return nil, err
}

func writeOutput(dir, html string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", dir).
			Build()
	}
	path := filepath.Join(dir, shell.IndexFile)
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write index.html").
			WithContext("path", path).
			Build()
	}
	return path, nil
}

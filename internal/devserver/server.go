// Package devserver serves the generated document shell in dev mode and regenerates it
// when its inputs change on disk.
package devserver

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/deckshell/internal/build"
	"git.home.luguber.info/inful/deckshell/internal/config"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
	"git.home.luguber.info/inful/deckshell/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Config  *config.Config
	Service build.Service
	// Registry, when set, is exposed at Config.Server.MetricsPath.
	Registry *prom.Registry
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Server holds the current document and serves it over HTTP.
type Server struct {
	cfg          *config.Config
	service      build.Service
	registry     *prom.Registry
	recorder     metrics.Recorder
	logger       *slog.Logger
	errorAdapter *ferrors.HTTPErrorAdapter
	status       buildStatus
	startTime    time.Time

	mu   sync.Mutex
	addr net.Addr
}

// New creates a Server. Service defaults to build.NewService.
func New(opts Options) *Server {
	s := &Server{
		cfg:       opts.Config,
		service:   opts.Service,
		registry:  opts.Registry,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		startTime: time.Now(),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.recorder == nil {
		s.recorder = metrics.NoopRecorder{}
	}
	if s.service == nil {
		s.service = build.NewService().WithRecorder(s.recorder).WithLogger(s.logger)
	}
	s.errorAdapter = ferrors.NewHTTPErrorAdapter(s.logger)
	return s
}

// Rebuild regenerates the document in dev mode. On failure the previous document stays
// current and the error is kept for display.
func (s *Server) Rebuild(ctx context.Context) error {
	res, err := s.service.Run(ctx, build.Request{Config: s.cfg, Mode: config.ModeDev})
	if err != nil {
		s.status.setError(err)
		s.recorder.IncRegeneration(false)
		return err
	}
	rev := s.status.setSuccess(res.HTML)
	s.recorder.IncRegeneration(true)
	s.logger.Info("Shell regenerated",
		logfields.Revision(rev),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return nil
}

// Revision identifies the document currently served, "" before the first good build.
func (s *Server) Revision() string {
	return s.status.get().Revision
}

// Addr is the bound listen address once Run is serving, nil before.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler returns the HTTP routes of the dev server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.registry != nil && s.cfg.Server.MetricsPath != "" {
		mux.Handle(s.cfg.Server.MetricsPath, metrics.HTTPHandler(s.registry))
	}
	mux.HandleFunc("/", s.handleDocument)
	return mux
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		s.errorAdapter.WriteErrorResponse(w, r,
			ferrors.NewError(ferrors.CategoryNotFound, "not found").WithContext("path", r.URL.Path).Build())
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.status.get()
	if !snap.HasGoodBuild {
		err := snap.LastError
		if err == nil {
			err = stdErrors.New("shell not generated yet")
		}
		s.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryServer, "no successful build yet").Build())
		return
	}

	etag := `"` + snap.Revision + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(snap.HTML))
}

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Revision  string    `json:"revision,omitempty"`
	BuiltAt   time.Time `json:"built_at,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.status.get()
	resp := HealthResponse{
		Status:   "healthy",
		Version:  version.Version,
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Revision: snap.Revision,
		BuiltAt:  snap.BuiltAt,
	}
	code := http.StatusOK
	if snap.LastError != nil {
		resp.LastError = snap.LastError.Error()
		resp.Status = "degraded"
	}
	if !snap.HasGoodBuild {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// Run performs the initial build, serves HTTP on Config.Server.Addr and regenerates on
// change until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.Rebuild(ctx); err != nil {
		s.logger.Error("initial build failed", logfields.Error(err))
	}

	targets := watchTargets(s.cfg)
	watcher, err := setupFileWatcher(targets, s.logger)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServer, "start file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServer, "listen").
			Fatal().
			WithContext("addr", s.cfg.Server.Addr).
			Build()
	}
	httpServer := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	s.logger.Info("Dev server listening", logfields.Addr(fmt.Sprintf("http://%s", ln.Addr())))

	rebuildReq, trigger := setupRebuildDebouncer(s.cfg.Server.Debounce)
	s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case err := <-serveErr:
			return ferrors.WrapError(err, ferrors.CategoryServer, "serve").Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(httpServer)
			}
			if isRelevantEvent(ev, targets) {
				s.logger.Debug("File change detected", logfields.Path(ev.Name), "op", ev.Op.String())
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(httpServer)
			}
			s.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// startRebuildWorker processes rebuild requests one at a time; a request arriving during
// a rebuild is coalesced into a single follow-up rebuild.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				s.logger.Info("Change detected; regenerating shell")
				if err := s.Rebuild(ctx); err != nil {
					s.logger.Warn("rebuild failed", logfields.Error(err))
				}
			}
		}
	}()
}

func (s *Server) shutdown(httpServer *http.Server) error {
	s.logger.Info("Shutting down dev server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

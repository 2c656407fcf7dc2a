package commands

import (
	"context"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/devserver"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
)

// DevCmd implements the 'dev' command.
type DevCmd struct {
	Addr      string `help:"Listen address (overrides server.addr)"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose Prometheus metrics."`
}

func (d *DevCmd) Run(root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()
	return d.run(ctx, root)
}

func (d *DevCmd) run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root.Config, config.ModeDev)
	if err != nil {
		return err
	}
	if d.Addr != "" {
		cfg.Server.Addr = d.Addr
	}
	return devserver.New(d.serverOptions(cfg)).Run(ctx)
}

func (d *DevCmd) serverOptions(cfg *config.Config) devserver.Options {
	opts := devserver.Options{Config: cfg, Logger: slog.Default()}
	if d.NoMetrics {
		return opts
	}
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts.Registry = reg
	opts.Recorder = metrics.NewPrometheusRecorder(reg)
	return opts
}

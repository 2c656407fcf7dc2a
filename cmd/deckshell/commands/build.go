package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/deckshell/internal/build"
	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	Base   string `help:"Public base path (overrides base)"`

	stdout io.Writer `kong:"-"`
}

func (b *BuildCmd) Run(root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()
	return b.run(ctx, root)
}

func (b *BuildCmd) run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root.Config, config.ModeBuild)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = absPath(b.Output)
	}
	if b.Base != "" {
		cfg.Base = config.NormalizeBase(b.Base)
	}

	res, err := build.NewService().WithLogger(slog.Default()).Run(ctx, build.Request{Config: cfg, Write: true})
	if err != nil {
		return err
	}
	slog.Debug("Build finished", logfields.Mode(res.Mode.String()),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))

	out := b.stdout
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintln(out, res.OutputPath)
	return nil
}

package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/deckshell/cmd/deckshell/commands"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("deckshell"),
		kong.Description("Compose the index.html shell of a slide deck."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(&cli),
	)
	if err := kctx.Run(); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

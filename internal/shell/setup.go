package shell

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/fonts"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/headmatter"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
	"git.home.luguber.info/inful/deckshell/internal/version"
)

// TweetScript is appended to the body when the deck embeds tweets.
const TweetScript = `<script async src="https://platform.twitter.com/widgets.js"></script>`

// TitleFunc computes the document title from the deck.
type TitleFunc func(*headmatter.Deck) string

// Options configures one SetupIndexHTML run.
type Options struct {
	// ClientRoot holds the required base template (index.html).
	ClientRoot string
	// Roots are the override roots in precedence order.
	Roots    []string
	UserRoot string
	// Entry is the client entry module substituted for __ENTRY__.
	Entry string
	Deck  *headmatter.Deck
	// DeckConfig carries features, fonts, favicon, base and mode.
	DeckConfig config.DeckConfig
	// Version defaults to version.Version.
	Version string

	Title    TitleFunc
	Resolver PathResolver
	Renderer HeadRenderer
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// SetupIndexHTML reads the client template, merges the override roots' fragments,
// builds the head description and returns the assembled document. A missing client
// template is a fatal configuration error; everything else degrades silently or with a
// warning.
func SetupIndexHTML(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	mode := opts.DeckConfig.Mode.String()
	start := time.Now()

	html, err := setupIndexHTML(ctx, opts)

	elapsed := time.Since(start)
	opts.Recorder.ObserveAssembleDuration(mode, elapsed)
	if err != nil {
		opts.Recorder.IncAssembleOutcome(mode, metrics.OutcomeFailed)
		return "", err
	}
	opts.Recorder.IncAssembleOutcome(mode, metrics.OutcomeSuccess)
	opts.Logger.Debug("Assembled index.html",
		logfields.Mode(mode),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return html, nil
}

func setupIndexHTML(ctx context.Context, opts Options) (string, error) {
	template, err := readTemplate(opts.ClientRoot)
	if err != nil {
		return "", err
	}

	merger := &Merger{Logger: opts.Logger, Recorder: opts.Recorder}
	head, body, err := merger.Merge(opts.Roots, opts.UserRoot)
	if err != nil {
		return "", err
	}
	if opts.DeckConfig.Features.Tweet {
		body += "\n" + TweetScript
	}

	var hm headmatter.Headmatter
	var deckPath string
	if opts.Deck != nil {
		hm = opts.Deck.Headmatter
		deckPath = opts.Deck.Path
	}

	desc := BuildHeadDescription(HeadInput{
		Deck:       opts.DeckConfig,
		Headmatter: hm,
		Title:      opts.Title(opts.Deck),
		Entry:      deckPath,
		Version:    opts.Version,
		FontLink:   fonts.ResolveLink(opts.DeckConfig.Fonts),
	})

	assembler := &Assembler{Resolver: opts.Resolver, Renderer: opts.Renderer}
	return assembler.Assemble(ctx, AssembleInput{
		Template:    template,
		Head:        head,
		Body:        body,
		Description: desc,
		Entry:       opts.Entry,
		Mode:        opts.DeckConfig.Mode,
		Base:        opts.DeckConfig.Base,
	})
}

func readTemplate(clientRoot string) (string, error) {
	path := filepath.Join(clientRoot, IndexFile)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ferrors.ConfigError("client template not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "read client template").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return string(content), nil
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	if o.Title == nil {
		o.Title = headmatter.DeckTitle
	}
	if o.Resolver == nil {
		o.Resolver = AtFSResolver{}
	}
	if o.Version == "" {
		o.Version = version.Version
	}
	if o.Entry == "" {
		o.Entry = filepath.Join(o.ClientRoot, "main.ts")
	}
	return o
}

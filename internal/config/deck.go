package config

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/deckshell/internal/fonts"
	"git.home.luguber.info/inful/deckshell/internal/foundation"
	"git.home.luguber.info/inful/deckshell/internal/headmatter"
)

// DefaultFavicon is used when the deck does not configure one.
const DefaultFavicon = "https://cdn.jsdelivr.net/gh/slidevjs/slidev/assets/favicon.png"

// DeckConfig is the per-deck configuration the shell pipeline consumes.
type DeckConfig struct {
	Features headmatter.Features
	Fonts    fonts.Options
	Favicon  string
	Base     string
	Mode     Mode
}

// providerNormalizer maps provider spellings onto the fonts constants. An unknown
// provider disables web font links.
var providerNormalizer = foundation.NewNormalizer(map[string]string{
	fonts.ProviderGoogle:   fonts.ProviderGoogle,
	fonts.ProviderCoollabs: fonts.ProviderCoollabs,
	fonts.ProviderNone:     fonts.ProviderNone,
}, fonts.ProviderNone)

// ResolveDeck derives the deck configuration from the parsed deck and the run settings.
func ResolveDeck(deck *headmatter.Deck, base string, mode Mode) DeckConfig {
	dc := DeckConfig{
		Favicon: DefaultFavicon,
		Base:    base,
		Mode:    mode,
		Fonts:   fonts.Options{Provider: fonts.ProviderGoogle},
	}
	if deck == nil {
		return dc
	}

	hm := deck.Headmatter
	dc.Features = deck.Features
	if hm.Favicon != "" {
		dc.Favicon = hm.Favicon
	}
	if hm.Fonts != nil {
		dc.Fonts = resolveFonts(hm.Fonts)
	}
	return dc
}

// resolveFonts collects web fonts from the sans, serif and mono families, skipping the
// ones declared local and duplicates.
func resolveFonts(f *headmatter.Fonts) fonts.Options {
	opts := fonts.Options{
		Provider: fonts.ProviderGoogle,
		Weights:  []string(f.Weights),
		Italic:   f.Italic,
	}
	if strings.TrimSpace(f.Provider) != "" {
		opts.Provider = providerNormalizer.Normalize(f.Provider)
	}
	for _, family := range [][]string{f.Sans, f.Serif, f.Mono} {
		for _, name := range family {
			if slices.Contains(f.Local, name) || slices.Contains(opts.WebFonts, name) {
				continue
			}
			opts.WebFonts = append(opts.WebFonts, name)
		}
	}
	return opts
}

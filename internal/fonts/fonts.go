// Package fonts turns the deck's web font configuration into a stylesheet link.
package fonts

import (
	"sort"
	"strings"
)

// Known providers. Any other value disables web font links.
const (
	ProviderGoogle   = "google"
	ProviderCoollabs = "coollabs"
	ProviderNone     = "none"
)

const (
	googleCSSEndpoint   = "https://fonts.googleapis.com/css2"
	coollabsCSSEndpoint = "https://api.fonts.coollabs.io/css2"
)

// DefaultWeights are requested when the deck does not list any.
var DefaultWeights = []string{"200", "400", "600"}

// Options is the resolved font configuration of a deck.
type Options struct {
	Provider string   `yaml:"provider"`
	WebFonts []string `yaml:"webfonts"`
	Weights  []string `yaml:"weights"`
	Italic   bool     `yaml:"italic"`
}

// Link describes one external stylesheet link.
type Link struct {
	Rel  string
	Href string
	Type string
}

// ResolveLink returns the stylesheet link for opts, or nil when no web fonts are
// requested or the provider is not one this package knows how to address.
func ResolveLink(opts Options) *Link {
	if len(opts.WebFonts) == 0 {
		return nil
	}
	var href string
	switch opts.Provider {
	case ProviderGoogle:
		href = GoogleURL(opts)
	case ProviderCoollabs:
		href = CoollabsURL(opts)
	default:
		return nil
	}
	return &Link{Rel: "stylesheet", Href: href, Type: "text/css"}
}

// GoogleURL builds a Google Fonts css2 URL for opts.
func GoogleURL(opts Options) string {
	return cssURL(googleCSSEndpoint, opts)
}

// CoollabsURL builds a CoolLabs Fonts css2 URL for opts. The API mirrors Google's.
func CoollabsURL(opts Options) string {
	return cssURL(coollabsCSSEndpoint, opts)
}

func cssURL(endpoint string, opts Options) string {
	axis := "wght@"
	if opts.Italic {
		axis = "ital,wght@"
	}
	weights := weightAxis(opts)

	families := make([]string, 0, len(opts.WebFonts))
	for _, name := range opts.WebFonts {
		families = append(families, "family="+familyParam(name)+":"+axis+weights)
	}
	return endpoint + "?" + strings.Join(families, "&") + "&display=swap"
}

func weightAxis(opts Options) string {
	weights := opts.Weights
	if len(weights) == 0 {
		weights = DefaultWeights
	}
	values := make([]string, 0, len(weights)*2)
	for _, w := range weights {
		w = strings.TrimSpace(w)
		if opts.Italic {
			values = append(values, "0,"+w, "1,"+w)
		} else {
			values = append(values, w)
		}
	}
	sort.Strings(values)
	return strings.Join(values, ";")
}

// familyParam strips one pair of wrapping quotes and joins words with '+'.
func familyParam(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '"' || first == '\'') && first == last {
			name = name[1 : len(name)-1]
		}
	}
	return strings.Join(strings.Fields(name), "+")
}

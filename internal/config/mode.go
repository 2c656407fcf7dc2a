package config

import (
	"strings"

	"git.home.luguber.info/inful/deckshell/internal/foundation"
)

// Mode selects how the document shell is produced.
type Mode string

const (
	// ModeDev serves the shell from the dev server; the entry is resolved through the
	// served base path and the entry meta tag is emitted.
	ModeDev Mode = "dev"
	// ModeBuild writes a static shell for production bundling.
	ModeBuild Mode = "build"
)

var modeNormalizer = foundation.NewNormalizer(map[string]Mode{
	string(ModeDev):   ModeDev,
	string(ModeBuild): ModeBuild,
}, "")

// NormalizeMode returns the canonical Mode for s, or "" when s is not a known mode.
func NormalizeMode(s string) Mode {
	return modeNormalizer.Normalize(s)
}

// ValidModes lists the accepted mode names.
func ValidModes() string {
	return strings.Join(modeNormalizer.ValidKeys(), ", ")
}

func (m Mode) IsDev() bool { return m == ModeDev }

func (m Mode) String() string { return string(m) }

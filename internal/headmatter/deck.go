package headmatter

import (
	"bytes"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/deckshell/internal/foundation/errors"
)

// Deck is the parsed slides file: its headmatter, the raw slide bodies and the
// features detected in them.
type Deck struct {
	Path       string
	Headmatter Headmatter
	Slides     []string
	Features   Features
}

// Features records client capabilities the deck content relies on.
type Features struct {
	Tweet bool
}

var tweetComponent = regexp.MustCompile(`<Tweet\b`)

// Load reads and parses the slides file at path.
func Load(path string) (*Deck, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read deck").
			OnChange().
			WithContext("path", path).
			Build()
	}
	deck, err := Parse(content)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	deck.Path = path
	return deck, nil
}

// Parse parses slides file content.
func Parse(content []byte) (*Deck, error) {
	front, body, had, err := split(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryHeadmatter, "split headmatter").OnChange().Build()
	}

	deck := &Deck{}
	if had && len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &deck.Headmatter); err != nil {
			return nil, errors.WrapError(err, errors.CategoryHeadmatter, "decode headmatter").OnChange().Build()
		}
	}

	for _, s := range splitSlides(body) {
		deck.Slides = append(deck.Slides, string(s))
	}
	deck.Features.Tweet = tweetComponent.Match(body)
	return deck, nil
}

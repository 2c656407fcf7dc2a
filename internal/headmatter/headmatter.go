// Package headmatter models the per-deck metadata block at the top of a slides file and
// derives the values the document shell needs from it (title, fonts, features).
package headmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Headmatter is the deck-level metadata block. Every field is optional; the zero value
// means "not set".
type Headmatter struct {
	Title         string   `yaml:"title"`
	TitleTemplate string   `yaml:"titleTemplate"`
	Info          Text     `yaml:"info"`
	Author        Text     `yaml:"author"`
	Keywords      Keywords `yaml:"keywords"`
	Lang          string   `yaml:"lang"`
	Favicon       string   `yaml:"favicon"`
	Fonts         *Fonts   `yaml:"fonts"`
	SeoMeta       *SeoMeta `yaml:"seoMeta"`
}

// SeoMeta holds explicit Open Graph and Twitter card values.
type SeoMeta struct {
	OgTitle            string `yaml:"ogTitle"`
	OgDescription      string `yaml:"ogDescription"`
	OgImage            string `yaml:"ogImage"`
	OgURL              string `yaml:"ogUrl"`
	TwitterCard        string `yaml:"twitterCard"`
	TwitterSite        string `yaml:"twitterSite"`
	TwitterTitle       string `yaml:"twitterTitle"`
	TwitterDescription string `yaml:"twitterDescription"`
	TwitterImage       string `yaml:"twitterImage"`
	TwitterURL         string `yaml:"twitterUrl"`
}

// Fonts is the headmatter font block.
type Fonts struct {
	Sans     List   `yaml:"sans"`
	Serif    List   `yaml:"serif"`
	Mono     List   `yaml:"mono"`
	Local    List   `yaml:"local"`
	Provider string `yaml:"provider"`
	Weights  List   `yaml:"weights"`
	Italic   bool   `yaml:"italic"`
}

// Text is a free-text scalar. YAML `false` and `null` decode to the empty value, any
// other scalar keeps its literal text. A sequence is joined with "," the way a list
// is stringified in the browser; mappings are rejected.
type Text string

func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
	case yaml.SequenceNode:
		joined, err := joinSequence(node)
		if err != nil {
			return err
		}
		*t = Text(joined)
		return nil
	default:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	switch {
	case node.Tag == "!!null":
		*t = ""
	case node.Tag == "!!bool" && strings.EqualFold(node.Value, "false"):
		*t = ""
	default:
		*t = Text(node.Value)
	}
	return nil
}

func joinSequence(node *yaml.Node) (string, error) {
	parts := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		switch {
		case item.Kind == yaml.SequenceNode:
			nested, err := joinSequence(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, nested)
		case item.Kind != yaml.ScalarNode:
			return "", fmt.Errorf("line %d: cannot use a mapping as text", item.Line)
		case item.Tag == "!!null":
			parts = append(parts, "")
		default:
			parts = append(parts, item.Value)
		}
	}
	return strings.Join(parts, ","), nil
}

// Keywords accepts either a single string or a list of strings.
type Keywords []string

func (k *Keywords) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*k = items
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			*k = nil
			return nil
		}
		*k = Keywords{node.Value}
	default:
		var items []string
		return node.Decode(&items)
	}
	return nil
}

// String joins the keywords with ", ". A keyword string given as a scalar is returned as-is.
func (k Keywords) String() string {
	return strings.Join(k, ", ")
}

// List accepts a comma separated scalar or a sequence of scalars.
type List []string

func (l *List) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			raw = append(raw, item.Value)
		}
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		raw = strings.Split(node.Value, ",")
	default:
		var items []string
		return node.Decode(&items)
	}
	out := make(List, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}

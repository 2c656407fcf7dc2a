package headmatter

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	defaultTitle         = "Slidev"
	defaultTitleTemplate = "%s - Slidev"
)

// DeckTitle computes the document title: the headmatter title, else the first heading of
// the first slide, else "Slidev", formatted through the title template.
func DeckTitle(d *Deck) string {
	if d == nil {
		return defaultTitle
	}
	title := strings.TrimSpace(d.Headmatter.Title)
	if title == "" && len(d.Slides) > 0 {
		title = FirstHeading([]byte(d.Slides[0]))
	}
	if title == "" {
		title = defaultTitle
	}

	tmpl := d.Headmatter.TitleTemplate
	if tmpl == "" {
		tmpl = defaultTitleTemplate
	}
	return strings.Replace(tmpl, "%s", title, 1)
}

// FirstHeading returns the plain text of the first heading in a markdown body, with
// inline markup stripped. It returns "" when the body has no heading.
func FirstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		title = strings.TrimSpace(plainText(h, body))
		return gmast.WalkStop, nil
	})
	return title
}

func plainText(n gmast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}

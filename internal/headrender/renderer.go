// Package headrender serializes a shell.HeadDescription into an HTML document. Tags are
// built and escaped with golang.org/x/net/html; the document itself is patched in place
// so the rest of the template is left byte for byte as assembled.
package headrender

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/shell"
)

var (
	htmlOpen  = regexp.MustCompile(`(?i)<html(\s[^>]*)?>`)
	headOpen  = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	headClose = regexp.MustCompile(`(?i)</head\s*>|<body[\s>]`)
	titleElem = regexp.MustCompile(`(?is)<title(\s[^>]*)?>.*?</title>`)
)

// Renderer implements shell.HeadRenderer.
type Renderer struct{}

var _ shell.HeadRenderer = (*Renderer)(nil)

// New returns a Renderer.
func New() *Renderer { return &Renderer{} }

// Render sets the document language, sets or inserts the title and inserts the link
// and meta tags right after the opening <head> tag. Metas with no content and links
// with no href are skipped.
func (r *Renderer) Render(ctx context.Context, head shell.HeadDescription, doc string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := setLang(doc, head.Lang)
	if err != nil {
		return "", err
	}

	var charset, rest []*html.Node
	for _, m := range head.Meta {
		if m.Content == nil {
			continue
		}
		n := metaNode(m)
		if m.Attr == shell.MetaCharset {
			charset = append(charset, n)
		} else {
			rest = append(rest, n)
		}
	}

	nodes := charset
	if head.Title != "" {
		title := titleNode(head.Title)
		if loc := headTitle(doc); loc != nil {
			rendered, rerr := renderNodes([]*html.Node{title})
			if rerr != nil {
				return "", rerr
			}
			doc = doc[:loc[0]] + rendered + doc[loc[1]:]
		} else {
			nodes = append(nodes, title)
		}
	}
	for _, l := range head.Links {
		if l.Href == "" {
			continue
		}
		nodes = append(nodes, linkNode(l))
	}
	nodes = append(nodes, rest...)

	tags, err := renderNodes(nodes)
	if err != nil {
		return "", err
	}
	if tags == "" {
		return doc, nil
	}
	return insertIntoHead(doc, tags), nil
}

// headTitle locates the first <title> element inside the head. Titles in the body,
// such as inline SVG titles, are not matched.
func headTitle(doc string) []int {
	open := headOpen.FindStringIndex(doc)
	if open == nil {
		return nil
	}
	end := len(doc)
	if loc := headClose.FindStringIndex(doc[open[1]:]); loc != nil {
		end = open[1] + loc[0]
	}
	loc := titleElem.FindStringIndex(doc[open[1]:end])
	if loc == nil {
		return nil
	}
	return []int{open[1] + loc[0], open[1] + loc[1]}
}

func insertIntoHead(doc, tags string) string {
	if loc := headOpen.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n" + tags + doc[loc[1]:]
	}
	block := "<head>\n" + tags + "\n</head>"
	if loc := htmlOpen.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n" + block + doc[loc[1]:]
	}
	return block + "\n" + doc
}

// setLang rewrites the opening <html> tag with lang set, keeping its other attributes.
func setLang(doc, lang string) (string, error) {
	if lang == "" {
		return doc, nil
	}
	loc := htmlOpen.FindStringIndex(doc)
	if loc == nil {
		return doc, nil
	}

	z := html.NewTokenizer(strings.NewReader(doc[loc[0]:loc[1]]))
	if z.Next() != html.StartTagToken {
		return "", ferrors.RenderError("malformed <html> tag").Build()
	}
	tok := z.Token()
	replaced := false
	for i := range tok.Attr {
		if tok.Attr[i].Key == "lang" {
			tok.Attr[i].Val = lang
			replaced = true
		}
	}
	if !replaced {
		tok.Attr = append(tok.Attr, html.Attribute{Key: "lang", Val: lang})
	}
	return doc[:loc[0]] + tok.String() + doc[loc[1]:], nil
}

func metaNode(m shell.Meta) *html.Node {
	var attrs []html.Attribute
	if m.Attr == shell.MetaCharset {
		// Keyed metas without a name/property use charset as the key attribute.
		attrs = []html.Attribute{{Key: "charset", Val: m.Key}, {Key: "content", Val: *m.Content}}
	} else {
		attrs = []html.Attribute{{Key: string(m.Attr), Val: m.Key}, {Key: "content", Val: *m.Content}}
	}
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Meta, Data: "meta", Attr: attrs}
}

func linkNode(l shell.Link) *html.Node {
	attrs := []html.Attribute{{Key: "rel", Val: l.Rel}, {Key: "href", Val: l.Href}}
	if l.Type != "" {
		attrs = append(attrs, html.Attribute{Key: "type", Val: l.Type})
	}
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Link, Data: "link", Attr: attrs}
}

func titleNode(title string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	return n
}

func renderNodes(nodes []*html.Node) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			return "", ferrors.WrapError(err, ferrors.CategoryRender, "serialize head tag").Build()
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n"), nil
}

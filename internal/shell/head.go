package shell

import (
	"log/slog"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/fonts"
	"git.home.luguber.info/inful/deckshell/internal/headmatter"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
)

const defaultLang = "en"

// MetaAttr is the attribute that keys a meta tag.
type MetaAttr string

const (
	MetaName     MetaAttr = "name"
	MetaProperty MetaAttr = "property"
	MetaCharset  MetaAttr = "charset"
)

// Meta is one <meta> tag. A nil Content drops the tag at render time.
type Meta struct {
	Attr    MetaAttr
	Key     string
	Content *string
}

// Link is one <link> tag.
type Link struct {
	Rel  string
	Href string
	Type string
}

// HeadDescription is the structured content of the document head before serialization.
type HeadDescription struct {
	Lang  string
	Title string
	Links []Link
	Meta  []Meta
}

// Lookup returns the content of the meta tag keyed by key, if present and non-nil.
func (h HeadDescription) Lookup(key string) (string, bool) {
	for _, m := range h.Meta {
		if m.Key == key && m.Content != nil {
			return *m.Content, true
		}
	}
	return "", false
}

// HeadInput carries everything BuildHeadDescription needs.
type HeadInput struct {
	Deck       config.DeckConfig
	Headmatter headmatter.Headmatter
	// Title is the computed deck title.
	Title string
	// Entry is the deck entry file, published in dev mode.
	Entry   string
	Version string
	// FontLink is the font link resolver's output, nil for none.
	FontLink *fonts.Link
}

// BuildHeadDescription assembles the head description. Every optional input that is
// absent suppresses its tag; nothing here can fail.
func BuildHeadDescription(in HeadInput) HeadDescription {
	hm := in.Headmatter
	seo := headmatter.SeoMeta{}
	if hm.SeoMeta != nil {
		seo = *hm.SeoMeta
	}

	var description *string
	if hm.Info != "" {
		description = optional(ToAttrValue(string(hm.Info)))
	}
	var author *string
	if hm.Author != "" {
		author = optional(ToAttrValue(string(hm.Author)))
	}
	var keywords *string
	if len(hm.Keywords) > 0 {
		keywords = optional(ToAttrValue(hm.Keywords.String()))
	}

	var entry *string
	if in.Deck.Mode.IsDev() {
		entry = optional(Slash(in.Entry))
	}

	links := []Link{{Rel: "icon", Href: in.Deck.Favicon}}
	if in.FontLink != nil {
		links = append(links, Link{Rel: in.FontLink.Rel, Href: in.FontLink.Href, Type: in.FontLink.Type})
	}

	return HeadDescription{
		Lang:  resolveLang(hm.Lang),
		Title: in.Title,
		Links: links,
		Meta: []Meta{
			{Attr: MetaProperty, Key: "slidev:version", Content: &in.Version},
			{Attr: MetaCharset, Key: "slidev:entry", Content: entry},
			{Attr: MetaName, Key: "description", Content: description},
			{Attr: MetaName, Key: "author", Content: author},
			{Attr: MetaName, Key: "keywords", Content: keywords},
			{Attr: MetaProperty, Key: "og:title", Content: firstOf(optional(seo.OgTitle), optional(in.Title))},
			{Attr: MetaProperty, Key: "og:description", Content: firstOf(optional(seo.OgDescription), description)},
			{Attr: MetaProperty, Key: "og:image", Content: optional(seo.OgImage)},
			{Attr: MetaProperty, Key: "og:url", Content: optional(seo.OgURL)},
			{Attr: MetaProperty, Key: "twitter:card", Content: optional(seo.TwitterCard)},
			{Attr: MetaProperty, Key: "twitter:site", Content: optional(seo.TwitterSite)},
			{Attr: MetaProperty, Key: "twitter:title", Content: optional(seo.TwitterTitle)},
			{Attr: MetaProperty, Key: "twitter:description", Content: optional(seo.TwitterDescription)},
			{Attr: MetaProperty, Key: "twitter:image", Content: optional(seo.TwitterImage)},
			{Attr: MetaProperty, Key: "twitter:url", Content: optional(seo.TwitterURL)},
		},
	}
}

// resolveLang returns the declared language verbatim. A value that is not a BCP 47 tag
// is still used but logged.
func resolveLang(lang string) string {
	if lang == "" {
		return defaultLang
	}
	if _, err := language.Parse(lang); err != nil {
		slog.Warn("Headmatter lang is not a valid BCP 47 tag", slog.String("lang", lang), logfields.Error(err))
	}
	return lang
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstOf(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

package shell

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/deckshell/internal/config"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
)

// Placeholders expected once each in the client template.
const (
	EntryPlaceholder = "__ENTRY__"
	HeadPlaceholder  = "<!-- head -->"
	BodyPlaceholder  = "<!-- body -->"
)

// HeadRenderer serializes a head description into an HTML document template.
type HeadRenderer interface {
	Render(ctx context.Context, head HeadDescription, template string) (string, error)
}

// Assembler produces the final document from the client template.
type Assembler struct {
	Resolver PathResolver
	Renderer HeadRenderer
}

// AssembleInput carries the template and the values substituted into it.
type AssembleInput struct {
	Template    string
	Head        string
	Body        string
	Description HeadDescription
	// Entry is the client entry module path injected for EntryPlaceholder.
	Entry string
	Mode  config.Mode
	Base  string
}

// Assemble replaces the first occurrence of each placeholder, in entry, head, body
// order, then renders the head description into the result.
func (a *Assembler) Assemble(ctx context.Context, in AssembleInput) (string, error) {
	if a.Renderer == nil {
		return "", ferrors.InternalError("assembler has no head renderer").Build()
	}
	resolver := a.Resolver
	if resolver == nil {
		resolver = AtFSResolver{}
	}

	entry := DevBasePrefix(in.Mode.IsDev(), in.Base) + resolver.ToServedURL(in.Entry)
	doc := strings.Replace(in.Template, EntryPlaceholder, entry, 1)
	doc = strings.Replace(doc, HeadPlaceholder, in.Head, 1)
	doc = strings.Replace(doc, BodyPlaceholder, in.Body, 1)

	out, err := a.Renderer.Render(ctx, in.Description, doc)
	if err != nil {
		if ferrors.IsClassified(err) {
			return "", err
		}
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "render document head").Build()
	}
	return out, nil
}

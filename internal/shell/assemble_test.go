package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/deckshell/internal/config"
	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head>
<!-- head -->
</head>
<body>
<div id="app"></div>
<script type="module" src="__ENTRY__"></script>
<!-- body -->
</body>
</html>`

func TestAssembleBuildMode(t *testing.T) {
	r := &captureRenderer{}
	a := &Assembler{Renderer: r}

	out, err := a.Assemble(context.Background(), AssembleInput{
		Template:    testTemplate,
		Head:        "\n<meta name=\"x\">",
		Body:        "\n<p>y</p>",
		Description: HeadDescription{Title: "T"},
		Entry:       "/app/client/main.ts",
		Mode:        config.ModeBuild,
		Base:        "/talk/",
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.calls)
	require.Equal(t, "T", r.head.Title)
	require.Contains(t, out, `src="/@fs/app/client/main.ts"`)
	require.Contains(t, out, "<head>\n\n<meta name=\"x\">\n</head>")
	require.Contains(t, out, "<script type=\"module\" src=\"/@fs/app/client/main.ts\"></script>\n\n<p>y</p>\n</body>")
	require.NotContains(t, out, EntryPlaceholder)
	require.NotContains(t, out, HeadPlaceholder)
	require.NotContains(t, out, BodyPlaceholder)
}

func TestAssembleDevModePrefixesBase(t *testing.T) {
	r := &captureRenderer{}
	a := &Assembler{Resolver: AtFSResolver{}, Renderer: r}

	out, err := a.Assemble(context.Background(), AssembleInput{
		Template: testTemplate,
		Entry:    "/app/client/main.ts",
		Mode:     config.ModeDev,
		Base:     "/talk/",
	})
	require.NoError(t, err)
	require.Contains(t, out, `src="/talk/@fs/app/client/main.ts"`)
}

func TestAssembleReplacesFirstOccurrenceOnly(t *testing.T) {
	a := &Assembler{Renderer: &captureRenderer{}}

	out, err := a.Assemble(context.Background(), AssembleInput{
		Template: "__ENTRY__ __ENTRY__ <!-- head --><!-- head --><!-- body --><!-- body -->",
		Head:     "H",
		Body:     "B",
		Entry:    "/m.ts",
		Mode:     config.ModeBuild,
	})
	require.NoError(t, err)
	require.Equal(t, "/@fs/m.ts __ENTRY__ H<!-- head -->B<!-- body -->", out)
}

func TestAssembleMissingPlaceholdersLeavesTemplate(t *testing.T) {
	a := &Assembler{Renderer: &captureRenderer{}}
	out, err := a.Assemble(context.Background(), AssembleInput{Template: "<html></html>", Head: "H", Body: "B"})
	require.NoError(t, err)
	require.Equal(t, "<html></html>", out)
}

func TestAssembleSubstitutionOrder(t *testing.T) {
	a := &Assembler{Renderer: &captureRenderer{}}

	// A head fragment that itself mentions the body placeholder receives the body.
	out, err := a.Assemble(context.Background(), AssembleInput{
		Template: "<!-- head -->|",
		Head:     "<!-- body -->",
		Body:     "B",
	})
	require.NoError(t, err)
	require.Equal(t, "B|", out)
}

func TestAssembleRenderError(t *testing.T) {
	a := &Assembler{Renderer: &captureRenderer{err: errors.New("boom")}}
	_, err := a.Assemble(context.Background(), AssembleInput{Template: testTemplate})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRender))
}

func TestAssembleWithoutRenderer(t *testing.T) {
	_, err := (&Assembler{}).Assemble(context.Background(), AssembleInput{Template: testTemplate})
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryInternal))
}

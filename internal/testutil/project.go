package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/deckshell/internal/config"
)

// ClientTemplate is a minimal client index.html with all three placeholders.
const ClientTemplate = `<!DOCTYPE html>
<html>
<head>
<!-- head -->
</head>
<body>
<div id="app"></div>
<script type="module" src="__ENTRY__"></script>
<!-- body -->
</body>
</html>
`

// DefaultDeck is the slides file written by NewProject.
const DefaultDeck = "---\ntitle: Test Deck\n---\n\n# Hello\n"

// ProjectBuilder provides a fluent interface for laying out a deck project on disk:
// a client root under client/, the user root at the project directory and optional
// override roots.
type ProjectBuilder struct {
	t     *testing.T
	dir   string
	roots []string
}

// NewProject creates a project in a temp directory with the default client template
// and deck.
func NewProject(t *testing.T) *ProjectBuilder {
	t.Helper()
	p := &ProjectBuilder{t: t, dir: t.TempDir()}
	p.WithClientTemplate(ClientTemplate)
	p.WithDeck(DefaultDeck)
	return p
}

// Dir is the project (user root) directory.
func (p *ProjectBuilder) Dir() string { return p.dir }

// Path resolves rel inside the project.
func (p *ProjectBuilder) Path(rel ...string) string {
	return filepath.Join(append([]string{p.dir}, rel...)...)
}

// WithClientTemplate replaces client/index.html.
func (p *ProjectBuilder) WithClientTemplate(html string) *ProjectBuilder {
	WriteFile(p.t, p.Path("client", "index.html"), html)
	return p
}

// WithDeck replaces slides.md.
func (p *ProjectBuilder) WithDeck(content string) *ProjectBuilder {
	WriteFile(p.t, p.Path("slides.md"), content)
	return p
}

// WithUserIndex writes the user root's index.html.
func (p *ProjectBuilder) WithUserIndex(html string) *ProjectBuilder {
	WriteFile(p.t, p.Path("index.html"), html)
	return p
}

// WithRoot adds an override root at rel ahead of the user root. An empty html creates
// the directory without an index.html.
func (p *ProjectBuilder) WithRoot(rel, html string) *ProjectBuilder {
	if html == "" {
		require.NoError(p.t, os.MkdirAll(p.Path(rel), testDirPermissions))
	} else {
		WriteFile(p.t, p.Path(rel, "index.html"), html)
	}
	p.roots = append(p.roots, rel)
	return p
}

// Config returns the finalized configuration for the project.
func (p *ProjectBuilder) Config() *config.Config {
	p.t.Helper()
	cfg := &config.Config{ClientRoot: "client", Roots: append([]string(nil), p.roots...)}
	require.NoError(p.t, cfg.Finalize(p.dir))
	return cfg
}

// WriteConfigFile writes deckshell.yaml pointing at the project layout and returns
// its path.
func (p *ProjectBuilder) WriteConfigFile() string {
	p.t.Helper()
	content := "client_root: client\n"
	if len(p.roots) > 0 {
		content += "roots:\n"
		for _, r := range p.roots {
			content += "  - " + r + "\n"
		}
	}
	path := p.Path(config.DefaultFile)
	WriteFile(p.t, path, content)
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), testDirPermissions))
	require.NoError(t, os.WriteFile(path, []byte(content), testFilePermissions))
}

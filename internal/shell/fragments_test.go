package shell

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
)

func TestExtractFragment(t *testing.T) {
	t.Run("both tags", func(t *testing.T) {
		f := ExtractFragment("<head>\n  <meta name=\"x\">\n</head>\n<body>\n<div>hi</div>\n</body>")
		require.Equal(t, `<meta name="x">`, f.Head)
		require.Equal(t, "<div>hi</div>", f.Body)
	})

	t.Run("case insensitive", func(t *testing.T) {
		f := ExtractFragment("<HEAD><style>a{}</style></HEAD><Body>b</Body>")
		require.Equal(t, "<style>a{}</style>", f.Head)
		require.Equal(t, "b", f.Body)
	})

	t.Run("first match only", func(t *testing.T) {
		f := ExtractFragment("<head>one</head><head>two</head>")
		require.Equal(t, "one", f.Head)
		require.Empty(t, f.Body)
	})

	t.Run("attributes on tag do not match", func(t *testing.T) {
		f := ExtractFragment(`<body class="x">b</body>`)
		require.Empty(t, f.Body)
	})

	t.Run("unclosed", func(t *testing.T) {
		require.Equal(t, Fragment{}, ExtractFragment("<head><meta>"))
	})
}

func TestHasDoctype(t *testing.T) {
	require.True(t, HasDoctype("<!DOCTYPE html><html></html>"))
	require.True(t, HasDoctype("<!doctype html>"))
	require.False(t, HasDoctype("<head></head>"))
}

func TestMergeFragments(t *testing.T) {
	base := t.TempDir()
	theme := filepath.Join(base, "theme")
	addon := filepath.Join(base, "addon")
	user := filepath.Join(base, "user")
	empty := filepath.Join(base, "empty")
	writeIndex(t, theme, "<head><link rel=\"theme\"></head><body><div id=\"theme\"></div></body>")
	writeIndex(t, addon, "<head><script src=\"addon.js\"></script></head>")
	writeIndex(t, user, "<head><meta name=\"user\"></head><body><p>user</p></body>")
	require.NoError(t, os.MkdirAll(empty, 0o750))

	head, body, err := MergeFragments([]string{theme, empty, addon, user}, user)
	require.NoError(t, err)
	require.Equal(t, "\n<link rel=\"theme\">\n<script src=\"addon.js\"></script>\n<meta name=\"user\">", head)
	require.Equal(t, "\n<div id=\"theme\"></div>\n\n<p>user</p>", body)
}

func TestMergeFragmentsNoRoots(t *testing.T) {
	head, body, err := MergeFragments(nil, "")
	require.NoError(t, err)
	require.Empty(t, head)
	require.Empty(t, body)
}

func TestMergeRejectsGeneratedUserIndex(t *testing.T) {
	base := t.TempDir()
	theme := filepath.Join(base, "theme")
	user := filepath.Join(base, "user")
	writeIndex(t, theme, "<!DOCTYPE html><head><meta name=\"theme\"></head><body>t</body>")
	writeIndex(t, user, "<!DOCTYPE html><html><head><title>old</title></head><body>old</body></html>")

	var logs bytes.Buffer
	rec := newCountingRecorder()
	m := &Merger{
		Logger:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})),
		Recorder: rec,
	}

	head, body, err := m.Merge([]string{theme, user}, user+string(filepath.Separator))
	require.NoError(t, err)
	// Only the user root is checked for a doctype.
	require.Equal(t, "\n<meta name=\"theme\">", head)
	require.Equal(t, "\nt", body)
	require.Contains(t, logs.String(), "Ignored provided index.html with doctype declaration")
	require.Contains(t, logs.String(), filepath.Join(user, IndexFile))
	require.Equal(t, 1, rec.fragments[metrics.FragmentMerged])
	require.Equal(t, 1, rec.fragments[metrics.FragmentRejected])
}

func TestMergeUnreadableIndex(t *testing.T) {
	root := t.TempDir()
	// A directory named index.html exists but cannot be read as a file.
	require.NoError(t, os.MkdirAll(filepath.Join(root, IndexFile), 0o750))

	_, _, err := MergeFragments([]string{root}, "")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestMergeIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeIndex(t, root, "<head><meta name=\"a\"></head><body>b</body>")

	h1, b1, err := MergeFragments([]string{root}, root)
	require.NoError(t, err)
	h2, b2, err := MergeFragments([]string{root}, root)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Equal(t, b1, b2)
}

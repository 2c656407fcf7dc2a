package shell

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/deckshell/internal/foundation/errors"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
	"git.home.luguber.info/inful/deckshell/internal/metrics"
)

// IndexFile is the file name looked up in the client root and in every override root.
const IndexFile = "index.html"

// Tag extraction is a best-effort first match, not an HTML parse: malformed or unclosed
// tags simply do not match.
var (
	headInner = regexp.MustCompile(`(?is)<head>(.*?)</head>`)
	bodyInner = regexp.MustCompile(`(?is)<body>(.*?)</body>`)
	doctype   = regexp.MustCompile(`(?i)<!doctype`)
)

// Fragment is the trimmed inner content of one root's <head> and <body>.
type Fragment struct {
	Head string
	Body string
}

// ExtractFragment returns the first <head> and <body> inner text of content, trimmed.
// A missing tag yields an empty side.
func ExtractFragment(content string) Fragment {
	return Fragment{
		Head: firstInner(headInner, content),
		Body: firstInner(bodyInner, content),
	}
}

func firstInner(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// HasDoctype reports whether content carries a full-document doctype declaration.
func HasDoctype(content string) bool {
	return doctype.MatchString(content)
}

// Merger concatenates override root fragments.
type Merger struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// MergeFragments merges roots with a default Merger.
func MergeFragments(roots []string, userRoot string) (head, body string, err error) {
	return (&Merger{}).Merge(roots, userRoot)
}

// Merge walks roots in order and appends each root's fragment to head and body, each
// prefixed by a newline. Roots without an index.html are skipped. The user root's file
// is ignored with a warning when it contains a doctype, since that means it is a
// previously generated document rather than a fragment.
func (m *Merger) Merge(roots []string, userRoot string) (head, body string, err error) {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := m.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	var headB, bodyB strings.Builder
	for _, root := range roots {
		path := filepath.Join(root, IndexFile)
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			if errors.Is(readErr, fs.ErrNotExist) {
				rec.IncRootFragment(metrics.FragmentMissing)
				continue
			}
			return "", "", ferrors.WrapError(readErr, ferrors.CategoryFileSystem, "read root index.html").
				OnChange().
				WithContext("path", path).
				WithContext("root", root).
				Build()
		}

		text := string(content)
		if isSameRoot(root, userRoot) && HasDoctype(text) {
			logger.Warn("Ignored provided index.html with doctype declaration. This file may be generated by Slidev, please remove it from your project.",
				logfields.Path(path))
			rec.IncRootFragment(metrics.FragmentRejected)
			continue
		}

		frag := ExtractFragment(text)
		headB.WriteString("\n")
		headB.WriteString(frag.Head)
		bodyB.WriteString("\n")
		bodyB.WriteString(frag.Body)
		rec.IncRootFragment(metrics.FragmentMerged)
		logger.Debug("Merged root fragment", logfields.Root(root))
	}
	return headB.String(), bodyB.String(), nil
}

func isSameRoot(root, userRoot string) bool {
	if userRoot == "" {
		return false
	}
	return filepath.Clean(root) == filepath.Clean(userRoot)
}

package shell

import "strings"

// PathResolver maps an on-disk path to the URL the dev server serves it under.
type PathResolver interface {
	ToServedURL(path string) string
}

// AtFSResolver serves files through the /@fs prefix of the module dev server.
type AtFSResolver struct{}

func (AtFSResolver) ToServedURL(path string) string {
	p := Slash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "/@fs" + p
}

// Slash converts every backslash in path to a forward slash.
func Slash(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// DevBasePrefix is base without its trailing character in dev mode, "" otherwise.
func DevBasePrefix(dev bool, base string) string {
	if !dev || base == "" {
		return ""
	}
	return base[:len(base)-1]
}

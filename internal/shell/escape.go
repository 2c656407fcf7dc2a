package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ToAttrValue coerces v to a string, escapes HTML-significant characters and wraps the
// result in a double-quoted JSON string literal. It is applied to free-text meta content
// (description, author, keywords) only; structured head fields are escaped by the renderer.
func ToAttrValue(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(html.EscapeString(stringify(v))); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

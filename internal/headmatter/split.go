package headmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the deck started with a headmatter delimiter
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("headmatter start delimiter found but closing delimiter is missing")

// split separates the YAML headmatter (`---` delimited) from the deck body.
// When the deck does not open with a delimiter, had is false and body is the whole input.
func split(content []byte) (front []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A deck consisting only of headmatter may end right after the closing dashes.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			return content[start : len(content)-len("---")], nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// splitSlides cuts the deck body on separator lines consisting of exactly `---`.
func splitSlides(body []byte) [][]byte {
	nl := detectNewline(body)
	lines := bytes.SplitAfter(body, []byte(nl))

	var slides [][]byte
	var cur []byte
	for _, line := range lines {
		if string(bytes.TrimRight(line, "\r\n")) == "---" {
			slides = append(slides, cur)
			cur = nil
			continue
		}
		cur = append(cur, line...)
	}
	if len(bytes.TrimSpace(cur)) > 0 || len(slides) == 0 {
		slides = append(slides, cur)
	}
	return slides
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

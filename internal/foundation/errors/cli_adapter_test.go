package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad mode").Build(), expected: 2},
		{name: "config", err: ConfigError("missing template").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError("read failed").Build(), expected: 11},
		{name: "render", err: RenderError("render failed").Build(), expected: 11},
		{name: "server", err: ServerError("listen failed").Build(), expected: 12},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	cfgErr := ConfigError("client template not found").WithContext("path", "/c/index.html").Build()
	if got := quiet.FormatError(cfgErr); !strings.Contains(got, "/c/index.html") {
		t.Errorf("config errors should name the path, got %q", got)
	}

	internal := InternalError("nil renderer").Build()
	if got := quiet.FormatError(internal); !strings.Contains(got, "use -v") {
		t.Errorf("quiet internal errors should be hidden, got %q", got)
	}
	if got := verbose.FormatError(internal); !strings.Contains(got, "nil renderer") {
		t.Errorf("verbose internal errors should be shown, got %q", got)
	}
	if got := quiet.FormatError(errors.New("plain")); got != "Error: plain" {
		t.Errorf("unexpected plain format %q", got)
	}
}

func TestCLIErrorAdapter_LogsFatalOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	adapter.logError(RenderError("non fatal").Build())
	if buf.Len() != 0 {
		t.Errorf("non-fatal errors should not be logged in quiet mode: %s", buf.String())
	}

	adapter.logError(ConfigError("fatal").WithContext("path", "/x").Build())
	if !strings.Contains(buf.String(), "category=config") || !strings.Contains(buf.String(), "path=/x") {
		t.Errorf("expected structured fatal log, got %s", buf.String())
	}
}

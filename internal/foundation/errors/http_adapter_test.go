package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: http.StatusOK},
		{name: "validation", err: ValidationError("bad").Build(), expected: http.StatusBadRequest},
		{name: "missing template", err: ConfigError("missing").Build(), expected: http.StatusServiceUnavailable},
		{name: "headmatter", err: HeadmatterError("yaml").Build(), expected: http.StatusServiceUnavailable},
		{name: "not found", err: NewError(CategoryNotFound, "nope").Build(), expected: http.StatusNotFound},
		{name: "internal", err: InternalError("boom").Build(), expected: http.StatusInternalServerError},
		{name: "unclassified", err: stdErrors.New("x"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.StatusCodeFor(tt.err); got != tt.expected {
				t.Errorf("StatusCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	err := FileSystemError("read root index.html").WithContext("path", "/theme/index.html").Build()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	adapter.WriteErrorResponse(rec, req, err)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	var payload HTTPErrorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &payload); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if payload.Code != string(CategoryFileSystem) {
		t.Errorf("expected code filesystem, got %q", payload.Code)
	}
	if !payload.Retryable {
		t.Error("filesystem errors should be flagged retryable")
	}
	if payload.Details["path"] != "/theme/index.html" {
		t.Errorf("expected path detail, got %v", payload.Details)
	}
}

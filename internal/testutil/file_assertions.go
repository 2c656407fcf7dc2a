package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content := fa.read(relativePath)
	if !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected %s to contain %q", relativePath, expectedContent)
	}
	return fa
}

// AssertFileNotContains validates that a file does not contain content
func (fa *FileAssertions) AssertFileNotContains(relativePath, content string) *FileAssertions {
	fa.t.Helper()
	if strings.Contains(fa.read(relativePath), content) {
		fa.t.Errorf("Expected %s not to contain %q", relativePath, content)
	}
	return fa
}

func (fa *FileAssertions) read(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read %s: %v", fullPath, err)
	}
	return string(data)
}

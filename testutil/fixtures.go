// Package testutil provides small helpers shared by the package tests:
// fixture loading from testdata directories and scratch files that clean
// themselves up with the test.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture loads a fixture file from the calling package's testdata
// directory. The path is relative to testdata.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	fullPath := filepath.Join("testdata", path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}

	return data
}

// LoadFixtureString loads a fixture file as a string.
func LoadFixtureString(t *testing.T, path string) string {
	t.Helper()
	return string(LoadFixture(t, path))
}

// LoadJSONFixture loads a fixture file and unmarshals it as JSON.
func LoadJSONFixture[T any](t *testing.T, path string) T {
	t.Helper()

	data := LoadFixture(t, path)

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to parse JSON fixture %s: %v", path, err)
	}

	return result
}

// TempFile creates a file with the given content inside a fresh temporary
// directory. Returns the file path. Everything is removed when the test ends.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to create temp file %s: %v", name, err)
	}

	return path
}

// TempFileString creates a temporary file with string content.
func TempFileString(t *testing.T, name, content string) string {
	return TempFile(t, name, []byte(content))
}

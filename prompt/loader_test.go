package prompt

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestLoader_LoadEmbedded(t *testing.T) {
	loader := NewLoader("/nonexistent")

	tmpl, err := loader.Load(NameEnhance)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := tmpl.Render(Data{Transcript: "hello"})
	if !strings.Contains(got, "note-taker") {
		t.Error("embedded enhance template should describe the note-taker role")
	}
}

func TestLoader_LoadFromDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "custom.txt"), []byte("Custom prompt content"), 0644)

	loader := NewLoader(dir)

	tmpl, err := loader.Load("custom")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tmpl.Render(Data{}); got != "Custom prompt content" {
		t.Errorf("Render = %q, want 'Custom prompt content'", got)
	}
}

func TestLoader_OverrideWins(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, NameEnhance+".txt"),
		[]byte("OVERRIDE {{transcript}}"), 0644)

	loader := NewLoader(dir)

	tmpl, err := loader.Load(NameEnhance)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tmpl.Render(Data{Transcript: "x"}); got != "OVERRIDE x" {
		t.Errorf("Render = %q, override dir should shadow the embedded default", got)
	}
}

func TestLoader_AddSearchDir(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	os.WriteFile(filepath.Join(first, "who.txt"), []byte("first"), 0644)
	os.WriteFile(filepath.Join(second, "who.txt"), []byte("second"), 0644)

	loader := NewLoader(second)
	loader.AddSearchDir(first)

	tmpl, err := loader.Load("who")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tmpl.Render(Data{}); got != "first" {
		t.Errorf("Render = %q, prepended dir should win", got)
	}
}

func TestLoader_Exists(t *testing.T) {
	loader := NewLoader("/nonexistent")

	if !loader.Exists(NameEnhance) {
		t.Error("enhance should exist (embedded)")
	}
	if loader.Exists("nonexistent-prompt") {
		t.Error("nonexistent-prompt should not exist")
	}
}

func TestLoader_Names(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "custom.txt"), []byte("x"), 0644)

	loader := NewLoader(dir)
	names := loader.Names()

	for _, want := range []string{NameChat, NameDynamicNote, NameEnhance, NameTitle, "custom"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Names() missing %q: %v", want, names)
		}
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() should be sorted: %v", names)
	}
}

func TestLoader_NotFound(t *testing.T) {
	loader := NewLoader("/nonexistent")

	_, err := loader.Load("definitely-not-a-real-prompt")
	if err == nil {
		t.Fatal("expected error for non-existent prompt")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should mention 'not found': %v", err)
	}
}

func TestLoader_ParseError(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "bad.txt"),
		[]byte("{{#if hasTranscript}}never closed"), 0644)

	loader := NewLoader(dir)

	_, err := loader.Load("bad")
	if err == nil {
		t.Fatal("expected error for unterminated block")
	}
	if !strings.Contains(err.Error(), "parse prompt template bad") {
		t.Errorf("error should name the template: %v", err)
	}
}

func TestLoader_ClearCache(t *testing.T) {
	loader := NewLoader()

	if _, err := loader.Load(NameEnhance); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loader.cache) == 0 {
		t.Error("cache should have entry")
	}

	loader.ClearCache()
	if len(loader.cache) != 0 {
		t.Error("cache should be empty after clear")
	}
}

func TestDefault(t *testing.T) {
	source, err := Default(NameTitle)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if !strings.Contains(source, "8 words") {
		t.Error("title default should bound the title length")
	}

	if _, err := Default("nope"); err == nil {
		t.Error("expected error for unknown default")
	}
}

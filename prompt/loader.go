package prompt

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Built-in template names.
const (
	NameEnhance     = "enhance"
	NameChat        = "chat"
	NameTitle       = "title"
	NameDynamicNote = "dynamic_note"
)

// embeddedPrompts holds the default templates shipped in the binary.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// Loader resolves named templates, searching override directories
// before falling back to the embedded defaults. A Loader is safe for
// concurrent use.
type Loader struct {
	mu    sync.RWMutex
	dirs  []string             // Directories to search, in order
	cache map[string]*Template // Parsed templates
}

// NewLoader creates a loader that searches the given directories in
// order before the embedded defaults.
func NewLoader(dirs ...string) *Loader {
	return &Loader{
		dirs:  dirs,
		cache: make(map[string]*Template),
	}
}

// AddSearchDir prepends a directory to the search order.
func (l *Loader) AddSearchDir(dir string) {
	l.mu.Lock()
	l.dirs = append([]string{dir}, l.dirs...)
	l.mu.Unlock()
}

// Load resolves and parses a template by name.
func (l *Loader) Load(name string) (*Template, error) {
	l.mu.RLock()
	tmpl, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	raw, err := l.loadRaw(name)
	if err != nil {
		return nil, err
	}

	tmpl, err = Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = tmpl
	l.mu.Unlock()
	return tmpl, nil
}

// loadRaw loads raw template source without parsing.
func (l *Loader) loadRaw(name string) (string, error) {
	filename := name + ".txt"

	for _, dir := range l.searchDirs() {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err == nil {
			return string(data), nil
		}
	}

	return Default(name)
}

// searchDirs snapshots the directory list for lock-free iteration.
func (l *Loader) searchDirs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dirs
}

// Exists checks whether a template is resolvable.
func (l *Loader) Exists(name string) bool {
	_, err := l.loadRaw(name)
	return err == nil
}

// Names returns all available template names, override directories and
// embedded defaults combined, sorted.
func (l *Loader) Names() []string {
	seen := make(map[string]bool)

	for _, dir := range l.searchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
				seen[strings.TrimSuffix(entry.Name(), ".txt")] = true
			}
		}
	}

	entries, err := embeddedPrompts.ReadDir("prompts")
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
				seen[strings.TrimSuffix(entry.Name(), ".txt")] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearCache drops parsed templates, forcing a reload on next use.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string]*Template)
	l.mu.Unlock()
}

// Default returns the embedded default source for the named template.
func Default(name string) (string, error) {
	data, err := embeddedPrompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("prompt not found: %s", name)
	}
	return string(data), nil
}

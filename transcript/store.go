package transcript

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Store errors
var (
	// ErrRecordNotFound indicates no saved record exists for the ID.
	ErrRecordNotFound = errors.New("record not found")
)

// Record is a saved transcript together with the notes taken alongside it.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Turns     []Turn    `json:"turns"`
	Notes     string    `json:"notes,omitempty"`
}

// NewRecord creates a record for the given turns with a generated ID.
func NewRecord(turns []Turn) (*Record, error) {
	id, err := nanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate record id: %w", err)
	}
	return &Record{
		ID:        id,
		CreatedAt: time.Now(),
		Turns:     turns,
	}, nil
}

// Store persists records as JSON files under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a file-based record store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "records"), 0755); err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the base directory for the store.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// compressionThreshold is the size above which records are compressed.
const compressionThreshold = 100 * 1024 // 100KB

// Save writes the record to disk, replacing any previous version.
func (s *Store) Save(r *Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if len(data) > compressionThreshold {
		return s.saveCompressed(r.ID, data)
	}

	// Remove compressed version if it exists
	os.Remove(s.path(r.ID) + ".gz")

	return os.WriteFile(s.path(r.ID), data, 0644)
}

func (s *Store) saveCompressed(id string, data []byte) error {
	// Remove uncompressed version if it exists
	os.Remove(s.path(id))

	f, err := os.Create(s.path(id) + ".gz")
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	_, err = gz.Write(data)
	return err
}

// Load retrieves a saved record.
func (s *Store) Load(id string) (*Record, error) {
	// Try compressed first
	data, err := loadCompressed(s.path(id) + ".gz")
	if err != nil {
		data, err = os.ReadFile(s.path(id))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns all saved records sorted newest first.
func (s *Store) List() ([]*Record, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, "records"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := entry.Name()
		id = strings.TrimSuffix(id, ".gz")
		id = strings.TrimSuffix(id, ".json")

		r, err := s.Load(id)
		if err != nil {
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// Delete removes a saved record. Deleting an unknown ID is not an error.
func (s *Store) Delete(id string) error {
	for _, path := range []string{s.path(id), s.path(id) + ".gz"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, "records", id+".json")
}

func loadCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

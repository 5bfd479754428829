package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ambienterrors "github.com/drummsters/ambientclock/pkg/errors"
)

// Store persists the state tree as a single snapshot. Load returns (nil, nil)
// when no snapshot exists yet.
type Store interface {
	Load() (map[string]any, error)
	Save(tree map[string]any) error
}

// FileStore keeps the snapshot in one JSON file, written atomically.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore rooted at path, creating the parent
// directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ambienterrors.NewPersistenceError("mkdir", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the snapshot location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot from disk. A missing file is not an error.
func (s *FileStore) Load() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ambienterrors.NewPersistenceError("load", s.path, err)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, ambienterrors.NewPersistenceError("load", s.path, fmt.Errorf("failed to parse snapshot: %w", err))
	}
	return tree, nil
}

// Save writes the snapshot to disk via a temporary file and atomic rename.
func (s *FileStore) Save(tree map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return ambienterrors.NewPersistenceError("save", s.path, err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return ambienterrors.NewPersistenceError("save", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return ambienterrors.NewPersistenceError("save", s.path, err)
	}
	return nil
}

// Remove deletes the snapshot file if present.
func (s *FileStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return ambienterrors.NewPersistenceError("remove", s.path, err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions. It
// counts writes so debounce behaviour can be asserted.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot map[string]any
	saves    int
	failWith error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved snapshot, nil when nothing was saved.
func (s *MemoryStore) Load() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, nil
	}
	return cloneMap(s.snapshot), nil
}

// Save records a deep copy of the tree.
func (s *MemoryStore) Save(tree map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.snapshot = cloneMap(tree)
	s.saves++
	return nil
}

// Seed installs a snapshot as if it had been persisted by an earlier session.
func (s *MemoryStore) Seed(tree map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cloneMap(tree)
}

// FailWith makes subsequent saves return err; pass nil to heal.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// SaveCount reports how many successful saves happened.
func (s *MemoryStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Snapshot returns a copy of the last saved tree.
func (s *MemoryStore) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMap(s.snapshot)
}

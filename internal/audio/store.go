package audio

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Store writes clips to transient files in the platform temp directory.
// One file per synthesis call; nothing persists between runs.
type Store struct {
	dir string
}

// NewStore creates a Store backed by the platform temp directory.
func NewStore() *Store {
	return &Store{dir: os.TempDir()}
}

// NewStoreAt creates a Store backed by the given directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the clip to a fresh temp file and records the path on the clip.
func (s *Store) Save(clip *Clip) error {
	pattern := fmt.Sprintf("readaloud-%s-*.%s", uuid.New().String()[:8], clip.Format)
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}

	if _, err := f.Write(clip.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to close audio file: %w", err)
	}

	clip.Path = f.Name()
	return nil
}

// Remove deletes a stored clip file. Missing files are not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

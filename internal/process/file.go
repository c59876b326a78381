package process

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource replays a snapshot previously written by Save.
type FileSource struct {
	Path string
}

// NewFileSource returns a Source reading the snapshot stored at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Snapshot loads and decodes the snapshot file.
func (s *FileSource) Snapshot(_ context.Context) (*Snapshot, error) {
	return Load(s.Path)
}

// Save writes snapshot to path as JSON, replacing any existing file. The
// document is written to a temporary file in the same directory first, so a
// failed save leaves path untouched.
func Save(path string, snapshot *Snapshot) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snapshot Snapshot
	if err := json.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snapshot, nil
}

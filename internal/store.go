package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes the timelog snapshot. The whole log is loaded into
// memory at the start of an invocation and, if changed, rewritten in full at
// the end; there is no partial update.
type Store struct {
	path string
}

// NewStore returns a store backed by the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields an empty timelog.
func (s *Store) Load() (*TimeLog, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewTimeLog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	log := NewTimeLog()
	if err := json.Unmarshal(data, log); err != nil {
		return nil, fmt.Errorf("parse log file: %w", err)
	}
	return log, nil
}

// Save rewrites the snapshot in full.
func (s *Store) Save(log *TimeLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

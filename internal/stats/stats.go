// Package stats persists the lifetime game statistics as a small JSON file.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is where the statistics live unless configured otherwise.
const DefaultPath = "./configs/stats.json"

// TotalGameStats are the lifetime counters of a player.
type TotalGameStats struct {
	TilesTapped   uint64 `json:"tiles_tapped"`
	TigersTrapped uint64 `json:"tigers_trapped"`
	TigersEscaped uint64 `json:"tigers_escaped"`
	GamesPlayed   uint64 `json:"games_played"`
	RecordLevel   uint64 `json:"record_level"`
}

// Default returns a fresh record. The record level starts at 1.
func Default() TotalGameStats {
	return TotalGameStats{RecordLevel: 1}
}

// Add merges the counters of d into t. The record level is a running
// maximum, so it is raised to d's record level and never lowered.
func (t *TotalGameStats) Add(d TotalGameStats) {
	t.TilesTapped += d.TilesTapped
	t.TigersTrapped += d.TigersTrapped
	t.TigersEscaped += d.TigersEscaped
	t.GamesPlayed += d.GamesPlayed
	t.RecordLevel = max(t.RecordLevel, d.RecordLevel)
}

// Encode renders the record as pretty-printed JSON.
func Encode(s TotalGameStats) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("stats: encode: %w", err)
	}
	return data, nil
}

// Decode parses a record. Missing fields keep their defaults.
func Decode(data []byte) (TotalGameStats, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return TotalGameStats{}, fmt.Errorf("stats: decode: %w", err)
	}
	return s, nil
}

// Store keeps one record in memory and writes it to a file on demand.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	current TotalGameStats
}

// Open loads the record at path. A missing directory or file is created and
// seeded with the default record. An unreadable or corrupt file is an error.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("stats: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	s := &Store{path: path, current: Default()}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("stats: cannot create directory %s: %w", dir, err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.Flush(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats: cannot read %s: %w", path, err)
	}

	current, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("stats: %s: %w", path, err)
	}
	s.current = current
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Current returns the in-memory record.
func (s *Store) Current() TotalGameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to the record and writes it out. Concurrent callers are
// serialized, so every change lands on the latest record. The record is left
// untouched when the write fails.
func (s *Store) Update(fn func(*TotalGameStats)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	fn(&next)
	if err := write(s.path, next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Flush writes the in-memory record to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked()
}

func (s *Store) writeLocked() error {
	return write(s.path, s.current)
}

func write(path string, t TotalGameStats) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("stats: cannot write %s: %w", path, err)
	}
	return nil
}

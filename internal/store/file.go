package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in a single JSON object on disk, mirroring the
// browser localStorage layout: {"lowStressStrategies": [...], ...}.
type FileStore struct {
	path     string
	mu       sync.RWMutex
	readFile func(string) ([]byte, error)
}

// errCorrupt marks a store file that exists but does not parse
var errCorrupt = errors.New("store file is corrupt")

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, readFile: os.ReadFile}
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := s.readFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	entries := map[string]json.RawMessage{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", s.path, errCorrupt, err)
	}
	return entries, nil
}

// Get returns the raw JSON value stored under key
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, false, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	// Values sit indented inside the file; hand back the compact form
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return buf.Bytes(), true, nil
}

// Put stores value (which must be valid JSON) under key. The file is
// rewritten through a temp file and rename so a crash never leaves it
// half-written.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("put %s: value is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		if !errors.Is(err, errCorrupt) {
			return fmt.Errorf("put %s: %w", key, err)
		}
		// A file that no longer parses is replaced rather than blocking every write
		entries = map[string]json.RawMessage{}
	}
	entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

// Backend is a flat key-value medium the lists are persisted to.
// A missing key is reported with ok=false and a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store holds the three per-zone strategy lists. Values are loaded lazily
// from the backend and cached; reads never fail; a zone with nothing usable
// persisted reads as its default list.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu    sync.Mutex
	lists map[zone.Zone]List
}

func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		lists:   make(map[zone.Zone]List),
	}
}

// Get returns a copy of the zone's current list. An out-of-range zone reads
// as Low, matching Key.
func (s *Store) Get(ctx context.Context, z zone.Zone) List {
	z = z.Info().Zone

	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lists[z]; ok {
		return l.Clone()
	}

	l := s.load(ctx, z)
	s.lists[z] = l
	return l.Clone()
}

// load reads a list from the backend, falling back to defaults on absence
// or on any read/decode failure
func (s *Store) load(ctx context.Context, z zone.Zone) List {
	key := Key(z)
	data, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("strategy read failed, using defaults", "key", key, "error", err)
		return Defaults(z)
	}
	if !ok {
		s.logger.Debug("no stored strategies, using defaults", "key", key)
		return Defaults(z)
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		s.logger.Warn("invalid strategies JSON, using defaults", "key", key, "error", err)
		return Defaults(z)
	}
	if l == nil {
		// Stored "null"
		return Defaults(z)
	}
	return l
}

// Set replaces the zone's list wholesale. The in-memory value is updated
// even when the backend write fails, so the session keeps working; the
// write error is still returned.
func (s *Store) Set(ctx context.Context, z zone.Zone, l List) error {
	z = z.Info().Zone
	value := l.Clone()

	s.mu.Lock()
	s.lists[z] = value
	s.mu.Unlock()

	key := Key(z)
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		s.logger.Warn("strategy write failed, keeping in-memory value", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}

	s.logger.Info("strategies saved", "key", key, "count", len(value))
	return nil
}

// Reset restores the zone's built-in list
func (s *Store) Reset(ctx context.Context, z zone.Zone) error {
	return s.Set(ctx, z, Defaults(z))
}

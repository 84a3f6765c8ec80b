package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/accesstechnology-mike/stressslider/internal/strategy"
	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

var (
	ErrNotOpen         = errors.New("editor is not open")
	ErrAlreadyOpen     = errors.New("editor is already open")
	ErrIndexOutOfRange = errors.New("strategy index out of range")
)

// State is the editor's open/closed state
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Store is the part of strategy.Store the editor needs
type Store interface {
	Get(ctx context.Context, z zone.Zone) strategy.List
	Set(ctx context.Context, z zone.Zone, l strategy.List) error
}

// Editor stages edits to one zone's list and commits them on Save.
// The buffer is always a private copy, so nothing reaches the store until Save.
type Editor struct {
	store  Store
	logger *slog.Logger

	state   State
	zone    zone.Zone
	buffer  strategy.List
	session string // Correlates log records for one open/close cycle
}

func New(store Store, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{store: store, logger: logger}
}

// State returns whether the editor is open
func (e *Editor) State() State { return e.state }

// IsOpen is shorthand for State() == Open
func (e *Editor) IsOpen() bool { return e.state == Open }

// Zone returns the zone being edited; only meaningful while open
func (e *Editor) Zone() zone.Zone { return e.zone }

// Open starts an edit session for z, seeding the buffer from the store
func (e *Editor) Open(ctx context.Context, z zone.Zone) error {
	if e.state == Open {
		return ErrAlreadyOpen
	}
	e.state = Open
	e.zone = z
	e.buffer = e.store.Get(ctx, z).Clone()
	e.session = uuid.New().String()
	e.logger.Debug("editor opened", "session", e.session, "zone", z.String(), "entries", len(e.buffer))
	return nil
}

// Buffer returns a copy of the staged entries
func (e *Editor) Buffer() strategy.List {
	if e.state != Open {
		return nil
	}
	return e.buffer.Clone()
}

// Len returns the number of staged entries
func (e *Editor) Len() int {
	return len(e.buffer)
}

// Append adds a blank entry at the end of the buffer
func (e *Editor) Append() error {
	if e.state != Open {
		return ErrNotOpen
	}
	e.buffer = append(e.buffer, "")
	return nil
}

// SetText overwrites the entry at position i
func (e *Editor) SetText(i int, text string) error {
	if e.state != Open {
		return ErrNotOpen
	}
	if i < 0 || i >= len(e.buffer) {
		return fmt.Errorf("set entry %d of %d: %w", i, len(e.buffer), ErrIndexOutOfRange)
	}
	e.buffer[i] = text
	return nil
}

// Remove deletes the entry at position i, shifting later entries left
func (e *Editor) Remove(i int) error {
	if e.state != Open {
		return ErrNotOpen
	}
	if i < 0 || i >= len(e.buffer) {
		return fmt.Errorf("remove entry %d of %d: %w", i, len(e.buffer), ErrIndexOutOfRange)
	}
	e.buffer = append(e.buffer[:i], e.buffer[i+1:]...)
	return nil
}

// Cancel discards the buffer without touching the store
func (e *Editor) Cancel() {
	if e.state != Open {
		return
	}
	e.logger.Debug("editor cancelled", "session", e.session, "zone", e.zone.String())
	e.close()
}

// Save drops blank entries, writes the result to the store and closes the
// editor. The editor closes even when the store reports a write error; the
// store keeps the committed list in memory in that case.
func (e *Editor) Save(ctx context.Context) (strategy.List, error) {
	if e.state != Open {
		return nil, ErrNotOpen
	}

	committed := Compact(e.buffer)
	z, session := e.zone, e.session
	e.close()

	if err := e.store.Set(ctx, z, committed); err != nil {
		e.logger.Warn("editor save not persisted", "session", session, "zone", z.String(), "error", err)
		return committed, fmt.Errorf("save %s strategies: %w", z, err)
	}

	e.logger.Debug("editor saved", "session", session, "zone", z.String(), "entries", len(committed))
	return committed, nil
}

func (e *Editor) close() {
	e.state = Closed
	e.buffer = nil
	e.session = ""
}

// Compact returns the entries of l whose trimmed text is non-empty, in order
func Compact(l strategy.List) strategy.List {
	out := make(strategy.List, 0, len(l))
	for _, s := range l {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ParseLevel maps a config level name to a slog level; unknown names are info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open builds the process logger. The terminal belongs to the UI, so records
// go to a JSON log file; an empty path discards them. When ring is non-nil
// every record is mirrored into it for the debug panel.
func Open(path, level string, ring *Ring) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if ring != nil {
		h = &teeHandler{primary: h, ring: ring, level: opts.Level}
	}
	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Ring keeps the most recent formatted log lines
type Ring struct {
	mu    sync.Mutex
	lines []string
	size  int
}

func NewRing(size int) *Ring {
	if size < 1 {
		size = 100
	}
	return &Ring{size: size}
}

// Add appends a line, dropping the oldest beyond capacity
func (r *Ring) Add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.size {
		r.lines = r.lines[len(r.lines)-r.size:]
	}
}

// Lines returns a copy of the buffered lines, oldest first
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// teeHandler forwards to primary and writes a one-line summary to the ring
type teeHandler struct {
	primary slog.Handler
	ring    *Ring
	level   slog.Leveler
	attrs   []slog.Attr
}

func (h *teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() || h.primary.Enabled(ctx, l)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level.Level() {
		var b strings.Builder
		b.WriteString(r.Time.Format("15:04:05.000"))
		b.WriteString(" [" + r.Level.String() + "] ")
		b.WriteString(r.Message)
		for _, a := range h.attrs {
			b.WriteString(" " + a.String())
		}
		r.Attrs(func(a slog.Attr) bool {
			b.WriteString(" " + a.String())
			return true
		})
		h.ring.Add(b.String())
	}
	if h.primary.Enabled(ctx, r.Level) {
		return h.primary.Handle(ctx, r)
	}
	return nil
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &teeHandler{primary: h.primary.WithAttrs(attrs), ring: h.ring, level: h.level, attrs: merged}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{primary: h.primary.WithGroup(name), ring: h.ring, level: h.level, attrs: h.attrs}
}

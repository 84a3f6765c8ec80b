package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/accesstechnology-mike/stressslider/internal/store"
	"github.com/accesstechnology-mike/stressslider/internal/strategy"
	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

func setupEditor(t *testing.T) (*Editor, *strategy.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := strategy.NewStore(store.NewMemoryStore(), logger)
	return New(s, logger), s
}

func TestOpenSeedsBufferFromStore(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)

	if err := e.Open(ctx, zone.Low); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !e.IsOpen() {
		t.Fatal("expected editor to be open")
	}
	if diff := cmp.Diff(s.Get(ctx, zone.Low), e.Buffer()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	ctx := context.Background()
	e, _ := setupEditor(t)
	_ = e.Open(ctx, zone.Low)
	if err := e.Open(ctx, zone.High); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
	if e.Zone() != zone.Low {
		t.Errorf("zone changed to %v", e.Zone())
	}
}

func TestMutationsRequireOpen(t *testing.T) {
	e, _ := setupEditor(t)

	if err := e.Append(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Append: expected ErrNotOpen, got %v", err)
	}
	if err := e.SetText(0, "x"); !errors.Is(err, ErrNotOpen) {
		t.Errorf("SetText: expected ErrNotOpen, got %v", err)
	}
	if err := e.Remove(0); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Remove: expected ErrNotOpen, got %v", err)
	}
	if _, err := e.Save(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Save: expected ErrNotOpen, got %v", err)
	}
}

func TestIndexBounds(t *testing.T) {
	e, _ := setupEditor(t)
	_ = e.Open(context.Background(), zone.Low)

	for _, i := range []int{-1, 4, 99} {
		if err := e.SetText(i, "x"); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetText(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if err := e.Remove(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Remove(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)
	before := s.Get(ctx, zone.Medium)

	_ = e.Open(ctx, zone.Medium)
	_ = e.SetText(0, "changed")
	_ = e.Remove(1)
	_ = e.Append()
	_ = e.SetText(e.Len()-1, "new one")
	e.Cancel()

	if e.IsOpen() {
		t.Fatal("expected editor closed after Cancel")
	}
	if diff := cmp.Diff(before, s.Get(ctx, zone.Medium)); diff != "" {
		t.Errorf("store changed by cancelled edit (-want +got):\n%s", diff)
	}

	// Re-opening reflects the persisted value, not the discarded buffer
	_ = e.Open(ctx, zone.Medium)
	if diff := cmp.Diff(before, e.Buffer()); diff != "" {
		t.Errorf("reopened buffer (-want +got):\n%s", diff)
	}
}

func TestBufferDoesNotAliasStore(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)
	_ = e.Open(ctx, zone.High)
	_ = e.SetText(0, "staged only")

	if got := s.Get(ctx, zone.High)[0]; got == "staged only" {
		t.Error("staged edit leaked into store before Save")
	}
}

func TestSaveDropsBlankEntries(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)
	if err := s.Set(ctx, zone.Low, strategy.List{"", "  ", "Valid entry", ""}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_ = e.Open(ctx, zone.Low)
	committed, err := e.Save(ctx)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := strategy.List{"Valid entry"}
	if diff := cmp.Diff(want, committed); diff != "" {
		t.Errorf("committed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Get(ctx, zone.Low)); diff != "" {
		t.Errorf("persisted (-want +got):\n%s", diff)
	}
	if e.IsOpen() {
		t.Error("expected editor closed after Save")
	}
}

func TestSaveBlankAppendKeepsFourEntries(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)

	_ = e.Open(ctx, zone.Medium)
	if e.Len() != 4 {
		t.Fatalf("expected 4 default entries, got %d", e.Len())
	}
	_ = e.Append()
	if e.Len() != 5 {
		t.Fatalf("expected 5 staged entries, got %d", e.Len())
	}
	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := s.Get(ctx, zone.Medium); len(got) != 4 {
		t.Errorf("expected 4 persisted entries, got %d: %v", len(got), got)
	}
}

func TestRemoveShiftsLeft(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  strategy.List
	}{
		{"first", 0, strategy.List{"b", "c", "d"}},
		{"middle", 1, strategy.List{"a", "c", "d"}},
		{"last", 3, strategy.List{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			e, s := setupEditor(t)
			_ = s.Set(ctx, zone.Low, strategy.List{"a", "b", "c", "d"})
			_ = e.Open(ctx, zone.Low)

			if err := e.Remove(tt.index); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if diff := cmp.Diff(tt.want, e.Buffer()); diff != "" {
				t.Errorf("buffer (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditAndSave(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)

	_ = e.Open(ctx, zone.High)
	_ = e.SetText(0, "Call a friend")
	_ = e.Remove(3)
	_ = e.Append()
	_ = e.SetText(3, "Go outside")
	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := strategy.List{
		"Call a friend",
		"Use my breathing technique",
		"Apply deep pressure (weighted blanket)",
		"Go outside",
	}
	if diff := cmp.Diff(want, s.Get(ctx, zone.High)); diff != "" {
		t.Errorf("persisted (-want +got):\n%s", diff)
	}
}

func TestSaveEverythingBlankPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	e, s := setupEditor(t)

	_ = e.Open(ctx, zone.Low)
	for i := 0; i < 4; i++ {
		_ = e.SetText(i, " ")
	}
	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Get(ctx, zone.Low); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		in   strategy.List
		want strategy.List
	}{
		{"nil", nil, strategy.List{}},
		{"all blank", strategy.List{"", "\t", " \n"}, strategy.List{}},
		{"keeps inner whitespace", strategy.List{" a b "}, strategy.List{" a b "}},
		{"order kept", strategy.List{"z", "", "a", "z"}, strategy.List{"z", "a", "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Compact(tt.in)); diff != "" {
				t.Errorf("Compact (-want +got):\n%s", diff)
			}
		})
	}
}

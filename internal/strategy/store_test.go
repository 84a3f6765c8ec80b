package strategy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

// mapBackend is a minimal in-package Backend; failGet/failPut force errors
type mapBackend struct {
	data    map[string][]byte
	failGet bool
	failPut bool
}

func newMapBackend() *mapBackend {
	return &mapBackend{data: make(map[string][]byte)}
}

func (b *mapBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	if b.failGet {
		return nil, false, errors.New("storage unavailable")
	}
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *mapBackend) Put(_ context.Context, key string, value []byte) error {
	if b.failPut {
		return errors.New("storage unavailable")
	}
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetReturnsDefaultsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMapBackend(), quietLogger())

	for _, z := range zone.All() {
		got := s.Get(ctx, z)
		if len(got) != 4 {
			t.Errorf("%v: expected 4 default strategies, got %d", z, len(got))
		}
		if diff := cmp.Diff(Defaults(z), got); diff != "" {
			t.Errorf("%v defaults mismatch (-want +got):\n%s", z, diff)
		}
	}
}

func TestDefaultsDistinctPerZone(t *testing.T) {
	if Defaults(zone.Low).Equal(Defaults(zone.Medium)) || Defaults(zone.Medium).Equal(Defaults(zone.High)) {
		t.Fatal("default lists should differ per zone")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list List
	}{
		{"empty list", List{}},
		{"single", List{"Breathe"}},
		{"duplicates kept in order", List{"b", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := newMapBackend()
			s := NewStore(backend, quietLogger())

			if err := s.Set(ctx, zone.Medium, tt.list); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if diff := cmp.Diff(tt.list, s.Get(ctx, zone.Medium)); diff != "" {
				t.Errorf("cached round trip (-want +got):\n%s", diff)
			}

			// A fresh store over the same backend reads the persisted value
			reopened := NewStore(backend, quietLogger())
			if diff := cmp.Diff(tt.list, reopened.Get(ctx, zone.Medium)); diff != "" {
				t.Errorf("persisted round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetEmptyListPersistsAsArray(t *testing.T) {
	backend := newMapBackend()
	s := NewStore(backend, quietLogger())
	if err := s.Set(context.Background(), zone.High, nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := string(backend.data["highStressStrategies"]); got != "[]" {
		t.Errorf("stored value = %s, want []", got)
	}
}

func TestSetOnlyTouchesOneZone(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMapBackend(), quietLogger())
	if err := s.Set(ctx, zone.Low, List{"only low"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if diff := cmp.Diff(Defaults(zone.High), s.Get(ctx, zone.High)); diff != "" {
		t.Errorf("high zone changed (-want +got):\n%s", diff)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMapBackend(), quietLogger())

	l := s.Get(ctx, zone.Low)
	l[0] = "mutated"

	if got := s.Get(ctx, zone.Low)[0]; got == "mutated" {
		t.Error("mutating a returned list leaked into the store")
	}
}

func TestSetCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMapBackend(), quietLogger())

	in := List{"a", "b"}
	if err := s.Set(ctx, zone.Low, in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = "mutated"

	if got := s.Get(ctx, zone.Low)[0]; got != "a" {
		t.Errorf("store aliased caller slice, got %q", got)
	}
}

func TestReadFailureFallsBackToDefaults(t *testing.T) {
	backend := newMapBackend()
	backend.failGet = true
	s := NewStore(backend, quietLogger())

	got := s.Get(context.Background(), zone.Medium)
	if diff := cmp.Diff(Defaults(zone.Medium), got); diff != "" {
		t.Errorf("expected defaults on read failure (-want +got):\n%s", diff)
	}
}

func TestCorruptValueFallsBackToDefaults(t *testing.T) {
	backend := newMapBackend()
	backend.data["lowStressStrategies"] = []byte("{not json")
	backend.data["highStressStrategies"] = []byte("null")
	s := NewStore(backend, quietLogger())

	ctx := context.Background()
	if diff := cmp.Diff(Defaults(zone.Low), s.Get(ctx, zone.Low)); diff != "" {
		t.Errorf("corrupt JSON (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Defaults(zone.High), s.Get(ctx, zone.High)); diff != "" {
		t.Errorf("null JSON (-want +got):\n%s", diff)
	}
}

func TestWriteFailureKeepsInMemoryValue(t *testing.T) {
	ctx := context.Background()
	backend := newMapBackend()
	backend.failPut = true
	s := NewStore(backend, quietLogger())

	err := s.Set(ctx, zone.Low, List{"kept"})
	if err == nil {
		t.Fatal("expected write error")
	}
	if diff := cmp.Diff(List{"kept"}, s.Get(ctx, zone.Low)); diff != "" {
		t.Errorf("in-memory value lost (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMapBackend(), quietLogger())
	_ = s.Set(ctx, zone.High, List{"x"})

	if err := s.Reset(ctx, zone.High); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if diff := cmp.Diff(Defaults(zone.High), s.Get(ctx, zone.High)); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
}

func TestKeys(t *testing.T) {
	want := map[zone.Zone]string{
		zone.Low:    "lowStressStrategies",
		zone.Medium: "mediumStressStrategies",
		zone.High:   "highStressStrategies",
	}
	for z, k := range want {
		if got := Key(z); got != k {
			t.Errorf("Key(%v) = %q, want %q", z, got, k)
		}
	}
}

func TestOutOfRangeZoneSharesLowEntry(t *testing.T) {
	ctx := context.Background()
	backend := newMapBackend()
	s := NewStore(backend, quietLogger())

	// Prime the Low cache so a stale entry would show
	_ = s.Get(ctx, zone.Low)

	if err := s.Set(ctx, zone.Zone(7), List{"stray"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if diff := cmp.Diff(List{"stray"}, s.Get(ctx, zone.Low)); diff != "" {
		t.Errorf("Low after out-of-range Set (-want +got):\n%s", diff)
	}
	if got := string(backend.data["lowStressStrategies"]); got != `["stray"]` {
		t.Errorf("stored low value = %s", got)
	}
	if diff := cmp.Diff(List{"stray"}, s.Get(ctx, zone.Zone(-1))); diff != "" {
		t.Errorf("out-of-range Get (-want +got):\n%s", diff)
	}
}

// Package regulator holds the widget state the UI binds to: the current
// stress level, the tab being viewed, and the strategy lists and editor for
// each zone.
package regulator

import (
	"context"
	"log/slog"

	"github.com/accesstechnology-mike/stressslider/internal/editor"
	"github.com/accesstechnology-mike/stressslider/internal/strategy"
	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

// Indicator is the derived display triple for the current level
type Indicator struct {
	Zone  zone.Zone
	TabID string
	Label string
	Style zone.Style
}

type Regulator struct {
	store  *strategy.Store
	editor *editor.Editor
	logger *slog.Logger

	level zone.Level
	tab   zone.Zone
}

// New creates a regulator at the default level with the tab following it
func New(store *strategy.Store, logger *slog.Logger) *Regulator {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Regulator{
		store:  store,
		editor: editor.New(store, logger),
		logger: logger,
	}
	r.SetLevel(int(zone.DefaultLevel))
	return r
}

// SetLevel moves the slider. The level is pinned to the slider bounds and
// the active tab jumps to the level's zone.
func (r *Regulator) SetLevel(v int) {
	r.level = zone.Clamp(v)
	r.tab = zone.Classify(r.level)
}

// Step moves the slider by delta
func (r *Regulator) Step(delta int) {
	r.SetLevel(int(r.level) + delta)
}

func (r *Regulator) Level() zone.Level { return r.level }

// Zone returns the zone of the current level
func (r *Regulator) Zone() zone.Zone { return zone.Classify(r.level) }

// SelectTab lets the user browse another zone's list without moving the slider
func (r *Regulator) SelectTab(z zone.Zone) {
	if !z.Valid() {
		return
	}
	r.tab = z
}

// ActiveTab returns the zone whose tab is showing
func (r *Regulator) ActiveTab() zone.Zone { return r.tab }

// Indicator returns the label and style for the current level
func (r *Regulator) Indicator() Indicator {
	info := r.Zone().Info()
	return Indicator{
		Zone:  info.Zone,
		TabID: info.TabID,
		Label: info.Label,
		Style: info.Style,
	}
}

// Strategies returns a copy of a zone's list
func (r *Regulator) Strategies(ctx context.Context, z zone.Zone) strategy.List {
	return r.store.Get(ctx, z)
}

// ActiveStrategies returns the list for the current level's zone
func (r *Regulator) ActiveStrategies(ctx context.Context) strategy.List {
	return r.store.Get(ctx, r.Zone())
}

// TabStrategies returns the list for the tab being viewed
func (r *Regulator) TabStrategies(ctx context.Context) strategy.List {
	return r.store.Get(ctx, r.tab)
}

// Editor returns the staged editor
func (r *Regulator) Editor() *editor.Editor { return r.editor }

// ResetTab restores the active tab's list to its defaults
func (r *Regulator) ResetTab(ctx context.Context) error {
	if r.editor.IsOpen() && r.editor.Zone() == r.tab {
		r.editor.Cancel()
	}
	r.logger.Info("resetting strategies", "zone", r.tab.String())
	return r.store.Reset(ctx, r.tab)
}

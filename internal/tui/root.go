package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/accesstechnology-mike/stressslider/internal/regulator"
	"github.com/accesstechnology-mike/stressslider/internal/zone"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeMain   ViewMode = iota // Slider, indicator and strategy tabs
	ViewModeEditor                 // Modal strategy editor
	ViewModeHelp                   // Help overlay
)

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// View state
	viewMode ViewMode

	ctx    context.Context
	reg    *regulator.Regulator
	logger *slog.Logger

	// Editor fields, one per staged entry
	inputs []textinput.Model
	focus  int

	// Reset needs a second press to confirm
	confirmReset bool

	// Transient status line
	status    string
	statusErr bool

	keys  KeyMap
	help  help.Model
	debug DebugPanel
}

// NewRootModel creates the root model around an existing regulator
func NewRootModel(ctx context.Context, reg *regulator.Regulator, logger *slog.Logger, debug DebugPanel) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		viewMode: ViewModeMain,
		ctx:      ctx,
		reg:      reg,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		debug:    debug,
		width:    80,
		height:   24,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages. Every state change completes synchronously here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeInputs()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelEdit()
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewModeEditor:
			return m.updateEditor(msg)
		case ViewModeHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
				m.viewMode = ViewModeMain
			} else if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		default:
			return m.updateMain(msg)
		}
	}

	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than the reset key disarms a pending reset
	if !key.Matches(msg, m.keys.Reset) {
		m.confirmReset = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Lower):
		m.reg.Step(-1)
		m.status = ""

	case key.Matches(msg, m.keys.Raise):
		m.reg.Step(1)
		m.status = ""

	case key.Matches(msg, m.keys.NextTab):
		m.reg.SelectTab(m.reg.ActiveTab().Next())

	case key.Matches(msg, m.keys.PrevTab):
		m.reg.SelectTab(m.reg.ActiveTab().Prev())

	case key.Matches(msg, m.keys.Edit):
		cmd := m.openEditor()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		if !m.confirmReset {
			m.confirmReset = true
			m.setStatus("Press r again to restore the "+m.reg.ActiveTab().Title()+" defaults", false)
			return m, nil
		}
		m.confirmReset = false
		if err := m.reg.ResetTab(m.ctx); err != nil {
			m.setStatus("Reset kept for this session only: "+err.Error(), true)
		} else {
			m.setStatus(m.reg.ActiveTab().Title()+" strategies restored", false)
		}

	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewModeHelp

	default:
		// Digits jump straight to a level
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.reg.SetLevel(int(s[0] - '0'))
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.reg.Editor()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelEdit()
		m.setStatus("Changes discarded", false)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		z := ed.Zone()
		committed, err := ed.Save(m.ctx)
		m.closeEditor()
		if err != nil {
			m.setStatus("Saved for this session only: "+err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("Saved %d %s strategies", len(committed), z.Title()), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if err := ed.Append(); err != nil {
			m.logger.Warn("append failed", "error", err)
			return m, nil
		}
		m.inputs = append(m.inputs, m.newInput(""))
		cmd := m.focusInput(len(m.inputs) - 1)
		return m, cmd

	case key.Matches(msg, m.keys.Remove):
		if len(m.inputs) == 0 {
			return m, nil
		}
		if err := ed.Remove(m.focus); err != nil {
			m.logger.Warn("remove failed", "index", m.focus, "error", err)
			return m, nil
		}
		m.inputs = append(m.inputs[:m.focus], m.inputs[m.focus+1:]...)
		next := m.focus
		if next >= len(m.inputs) {
			next = len(m.inputs) - 1
		}
		cmd := m.focusInput(next)
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			cmd := m.focusInput(m.focus - 1)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus < len(m.inputs)-1 {
			cmd := m.focusInput(m.focus + 1)
			return m, cmd
		}
		return m, nil
	}

	// Everything else is typing into the focused field
	if m.focus < 0 || m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if err := ed.SetText(m.focus, m.inputs[m.focus].Value()); err != nil {
		m.logger.Warn("edit failed", "index", m.focus, "error", err)
	}
	return m, cmd
}

// openEditor stages the active tab's list and builds one field per entry.
// The returned command starts the first field's cursor blinking.
func (m *Model) openEditor() tea.Cmd {
	ed := m.reg.Editor()
	if err := ed.Open(m.ctx, m.reg.ActiveTab()); err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	buf := ed.Buffer()
	m.inputs = make([]textinput.Model, 0, len(buf))
	for _, s := range buf {
		m.inputs = append(m.inputs, m.newInput(s))
	}
	m.focus = -1
	var cmd tea.Cmd
	if len(m.inputs) > 0 {
		cmd = m.focusInput(0)
	}
	m.status = ""
	m.viewMode = ViewModeEditor
	return cmd
}

func (m *Model) cancelEdit() {
	if m.reg.Editor().IsOpen() {
		m.reg.Editor().Cancel()
	}
	m.closeEditor()
}

func (m *Model) closeEditor() {
	m.inputs = nil
	m.focus = -1
	m.viewMode = ViewModeMain
}

func (m *Model) newInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a strategy..."
	ti.Prompt = "• "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 0 // No limit
	ti.Width = m.inputWidth()
	ti.SetValue(value)
	return ti
}

// focusInput moves focus to field i, blurring the rest
func (m *Model) focusInput(i int) tea.Cmd {
	if i < 0 || i >= len(m.inputs) {
		m.focus = -1
		return nil
	}
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) inputWidth() int {
	w := m.width - 16
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resizeInputs() {
	for i := range m.inputs {
		m.inputs[i].Width = m.inputWidth()
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the current view
func (m Model) View() string {
	switch m.viewMode {
	case ViewModeHelp:
		return m.helpView()
	case ViewModeEditor:
		return m.editorView()
	default:
		return m.mainView()
	}
}

// mainView renders the widget card
func (m Model) mainView() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("My Stress Level"))
	b.WriteString("\n\n")
	b.WriteString(m.renderIndicator())
	b.WriteString("\n\n")
	b.WriteString(m.renderSlider())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderStrategies())

	cardWidth := m.width - 2
	if cardWidth < 40 {
		cardWidth = 40
	}
	card := CardStyle.Width(cardWidth - 4).Render(b.String())

	parts := []string{card}
	if m.debug.IsEnabled() {
		parts = append(parts, m.debug.Render(cardWidth, 10))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderIndicator renders the zone label on its gradient
func (m Model) renderIndicator() string {
	ind := m.reg.Indicator()
	return renderIndicator(ind.Label, ind.Style)
}

// renderSlider renders the 1-9 track with a marker at the current level
func (m Model) renderSlider() string {
	const cell = 4
	steps := int(zone.MaxLevel - zone.MinLevel)

	var track, ticks strings.Builder
	for v := zone.MinLevel; v <= zone.MaxLevel; v++ {
		t := float64(v-zone.MinLevel) / float64(steps)
		color := lipgloss.Color(gradientAt(sliderStops, t))

		segment := strings.Repeat("━", cell)
		if v == m.reg.Level() {
			segment = "━━●━"
			track.WriteString(lipgloss.NewStyle().Foreground(ColorFgPrimary).Bold(true).Render(segment))
		} else {
			track.WriteString(lipgloss.NewStyle().Foreground(color).Render(segment))
		}

		label := fmt.Sprintf("  %d ", v)
		if v == m.reg.Level() {
			ticks.WriteString(lipgloss.NewStyle().Foreground(ColorFgPrimary).Bold(true).Render(label))
		} else {
			ticks.WriteString(DimStyle.Render(label))
		}
	}
	return track.String() + "\n" + ticks.String()
}

// renderTabs renders the three zone tabs, highlighting the active one
func (m Model) renderTabs() string {
	var tabs []string
	for _, z := range zone.All() {
		if z == m.reg.ActiveTab() {
			tabs = append(tabs, ActiveTabStyle.
				Foreground(zoneAccent[z]).
				Background(ColorBgHighlight).
				Render(z.Title()))
		} else {
			tabs = append(tabs, TabStyle.Render(z.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStrategies renders the active tab's list
func (m Model) renderStrategies() string {
	z := m.reg.ActiveTab()
	accent := zoneAccent[z]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(z.Title() + " Strategies"))
	b.WriteString("\n")

	list := m.reg.TabStrategies(m.ctx)
	if len(list) == 0 {
		b.WriteString(DimStyle.Render("No strategies yet. Press e to add some."))
		return b.String()
	}
	item := ListItemStyle.BorderForeground(accent).Foreground(ColorFgPrimary)
	for _, s := range list {
		b.WriteString(item.Render(s))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStatusBar renders the status message and key hints
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.status == "":
		status = DimStyle.Render(fmt.Sprintf("Level %d", m.reg.Level()))
	case m.statusErr:
		status = ErrorStyle.Render(m.status)
	default:
		status = SuccessStyle.Render(m.status)
	}

	var hints string
	if m.viewMode == ViewModeEditor {
		hints = m.help.View(editorKeys(m.keys))
	} else {
		hints = m.help.View(m.keys)
	}
	return StatusBarStyle.Render(status + DimStyle.Render(" │ ") + hints)
}

// editorView renders the modal strategy editor
func (m Model) editorView() string {
	ed := m.reg.Editor()
	title := ModalTitleStyle.Render("Edit Strategies for " + ed.Zone().Title())

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(m.inputs) == 0 {
		b.WriteString(DimStyle.Render("No entries. Press ctrl+n to add a strategy."))
		b.WriteString("\n")
	}
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("Blank entries are dropped on save"))

	modal := ModalStyle.Render(b.String())
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, modal)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// helpView renders the help overlay
func (m Model) helpView() string {
	title := HelpTitleStyle.Render("Keyboard Shortcuts")

	var b strings.Builder
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	content := title + "\n\n" + b.String() + HelpDescStyle.Render("Press ? or Esc to close")
	helpBox := HelpStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
	)
}

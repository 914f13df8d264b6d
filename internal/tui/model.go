package tui

import (
	"fmt"
	"strconv"

	"brightd/internal/backlight"
	"brightd/internal/brightness"
	"brightd/internal/config"
	"brightd/internal/log"
	"brightd/internal/tui/common"
	"brightd/internal/tui/messages"
	"brightd/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
)

// rowView is the terminal rendition of a monitor's controls.
type rowView struct {
	label    string
	level    brightness.Level
	fraction float64
}

func (v *rowView) SetLabel(text string)             { v.label = text }
func (v *rowView) SetSlider(level brightness.Level) { v.level = level }
func (v *rowView) SetIndicator(fraction float64)    { v.fraction = fraction }

type Model struct {
	controller *brightness.Controller
	registry   *brightness.Registry
	views      map[int]*rowView

	// position in the registry, not a monitor index
	cursor   int
	showHelp bool

	statusMsg string
	statusErr bool
}

// New initializes the synchronizer against provider and selects the first
// monitor.
func New(cfg *config.Config, provider backlight.Provider) *Model {
	m := &Model{views: make(map[int]*rowView)}

	syncer := brightness.NewSynchronizer(provider, brightness.Clamp(cfg.Levels.Fallback))
	m.registry = syncer.Initialize(func(mon backlight.Monitor, initial brightness.Level) brightness.View {
		v := &rowView{
			label:    brightness.LabelText(mon, initial),
			level:    initial,
			fraction: initial.Fraction(),
		}
		m.views[mon.Index] = v
		return v
	})
	m.controller = brightness.NewController(syncer, cfg)
	return m
}

// NewProgram wraps m in a full-screen bubbletea program.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case messages.ConfigUpdateMsg:
		m.controller.UpdateConfig(msg.Config)
		m.setStatus("Configuration reloaded", false)
	case messages.ErrorMsg:
		m.setStatus(msg.Err.Error(), true)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "k", "up":
		m.moveCursor(-1)
	case "j", "down":
		m.moveCursor(1)
	case "h", "left", "-", "ctrl+down":
		m.report(m.controller.StepDown())
	case "l", "right", "+", "ctrl+up":
		m.report(m.controller.StepUp())
	case "b":
		m.report(m.controller.SetBatterySaver(!m.controller.BatterySaver()))
	case "r":
		m.report(m.controller.Synchronizer().Reconcile(m.controller.Selected()))
	case "R":
		for _, b := range m.registry.All() {
			m.report(m.controller.Synchronizer().Reconcile(b.Monitor.Index))
		}
	case "?":
		m.showHelp = !m.showHelp
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.applyPresetAt(key)
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.registry.Len() {
		return
	}
	m.cursor = next
	m.report(m.controller.SelectMonitor(m.registry.At(next).Monitor.Index))
}

func (m *Model) applyPresetAt(key string) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return
	}
	presets := m.controller.Presets()
	if n < 1 || n > len(presets) {
		m.setStatus(fmt.Sprintf("No preset %d", n), true)
		return
	}
	res, err := m.controller.ApplyPreset(presets[n-1].Name)
	if err != nil {
		log.LogWithError(err).Warn("Preset not applied")
		m.setStatus(err.Error(), true)
		return
	}
	m.report(res)
}

func (m *Model) report(res brightness.Result) {
	if res.OK() {
		m.setStatus("", false)
		return
	}
	m.setStatus(fmt.Sprintf("Monitor %d: hardware did not accept %s", res.Monitor.Index, res.Requested), true)
}

func (m *Model) setStatus(text string, isError bool) {
	m.statusMsg = text
	m.statusErr = isError
}

// Getters

func (m *Model) Rows() []common.Row {
	rows := make([]common.Row, 0, m.registry.Len())
	selected := m.controller.Selected()
	for _, b := range m.registry.All() {
		v := m.views[b.Monitor.Index]
		rows = append(rows, common.Row{
			Label:    v.label,
			Fraction: v.fraction,
			Selected: b.Monitor.Index == selected,
		})
	}
	return rows
}

func (m *Model) Presets() []config.Preset {
	return m.controller.Presets()
}

func (m *Model) BatterySaver() bool {
	return m.controller.BatterySaver()
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Status() string {
	return m.statusMsg
}

func (m *Model) StatusIsError() bool {
	return m.statusErr
}

func (m *Model) Cursor() int {
	return m.cursor
}

// Controller returns the controller driving the model.
func (m *Model) Controller() *brightness.Controller {
	return m.controller
}

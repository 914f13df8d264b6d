package tui

import (
	"fmt"
	"testing"

	"brightd/internal/backlight"
	"brightd/internal/config"
	"brightd/internal/tui/messages"
	"brightd/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoMonitors() *backlight.Memory {
	return backlight.NewMemory(
		backlight.Monitor{Index: 0, Name: "intel_backlight"},
		backlight.Monitor{Index: 1, Name: "ddcci1"},
	)
}

func press(t *testing.T, m *Model, keys ...tea.KeyMsg) *Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(*Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitialization(t *testing.T) {
	m := New(config.NewTestConfig(), twoMonitors())
	require.NotNil(t, m)
	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.Cursor())

	rows := m.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Monitor 0: 50%", rows[0].Label)
	assert.True(t, rows[0].Selected)
	assert.False(t, rows[1].Selected)
	assert.InDelta(t, 0.5, rows[1].Fraction, 1e-9)
}

func TestModelStepKeys(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 55, p.Level(0))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlUp}, runes("l"))
	assert.Equal(t, 65, p.Level(0))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyCtrlDown})
	assert.Equal(t, 55, p.Level(0))
	assert.Equal(t, "Monitor 0: 55%", m.Rows()[0].Label)
	assert.Equal(t, 50, p.Level(1))
}

func TestModelStepClamps(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)
	for i := 0; i < 15; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 100, p.Level(0))
	assert.InDelta(t, 1.0, m.Rows()[0].Fraction, 1e-9)
}

func TestModelMonitorSelection(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)
	m = press(t, m, runes("1"))
	require.Equal(t, 70, p.Level(0))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, 1, m.Controller().Selected())
	assert.Equal(t, 70, p.Level(1), "selecting a monitor applies the current level")
	assert.True(t, m.Rows()[1].Selected)

	// cursor stays in bounds
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())
	m = press(t, m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModelPresets(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)

	m = press(t, m, runes("2"))
	assert.Equal(t, 30, p.Level(0))
	assert.Empty(t, m.Status())

	m = press(t, m, runes("9"))
	assert.Equal(t, 30, p.Level(0))
	assert.Equal(t, "No preset 9", m.Status())
	assert.True(t, m.StatusIsError())
}

func TestModelBatterySaver(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)
	m = press(t, m, runes("3"))
	require.Equal(t, 90, p.Level(0))

	m = press(t, m, runes("b"))
	assert.True(t, m.BatterySaver())
	assert.Equal(t, 20, p.Level(0))

	m = press(t, m, runes("b"))
	assert.False(t, m.BatterySaver())
	assert.Equal(t, 50, p.Level(0))
}

func TestModelFailedWrite(t *testing.T) {
	p := twoMonitors()
	p.FailSet(0, fmt.Errorf("permission denied"))
	m := New(config.NewTestConfig(), p)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 50, p.Level(0))
	assert.Equal(t, "Monitor 0: 55%", m.Rows()[0].Label)
	assert.Equal(t, "Monitor 0: hardware did not accept 55%", m.Status())

	// reconcile shows what the hardware really has
	p.FailSet(0, nil)
	m = press(t, m, runes("r"))
	assert.Equal(t, "Monitor 0: 50%", m.Rows()[0].Label)
	assert.Empty(t, m.Status())
}

func TestModelReconcileAll(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)
	p.SetLevel(0, 35)
	p.SetLevel(1, 15)

	m = press(t, m, runes("r"))
	assert.Equal(t, "Monitor 1: 50%", m.Rows()[1].Label, "r only re-reads the selected monitor")

	m = press(t, m, runes("R"))
	assert.Equal(t, "Monitor 0: 35%", m.Rows()[0].Label)
	assert.Equal(t, "Monitor 1: 15%", m.Rows()[1].Label)
}

func TestModelConfigUpdate(t *testing.T) {
	p := twoMonitors()
	m := New(config.NewTestConfig(), p)

	cfg := config.NewTestConfig()
	cfg.Presets = []config.Preset{{Name: "Dim", Level: 10}}
	cfg.Levels.Step = 10
	next, _ := m.Update(messages.ConfigUpdateMsg{Config: cfg})
	m = next.(*Model)
	assert.Equal(t, "Configuration reloaded", m.Status())

	m = press(t, m, runes("1"))
	assert.Equal(t, 10, p.Level(0))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 20, p.Level(0))
}

func TestModelErrorMsg(t *testing.T) {
	m := New(config.NewTestConfig(), twoMonitors())
	next, _ := m.Update(messages.ErrorMsg{Err: fmt.Errorf("config watcher stopped")})
	assert.Equal(t, "config watcher stopped", next.(*Model).Status())
	assert.True(t, next.(*Model).StatusIsError())
}

func TestModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := New(config.NewTestConfig(), twoMonitors())
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModelView(t *testing.T) {
	m := New(config.NewTestConfig(), twoMonitors())
	m = press(t, m, runes("?"))
	assert.True(t, m.ShowHelp())

	out := testutils.StripANSI(m.View())
	assert.Contains(t, out, "> Monitor 0: 50%")
	assert.Contains(t, out, "  Monitor 1: 50%")
	assert.Contains(t, out, "Reading 70%")
	assert.Contains(t, out, "re-read brightness from hardware")
}

func TestModelSyntheticMonitor(t *testing.T) {
	p := backlight.NewMemory()
	p.FailList(fmt.Errorf("no backlight"))
	m := New(config.NewTestConfig(), p)

	rows := m.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Monitor 0: 50%", rows[0].Label)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Monitor 0: 55%", m.Rows()[0].Label)
	assert.True(t, m.StatusIsError())
}

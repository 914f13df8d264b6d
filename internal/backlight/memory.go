package backlight

import (
	"sync"

	"brightd/internal/errors"
)

// Memory is an in-process provider used by tests and --simulate. Failures can
// be injected per operation and per monitor.
type Memory struct {
	mu       sync.Mutex
	monitors []Monitor
	levels   map[int]int
	listErr  error
	getErr   map[int]error
	setErr   map[int]error
	sets     []int
}

// NewMemory creates a simulator with the given monitors, all at 50%.
func NewMemory(monitors ...Monitor) *Memory {
	m := &Memory{
		monitors: monitors,
		levels:   make(map[int]int, len(monitors)),
		getErr:   make(map[int]error),
		setErr:   make(map[int]error),
	}
	for _, mon := range monitors {
		m.levels[mon.Index] = 50
	}
	return m
}

// SetLevel changes the simulated hardware level directly.
func (m *Memory) SetLevel(index, level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[index] = level
}

// Level returns the simulated hardware level.
func (m *Memory) Level(index int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[index]
}

// Sets returns how many successful writes were made.
func (m *Memory) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sets)
}

// FailList makes ListMonitors return err.
func (m *Memory) FailList(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// FailGet makes Brightness for index return err; nil clears it.
func (m *Memory) FailGet(index int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr[index] = err
}

// FailSet makes SetBrightness for index return err; nil clears it.
func (m *Memory) FailSet(index int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr[index] = err
}

func (m *Memory) ListMonitors() ([]Monitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, errors.NewBrightnessError("cannot list monitors", -1, errors.MonitorEnumerationFailed, m.listErr)
	}
	out := make([]Monitor, len(m.monitors))
	copy(out, m.monitors)
	return out, nil
}

func (m *Memory) known(mon Monitor) bool {
	_, ok := m.levels[mon.Index]
	return ok
}

func (m *Memory) Brightness(mon Monitor) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getErr[mon.Index]; err != nil {
		return 0, errors.NewBrightnessError("cannot read brightness", mon.Index, errors.BrightnessQueryFailed, err)
	}
	if !m.known(mon) {
		return 0, errors.NewBrightnessError("cannot read brightness", mon.Index, errors.MonitorNotFound, nil)
	}
	return m.levels[mon.Index], nil
}

func (m *Memory) SetBrightness(mon Monitor, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.setErr[mon.Index]; err != nil {
		return errors.NewBrightnessError("cannot set brightness", mon.Index, errors.BrightnessSetFailed, err)
	}
	if !m.known(mon) {
		return errors.NewBrightnessError("cannot set brightness", mon.Index, errors.MonitorNotFound, nil)
	}
	m.levels[mon.Index] = clamp(level)
	m.sets = append(m.sets, level)
	return nil
}

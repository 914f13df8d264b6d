package brightness

import (
	"sync"

	"brightd/internal/config"
	"brightd/internal/errors"
	"brightd/internal/log"
)

// Controller drives a single selected monitor: slider moves, named presets,
// battery saver and keyboard deltas all funnel into Synchronizer.SetLevel.
type Controller struct {
	syncer *Synchronizer

	mu           sync.Mutex
	selected     int
	presets      []config.Preset
	step         int
	defaultLevel Level
	saverLevel   Level
	saver        bool
}

// NewController wraps an initialized synchronizer. The first bound monitor
// starts out selected.
func NewController(s *Synchronizer, cfg *config.Config) *Controller {
	c := &Controller{syncer: s}
	if reg := s.Registry(); reg != nil && reg.Len() > 0 {
		c.selected = reg.At(0).Monitor.Index
	}
	c.UpdateConfig(cfg)
	return c
}

// UpdateConfig applies presets and level settings from cfg. Used at startup
// and when the config file is reloaded.
func (c *Controller) UpdateConfig(cfg *config.Config) {
	presets := make([]config.Preset, len(cfg.Presets))
	copy(presets, cfg.Presets)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.presets = presets
	c.step = cfg.Levels.Step
	c.defaultLevel = Clamp(cfg.Levels.Default)
	c.saverLevel = Clamp(cfg.Levels.BatterySaver)
}

// Synchronizer returns the wrapped synchronizer.
func (c *Controller) Synchronizer() *Synchronizer {
	return c.syncer
}

// Selected returns the index of the selected monitor.
func (c *Controller) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Level returns the last requested level of the selected monitor.
func (c *Controller) Level() Level {
	if b, ok := c.selectedBinding(); ok {
		return b.Level()
	}
	return MinLevel
}

func (c *Controller) selectedBinding() (*Binding, bool) {
	reg := c.syncer.Registry()
	if reg == nil {
		return nil, false
	}
	return reg.Get(c.Selected())
}

// Step returns the keyboard shortcut delta.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Presets returns the configured presets in display order.
func (c *Controller) Presets() []config.Preset {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]config.Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// BatterySaver reports whether battery saver is on.
func (c *Controller) BatterySaver() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saver
}

// SetLevel applies level to the selected monitor.
func (c *Controller) SetLevel(level int) Result {
	return c.syncer.SetLevel(c.Selected(), level)
}

// ApplyPreset sets the selected monitor to the named preset's level.
func (c *Controller) ApplyPreset(name string) (Result, error) {
	c.mu.Lock()
	level, found := 0, false
	for _, p := range c.presets {
		if p.Name == name {
			level, found = p.Level, true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return Result{}, errors.NewPresetError(name)
	}
	log.LogWithFields(log.F("preset", name), log.F("level", level)).Debug("Applying preset")
	return c.SetLevel(level), nil
}

// SetBatterySaver forces the battery saver level when on. Turning it off
// restores the configured default level, not the level before it was
// turned on.
func (c *Controller) SetBatterySaver(on bool) Result {
	c.mu.Lock()
	c.saver = on
	level := c.defaultLevel
	if on {
		level = c.saverLevel
	}
	c.mu.Unlock()

	return c.SetLevel(int(level))
}

// AdjustByDelta moves the selected monitor by delta, clamped to [0,100].
func (c *Controller) AdjustByDelta(delta int) Result {
	return c.SetLevel(int(Clamp(int(c.Level()) + delta)))
}

// StepUp and StepDown adjust by the configured keyboard step.
func (c *Controller) StepUp() Result   { return c.AdjustByDelta(c.Step()) }
func (c *Controller) StepDown() Result { return c.AdjustByDelta(-c.Step()) }

// SelectMonitor switches the selected monitor and applies the current level
// to it.
func (c *Controller) SelectMonitor(index int) Result {
	current := c.Level()
	reg := c.syncer.Registry()
	if reg == nil {
		return Result{Requested: current, Err: errors.NewBrightnessError("synchronizer not initialized", index, errors.MonitorNotFound, nil)}
	}
	if _, ok := reg.Get(index); !ok {
		return Result{Requested: current, Err: errors.NewBrightnessError("no such monitor", index, errors.MonitorNotFound, nil)}
	}

	c.mu.Lock()
	c.selected = index
	c.mu.Unlock()

	return c.syncer.SetLevel(index, int(current))
}

package brightness

import (
	"sync"

	"brightd/internal/backlight"
	"brightd/internal/errors"
	"brightd/internal/log"
)

// DefaultFallbackLevel is shown for a monitor whose initial query fails.
const DefaultFallbackLevel Level = 50

// Result reports the outcome of a brightness change. The bound view always
// shows Requested; Err tells the caller whether the hardware followed.
type Result struct {
	Monitor   backlight.Monitor
	Requested Level
	Err       error
}

// OK reports whether the provider accepted the change.
func (r Result) OK() bool {
	return r.Err == nil
}

// Synchronizer mediates between the per-monitor controls and a
// backlight.Provider.
type Synchronizer struct {
	provider backlight.Provider
	fallback Level
	logger   *log.Logger

	mu       sync.Mutex
	registry *Registry
}

// NewSynchronizer creates a synchronizer. fallback is the level displayed
// when a monitor cannot be queried at startup.
func NewSynchronizer(provider backlight.Provider, fallback Level) *Synchronizer {
	return &Synchronizer{
		provider: provider,
		fallback: Clamp(int(fallback)),
		logger:   log.Default().With(log.F("component", "synchronizer")),
	}
}

// Initialize enumerates monitors, reads each one's level and builds one
// binding per monitor. When enumeration fails, a single synthetic monitor 0
// at the fallback level is bound instead. Calling it again returns the
// existing registry.
func (s *Synchronizer) Initialize(factory ViewFactory) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registry != nil {
		return s.registry
	}

	monitors, err := s.provider.ListMonitors()
	synthetic := false
	if err != nil || len(monitors) == 0 {
		if err != nil {
			s.logger.WithError(err).Warn("Monitor enumeration failed, using synthetic monitor 0")
		} else {
			s.logger.Warn("No monitors reported, using synthetic monitor 0")
		}
		monitors = []backlight.Monitor{{Index: 0}}
		synthetic = true
	}

	bindings := make([]*Binding, 0, len(monitors))
	for _, m := range monitors {
		level := s.fallback
		if !synthetic {
			if current, err := s.provider.Brightness(m); err != nil {
				s.logger.WithError(err).Warnf("Cannot read %s, showing %s", m, s.fallback)
			} else {
				level = Clamp(current)
			}
		}

		b := &Binding{Monitor: m, level: level}
		if factory != nil {
			b.view = factory(m, level)
		}
		b.show(level)
		bindings = append(bindings, b)
		s.logger.With(log.F("monitor", m.Index), log.F("device", m.Name), log.F("level", int(level))).Debug("Bound monitor")
	}

	s.registry = newRegistry(bindings, synthetic)
	return s.registry
}

// Registry returns the registry built by Initialize, or nil before it.
func (s *Synchronizer) Registry() *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

func (s *Synchronizer) binding(index int) (*Binding, error) {
	reg := s.Registry()
	if reg == nil {
		return nil, errors.NewBrightnessError("synchronizer not initialized", index, errors.MonitorNotFound, nil)
	}
	b, ok := reg.Get(index)
	if !ok {
		return nil, errors.NewBrightnessError("no such monitor", index, errors.MonitorNotFound, nil)
	}
	return b, nil
}

// SetLevel clamps level, asks the provider to apply it to the monitor and
// shows the requested level on the bound view whether or not the provider
// succeeded. Provider failures are logged and returned in the Result.
func (s *Synchronizer) SetLevel(index int, level int) Result {
	l := Clamp(level)
	b, err := s.binding(index)
	if err != nil {
		return Result{Monitor: backlight.Monitor{Index: index}, Requested: l, Err: err}
	}

	res := Result{Monitor: b.Monitor, Requested: l}
	if err := s.provider.SetBrightness(b.Monitor, int(l)); err != nil {
		res.Err = err
		s.logger.WithError(err).Warnf("Brightness change to %s not applied", l)
	}
	b.show(l)
	return res
}

// Reconcile re-reads the hardware level of a monitor and shows it, undoing
// any divergence left by failed writes. On query failure the view is left
// as is.
func (s *Synchronizer) Reconcile(index int) Result {
	b, err := s.binding(index)
	if err != nil {
		return Result{Monitor: backlight.Monitor{Index: index}, Err: err}
	}

	current, err := s.provider.Brightness(b.Monitor)
	if err != nil {
		s.logger.WithError(err).Warn("Reconcile failed")
		return Result{Monitor: b.Monitor, Requested: b.Level(), Err: err}
	}
	l := Clamp(current)
	b.show(l)
	return Result{Monitor: b.Monitor, Requested: l}
}

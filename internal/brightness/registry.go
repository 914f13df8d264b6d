package brightness

import (
	"sync"

	"brightd/internal/backlight"
)

// View is the per-monitor UI surface a Binding drives: a text label, a
// slider and a secondary indicator (ring, bar or gauge).
type View interface {
	SetLabel(text string)
	SetSlider(level Level)
	SetIndicator(fraction float64)
}

// ViewFactory builds the View for a monitor during initialization.
type ViewFactory func(m backlight.Monitor, initial Level) View

// Binding ties one monitor to its view. It is created once at startup and
// never reassigned.
type Binding struct {
	Monitor backlight.Monitor

	view  View
	mu    sync.Mutex
	level Level
}

// Level returns the last requested level for the monitor.
func (b *Binding) Level() Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

// Label returns the current label text.
func (b *Binding) Label() string {
	return LabelText(b.Monitor, b.Level())
}

// View returns the bound view.
func (b *Binding) View() View {
	return b.view
}

func (b *Binding) show(l Level) {
	b.mu.Lock()
	b.level = l
	b.mu.Unlock()

	if b.view == nil {
		return
	}
	b.view.SetLabel(LabelText(b.Monitor, l))
	b.view.SetSlider(l)
	b.view.SetIndicator(l.Fraction())
}

// Registry is the ordered set of bindings keyed by monitor index. Its
// membership is fixed once built.
type Registry struct {
	bindings  []*Binding
	byIndex   map[int]*Binding
	synthetic bool
}

func newRegistry(bindings []*Binding, synthetic bool) *Registry {
	r := &Registry{
		bindings:  bindings,
		byIndex:   make(map[int]*Binding, len(bindings)),
		synthetic: synthetic,
	}
	for _, b := range bindings {
		r.byIndex[b.Monitor.Index] = b
	}
	return r
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}

// Get returns the binding for a monitor index.
func (r *Registry) Get(index int) (*Binding, bool) {
	b, ok := r.byIndex[index]
	return b, ok
}

// At returns the i-th binding in enumeration order.
func (r *Registry) At(i int) *Binding {
	return r.bindings[i]
}

// All returns the bindings in enumeration order.
func (r *Registry) All() []*Binding {
	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Monitors returns the bound monitors in enumeration order.
func (r *Registry) Monitors() []backlight.Monitor {
	out := make([]backlight.Monitor, len(r.bindings))
	for i, b := range r.bindings {
		out[i] = b.Monitor
	}
	return out
}

// Synthetic reports whether enumeration failed and the registry holds the
// placeholder monitor 0.
func (r *Registry) Synthetic() bool {
	return r.synthetic
}

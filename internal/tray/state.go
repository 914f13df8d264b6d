// Package tray holds the window state shared between the main window and the
// tray icon, and the tray's Open/Exit menu.
package tray

import (
	"sync"

	"brightd/internal/log"
	"brightd/internal/screen"
)

// Window is the part of the main window the tray may touch.
type Window interface {
	Show()
	Hide()
	Resize(width, height int)
	Close()
}

// State is the handle the tray receives at startup. All window mutation from
// the tray goes through it.
type State struct {
	mu       sync.Mutex
	win      Window
	visible  bool
	geometry screen.Geometry
	quitOnce sync.Once
	onQuit   []func()
}

// NewState wraps win. visible is the window's initial visibility.
func NewState(win Window, visible bool) *State {
	return &State{win: win, visible: visible}
}

// OnQuit registers a function run once when Quit is called, before the
// window closes.
func (s *State) OnQuit(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onQuit = append(s.onQuit, fn)
}

// Visible reports whether the window is shown.
func (s *State) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Geometry returns the last geometry applied by Reposition.
func (s *State) Geometry() screen.Geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometry
}

func (s *State) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
	s.win.Show()
}

func (s *State) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	s.win.Hide()
}

// Toggle flips visibility and returns the new state.
func (s *State) Toggle() bool {
	if s.Visible() {
		s.Hide()
		return false
	}
	s.Show()
	return true
}

// Reposition applies g to the window.
func (s *State) Reposition(g screen.Geometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = g
	s.win.Resize(g.Width, g.Height)
	log.Debugf("Window geometry %dx%d at %d,%d", g.Width, g.Height, g.X, g.Y)
}

// Quit runs the quit hooks and closes the window. Later calls do nothing.
func (s *State) Quit() {
	s.quitOnce.Do(func() {
		s.mu.Lock()
		hooks := append([]func(){}, s.onQuit...)
		s.visible = false
		s.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}
		s.win.Close()
	})
}

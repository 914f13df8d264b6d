package backlight

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	logindDest          = "org.freedesktop.login1"
	logindSessionPath   = "/org/freedesktop/login1/session/auto"
	logindSetBrightness = "org.freedesktop.login1.Session.SetBrightness"
)

// busCaller is the part of dbus.BusObject the writer needs.
type busCaller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// LogindWriter asks systemd-logind to set the brightness on behalf of the
// current session, which works for unprivileged desktop users.
type LogindWriter struct {
	mu      sync.Mutex
	session busCaller
	connect func() (busCaller, error)
}

// NewLogindWriter creates a writer that connects to the system bus on first
// use.
func NewLogindWriter() *LogindWriter {
	return &LogindWriter{connect: connectLogind}
}

func connectLogind() (busCaller, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	return conn.Object(logindDest, dbus.ObjectPath(logindSessionPath)), nil
}

func (w *LogindWriter) object() (busCaller, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session != nil {
		return w.session, nil
	}
	obj, err := w.connect()
	if err != nil {
		return nil, err
	}
	w.session = obj
	return obj, nil
}

func (w *LogindWriter) Write(dev Device, raw int) error {
	obj, err := w.object()
	if err != nil {
		return err
	}
	if raw < 0 {
		raw = 0
	}
	call := obj.Call(logindSetBrightness, 0, "backlight", dev.Name, uint32(raw))
	if call.Err != nil {
		return fmt.Errorf("logind SetBrightness %s: %w", dev.Name, call.Err)
	}
	return nil
}

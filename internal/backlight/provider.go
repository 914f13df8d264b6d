// Package backlight talks to the brightness hardware. It enumerates backlight
// devices, reads their level as a percentage and writes new levels through a
// pluggable writer (direct sysfs, systemd-logind over D-Bus, or brightnessctl).
package backlight

import (
	"fmt"

	"brightd/internal/config"
)

// Monitor identifies one display whose backlight can be adjusted. Index is
// the position in enumeration order; Name is the provider's device id.
type Monitor struct {
	Index int
	Name  string
}

func (m Monitor) String() string {
	if m.Name == "" {
		return fmt.Sprintf("monitor %d", m.Index)
	}
	return fmt.Sprintf("monitor %d (%s)", m.Index, m.Name)
}

// Provider is the brightness API the rest of brightd depends on. Levels are
// percentages in [0,100]. Every call may fail with a provider error.
type Provider interface {
	ListMonitors() ([]Monitor, error)
	Brightness(m Monitor) (int, error)
	SetBrightness(m Monitor, level int) error
}

// New builds the provider selected by cfg.Backend.
func New(cfg *config.Config) (Provider, error) {
	filter, err := NewDeviceFilter(cfg.Devices)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendSysfs:
		return NewSysfs(cfg.BacklightDir, filter, FileWriter{}), nil
	case config.BackendLogind:
		return NewSysfs(cfg.BacklightDir, filter, NewLogindWriter()), nil
	case config.BackendBrightnessctl:
		return NewSysfs(cfg.BacklightDir, filter, NewCommandWriter()), nil
	case config.BackendSimulate:
		return NewMemory(
			Monitor{Index: 0, Name: "sim-internal"},
			Monitor{Index: 1, Name: "sim-external"},
		), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// ToPercent scales a raw device value to a percentage, rounding to nearest.
func ToPercent(raw, maxRaw int) int {
	if maxRaw <= 0 {
		return 0
	}
	p := (raw*100 + maxRaw/2) / maxRaw
	return clamp(p)
}

// ToRaw scales a percentage to a raw device value, rounding to nearest.
func ToRaw(percent, maxRaw int) int {
	percent = clamp(percent)
	return (percent*maxRaw + 50) / 100
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

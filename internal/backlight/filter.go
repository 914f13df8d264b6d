package backlight

import (
	"brightd/internal/errors"

	"github.com/gobwas/glob"
)

// DeviceFilter selects backlight devices by name using shell-style globs.
// An empty filter matches every device.
type DeviceFilter struct {
	patterns []glob.Glob
}

// NewDeviceFilter compiles patterns such as "intel_*" or "{amdgpu,radeon}_bl*".
func NewDeviceFilter(patterns []string) (*DeviceFilter, error) {
	f := &DeviceFilter{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid device pattern", p, errors.InvalidConfig, err)
		}
		f.patterns = append(f.patterns, g)
	}
	return f, nil
}

// Match reports whether name passes the filter.
func (f *DeviceFilter) Match(name string) bool {
	if f == nil || len(f.patterns) == 0 {
		return true
	}
	for _, g := range f.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

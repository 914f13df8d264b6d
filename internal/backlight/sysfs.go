package backlight

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"brightd/internal/errors"
	"brightd/internal/log"
)

// Device is a backlight directory under the sysfs class root.
type Device struct {
	Name string
	Path string
}

// Writer applies a raw brightness value to a device.
type Writer interface {
	Write(dev Device, raw int) error
}

// Sysfs reads levels from /sys/class/backlight and writes them through a
// Writer.
type Sysfs struct {
	root   string
	filter *DeviceFilter
	writer Writer
}

// NewSysfs creates a provider rooted at root (normally /sys/class/backlight).
func NewSysfs(root string, filter *DeviceFilter, writer Writer) *Sysfs {
	if filter == nil {
		filter = &DeviceFilter{}
	}
	if writer == nil {
		writer = FileWriter{}
	}
	return &Sysfs{root: root, filter: filter, writer: writer}
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// ListMonitors returns the matching devices sorted by name.
func (s *Sysfs) ListMonitors() ([]Monitor, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, "*"))
	if err != nil {
		return nil, errors.NewBrightnessError("cannot list backlight devices", -1, errors.MonitorEnumerationFailed, err)
	}
	sort.Strings(paths)

	var monitors []Monitor
	for _, p := range paths {
		name := filepath.Base(p)
		if !s.filter.Match(name) {
			log.Debugf("Skipping backlight device %s (filtered)", name)
			continue
		}
		if _, err := os.Stat(filepath.Join(p, "max_brightness")); err != nil {
			continue
		}
		monitors = append(monitors, Monitor{Index: len(monitors), Name: name})
	}
	if len(monitors) == 0 {
		return nil, errors.NewBrightnessError("no backlight devices found in "+s.root, -1, errors.MonitorEnumerationFailed, nil)
	}
	return monitors, nil
}

func (s *Sysfs) device(m Monitor) Device {
	return Device{Name: m.Name, Path: filepath.Join(s.root, m.Name)}
}

func (s *Sysfs) maxBrightness(m Monitor) (int, error) {
	maxVal, err := readInt(filepath.Join(s.device(m).Path, "max_brightness"))
	if err != nil {
		return 0, err
	}
	if maxVal <= 0 {
		return 0, errors.Newf("invalid max_brightness value %d", maxVal)
	}
	return maxVal, nil
}

// Brightness reads the current level of m as a percentage.
func (s *Sysfs) Brightness(m Monitor) (int, error) {
	maxVal, err := s.maxBrightness(m)
	if err != nil {
		return 0, errors.NewBrightnessError("cannot read brightness", m.Index, errors.BrightnessQueryFailed, err)
	}
	current, err := readInt(filepath.Join(s.device(m).Path, "brightness"))
	if err != nil {
		return 0, errors.NewBrightnessError("cannot read brightness", m.Index, errors.BrightnessQueryFailed, err)
	}
	return ToPercent(current, maxVal), nil
}

// SetBrightness scales level to the device range and hands it to the writer.
func (s *Sysfs) SetBrightness(m Monitor, level int) error {
	maxVal, err := s.maxBrightness(m)
	if err != nil {
		return errors.NewBrightnessError("cannot set brightness", m.Index, errors.BrightnessSetFailed, err)
	}
	raw := ToRaw(level, maxVal)
	if err := s.writer.Write(s.device(m), raw); err != nil {
		return errors.NewBrightnessError("cannot set brightness", m.Index, errors.BrightnessSetFailed, err)
	}
	log.LogWithFields(log.F("device", m.Name), log.F("raw", raw), log.F("max", maxVal)).Debug("Backlight written")
	return nil
}

// FileWriter writes the raw value straight into the device's brightness file.
// This needs write access to sysfs (root or a udev rule).
type FileWriter struct{}

func (FileWriter) Write(dev Device, raw int) error {
	return os.WriteFile(filepath.Join(dev.Path, "brightness"), []byte(strconv.Itoa(raw)), 0644)
}

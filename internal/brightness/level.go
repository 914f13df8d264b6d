// Package brightness keeps the brightness shown in the UI in step with the
// backlight hardware. A Synchronizer owns one Binding per monitor; a
// Controller adds the single-monitor conveniences (presets, battery saver,
// keyboard deltas) on top of it.
package brightness

import (
	"fmt"

	"brightd/internal/backlight"
)

// Level is a brightness percentage in [MinLevel, MaxLevel].
type Level int

const (
	MinLevel Level = 0
	MaxLevel Level = 100
)

// Clamp converts v to a Level, saturating at the bounds.
func Clamp(v int) Level {
	if v < int(MinLevel) {
		return MinLevel
	}
	if v > int(MaxLevel) {
		return MaxLevel
	}
	return Level(v)
}

// Fraction returns the level in [0,1], as used by progress indicators.
func (l Level) Fraction() float64 {
	return float64(l) / float64(MaxLevel)
}

func (l Level) String() string {
	return fmt.Sprintf("%d%%", int(l))
}

// LabelText is the text shown next to a monitor's slider.
func LabelText(m backlight.Monitor, l Level) string {
	return fmt.Sprintf("Monitor %d: %d%%", m.Index, int(l))
}

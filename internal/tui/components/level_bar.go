package components

import (
	"github.com/charmbracelet/bubbles/progress"
)

// DefaultBarWidth is the width of a level bar in cells, percentage included.
const DefaultBarWidth = 40

// LevelBar renders a brightness fraction as a gradient progress bar.
type LevelBar struct {
	bar progress.Model
}

func NewLevelBar(width int) *LevelBar {
	if width <= 0 {
		width = DefaultBarWidth
	}
	return &LevelBar{
		bar: progress.New(progress.WithGradient("#5A56E0", "#FFC400"), progress.WithWidth(width)),
	}
}

// View renders fraction, clamped to [0,1].
func (b *LevelBar) View(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return b.bar.ViewAs(fraction)
}

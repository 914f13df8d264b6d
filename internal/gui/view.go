//go:build !nogui

package gui

import (
	"brightd/internal/backlight"
	"brightd/internal/brightness"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// monitorView is the label, slider and progress indicator bound to one
// monitor. It implements brightness.View.
type monitorView struct {
	monitor   backlight.Monitor
	label     *widget.Label
	slider    *widget.Slider
	indicator *widget.ProgressBar
	content   fyne.CanvasObject

	// set while the synchronizer moves the slider so the resulting
	// OnChanged is not treated as a user drag
	updating bool
}

func newMonitorView(m backlight.Monitor, initial brightness.Level, onSlide func(index, level int)) *monitorView {
	v := &monitorView{monitor: m}

	v.label = widget.NewLabelWithStyle(brightness.LabelText(m, initial), fyne.TextAlignCenter, fyne.TextStyle{})

	v.slider = widget.NewSlider(float64(brightness.MinLevel), float64(brightness.MaxLevel))
	v.slider.Step = 1
	v.slider.Value = float64(initial)
	v.slider.OnChanged = func(value float64) {
		if v.updating {
			return
		}
		onSlide(m.Index, int(value))
	}

	v.indicator = widget.NewProgressBar()
	v.indicator.TextFormatter = func() string {
		return brightness.Level(int(v.indicator.Value*100 + 0.5)).String()
	}
	v.indicator.SetValue(initial.Fraction())

	v.content = container.NewVBox(v.label, v.slider, v.indicator)
	return v
}

func (v *monitorView) SetLabel(text string) {
	v.label.SetText(text)
}

func (v *monitorView) SetSlider(level brightness.Level) {
	v.updating = true
	v.slider.SetValue(float64(level))
	v.updating = false
}

func (v *monitorView) SetIndicator(fraction float64) {
	v.indicator.SetValue(fraction)
}

package common

import "brightd/internal/config"

// Row is one monitor line as the views render it.
type Row struct {
	Label    string
	Fraction float64
	Selected bool
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Rows() []Row
	Presets() []config.Preset
	BatterySaver() bool
	ShowHelp() bool
	Status() string
	StatusIsError() bool
}

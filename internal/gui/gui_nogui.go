//go:build nogui

package gui

import (
	"brightd/internal/backlight"
	"brightd/internal/config"
	"brightd/internal/errors"
)

// Interface defines the contract for GUI operations. ReloadConfig and
// ShowReloadError are safe to call from any goroutine.
type Interface interface {
	Run()
	ReloadConfig(cfg *config.Config)
	ShowReloadError(err error)
}

// StartGUI is a stub implementation for builds with GUI disabled
func StartGUI(cfg *config.Config, provider backlight.Provider, onCreate func(Interface)) error {
	return errors.New("GUI not available in this build, use the tui command")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}

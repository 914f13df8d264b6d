//go:build !nogui

package gui

import (
	"brightd/internal/backlight"
	"brightd/internal/config"

	"fyne.io/fyne/v2/app"
)

// AppID identifies the application to the desktop.
const AppID = "io.brightd.controller"

// Interface defines the contract for GUI operations. ReloadConfig and
// ShowReloadError are safe to call from any goroutine.
type Interface interface {
	Run()
	ReloadConfig(cfg *config.Config)
	ShowReloadError(err error)
}

// StartGUI opens the controller window and blocks until the user exits
// from the tray.
func StartGUI(cfg *config.Config, provider backlight.Provider, onCreate func(Interface)) error {
	a := NewApp(app.NewWithID(AppID), cfg, provider)
	if onCreate != nil {
		onCreate(a)
	}
	a.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

//go:build !nogui

package gui

import (
	"fmt"
	"strconv"

	"brightd/internal/config"
	"brightd/internal/errors"
	"brightd/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettings opens the level settings dialog.
func (a *App) showSettings() {
	form, apply := a.newSettingsForm()
	dialog.ShowCustomConfirm("Settings", "Save", "Cancel", form, func(save bool) {
		if !save {
			return
		}
		if err := apply(); err != nil {
			a.ShowError("Settings not saved", err)
			return
		}
		a.ShowInfo("Settings saved")
	}, a.mainWindow)
}

type levelField struct {
	label string
	param string
	entry *widget.Entry
	dst   *int
}

// newSettingsForm builds the form and the function that validates, saves and
// applies its values. Nothing changes if any value is rejected.
func (a *App) newSettingsForm() (*widget.Form, func() error) {
	updated := *a.cfg

	fields := []levelField{
		{label: "Keyboard step", param: "levels.step", dst: &updated.Levels.Step},
		{label: "Default level", param: "levels.default", dst: &updated.Levels.Default},
		{label: "Battery saver level", param: "levels.battery_saver", dst: &updated.Levels.BatterySaver},
	}

	form := widget.NewForm()
	for i := range fields {
		f := &fields[i]
		f.entry = widget.NewEntry()
		f.entry.SetText(strconv.Itoa(*f.dst))
		form.Append(f.label, f.entry)
	}

	apply := func() error {
		for _, f := range fields {
			v, err := strconv.Atoi(f.entry.Text)
			if err != nil {
				return errors.NewConfigError(f.label+" must be a number", f.param, errors.InvalidConfig, err)
			}
			*f.dst = v
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := a.saveConfig(&updated); err != nil {
			return err
		}
		a.UpdateConfig(&updated)
		return nil
	}
	return form, apply
}

// saveConfig writes cfg to the file it was loaded from, or the default path.
func (a *App) saveConfig(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return errors.Wrap(err, "failed to save configuration")
	}
	log.Infof("Configuration saved")
	return nil
}

// ShowError displays an error dialog
func (a *App) ShowError(message string, err error) {
	log.Errorf("%s: %v", message, err)
	dialog.ShowError(fmt.Errorf("%s: %w", message, err), a.mainWindow)
}

// ShowInfo displays an information message
func (a *App) ShowInfo(message string) {
	log.Info(message)
	dialog.ShowInformation("Info", message, a.mainWindow)
}

// showNotification shows a desktop notification
func (a *App) showNotification(title, message string) {
	if a.fyneApp != nil {
		a.fyneApp.SendNotification(fyne.NewNotification(title, message))
	}
}

package main

import (
	"brightd/internal/backlight"
	"brightd/internal/config"
	"brightd/internal/gui"
	"brightd/internal/log"

	"github.com/spf13/cobra"
)

// runGUI launches the tray window and blocks until Exit.
func runGUI(cfg *config.Config) error {
	provider, err := backlight.New(cfg)
	if err != nil {
		return err
	}

	var stop func()
	defer func() {
		if stop != nil {
			stop()
		}
	}()

	log.Infof("Starting tray window (backend %s)", cfg.Backend)
	return gui.StartGUI(cfg, provider, func(ui gui.Interface) {
		stop = watchConfig(cfg, ui.ReloadConfig, ui.ShowReloadError)
	})
}

// NewGUICmd creates the GUI command for the CLI
func NewGUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the tray window (default)",
		Long:  `Launch the brightness window with its system tray icon. Closing the window hides it to the tray; use Exit from the tray menu to quit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts.cfg)
		},
	}
}

package main

import (
	"brightd/internal/backlight"
	"brightd/internal/config"
	"brightd/internal/tui"
	"brightd/internal/tui/messages"

	"github.com/spf13/cobra"
)

// NewTUICmd creates the terminal interface command
func NewTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Control brightness from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := backlight.New(opts.cfg)
			if err != nil {
				return err
			}

			p := tui.NewProgram(tui.New(opts.cfg, provider))
			stop := watchConfig(opts.cfg, func(cfg *config.Config) {
				p.Send(messages.ConfigUpdateMsg{Config: cfg})
			}, func(err error) {
				p.Send(messages.ErrorMsg{Err: err})
			})
			defer stop()

			_, err = p.Run()
			return err
		},
	}
}

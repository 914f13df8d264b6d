package main

import (
	"fmt"
	"strconv"
	"strings"

	"brightd/cmd/brightd/cli"
	"brightd/internal/backlight"
	"brightd/internal/brightness"
	"brightd/internal/config"
	"brightd/internal/errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// openSynchronizer binds every monitor without views. Levels are read from
// hardware once.
func openSynchronizer(cfg *config.Config) (*brightness.Synchronizer, *brightness.Registry, error) {
	provider, err := backlight.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	s := brightness.NewSynchronizer(provider, brightness.Clamp(cfg.Levels.Fallback))
	return s, s.Initialize(nil), nil
}

func lookupBinding(reg *brightness.Registry, index int) (*brightness.Binding, error) {
	b, ok := reg.Get(index)
	if !ok {
		return nil, errors.NewBrightnessError("no such monitor", index, errors.MonitorNotFound, nil)
	}
	return b, nil
}

// printResult prints the monitor label and turns a failed write into an
// error so the exit status reflects it.
func printResult(cmd *cobra.Command, reg *brightness.Registry, res brightness.Result) error {
	if b, ok := reg.Get(res.Monitor.Index); ok {
		fmt.Fprintln(cmd.OutOrStdout(), b.Label())
	}
	if !res.OK() {
		return errors.Wrap(res.Err, "brightness not applied")
	}
	return nil
}

// NewListCmd lists monitors and their current levels
func NewListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monitors and their brightness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, err := openSynchronizer(opts.cfg)
			if err != nil {
				return err
			}
			if reg.Synthetic() {
				cli.PrintWarning(cmd.ErrOrStderr(), "No backlight devices found, showing fallback monitor")
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("MONITOR", "DEVICE", "LEVEL")
			for _, b := range reg.All() {
				name := b.Monitor.Name
				if name == "" {
					name = "-"
				}
				t.Row(strconv.Itoa(b.Monitor.Index), name, b.Level().String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

// NewGetCmd prints one monitor's level
func NewGetCmd(opts *rootOptions) *cobra.Command {
	var monitor int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the brightness of a monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, err := openSynchronizer(opts.cfg)
			if err != nil {
				return err
			}
			b, err := lookupBinding(reg, monitor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Label())
			return nil
		},
	}
	cmd.Flags().IntVarP(&monitor, "monitor", "m", 0, "monitor index")
	return cmd
}

// parseLevel accepts an absolute level ("70") or a delta ("+5", "-10").
func parseLevel(arg string, current brightness.Level) (int, error) {
	relative := strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-")
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewConfigError("level must be a number like 70, +5 or -5", "level", errors.InvalidConfig, err)
	}
	if relative {
		v += int(current)
	}
	return int(brightness.Clamp(v)), nil
}

// NewSetCmd sets one monitor's level
func NewSetCmd(opts *rootOptions) *cobra.Command {
	var monitor int
	cmd := &cobra.Command{
		Use:   "set <level>",
		Short: "Set the brightness of a monitor",
		Long:  `Set the brightness of a monitor to an absolute level (0-100) or by a relative step such as +5 or -10. Levels outside 0-100 are clamped.
Put -- before a negative step: brightd set -- -10`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, reg, err := openSynchronizer(opts.cfg)
			if err != nil {
				return err
			}
			b, err := lookupBinding(reg, monitor)
			if err != nil {
				return err
			}
			level, err := parseLevel(args[0], b.Level())
			if err != nil {
				return err
			}
			return printResult(cmd, reg, s.SetLevel(monitor, level))
		},
	}
	cmd.Flags().IntVarP(&monitor, "monitor", "m", 0, "monitor index")
	return cmd
}

// NewPresetCmd applies a named preset
func NewPresetCmd(opts *rootOptions) *cobra.Command {
	var monitor int
	cmd := &cobra.Command{
		Use:   "preset <name>",
		Short: "Apply a named brightness preset",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if opts.cfg == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0, len(opts.cfg.Presets))
			for _, p := range opts.cfg.Presets {
				names = append(names, p.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, ok := opts.cfg.PresetLevel(args[0])
			if !ok {
				return errors.NewPresetError(args[0])
			}
			s, reg, err := openSynchronizer(opts.cfg)
			if err != nil {
				return err
			}
			if _, err := lookupBinding(reg, monitor); err != nil {
				return err
			}
			return printResult(cmd, reg, s.SetLevel(monitor, level))
		},
	}
	cmd.Flags().IntVarP(&monitor, "monitor", "m", 0, "monitor index")
	return cmd
}

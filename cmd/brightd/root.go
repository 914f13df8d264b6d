package main

import (
	"os"

	"brightd/cmd/brightd/cli"
	"brightd/internal/config"
	"brightd/internal/errors"
	"brightd/internal/log"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the configuration they
// produce. Every subcommand reads cfg after PersistentPreRunE.
type rootOptions struct {
	cfgFile  string
	debug    bool
	backend  string
	simulate bool

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "brightd",
		Short:   "Tray brightness controller for laptop and external displays",
		Long:    cli.DrawLogo() + "\nBrightd keeps every backlight and its on-screen slider in step.\nRun without a subcommand to start the tray window.",
		Version: version,
		// Usage errors are printed by main
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Default().Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts.cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/brightd/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.backend, "backend", "", "brightness backend: sysfs, logind, brightnessctl or simulate")
	flags.BoolVar(&opts.simulate, "simulate", false, "use two in-memory monitors instead of hardware")

	rootCmd.AddCommand(NewGUICmd(opts))
	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewListCmd(opts))
	rootCmd.AddCommand(NewGetCmd(opts))
	rootCmd.AddCommand(NewSetCmd(opts))
	rootCmd.AddCommand(NewPresetCmd(opts))
	rootCmd.AddCommand(NewConfigCmd(opts))

	return rootCmd
}

// load reads the config file, applies flag overrides and configures logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		if o.cfgFile != "" && !errors.IsInvalidConfig(err) {
			return err
		}
		cli.PrintWarning(cmd.ErrOrStderr(), err.Error())
		cli.PrintInfo(cmd.ErrOrStderr(), "Using default settings. Run 'brightd config init' to write a config file.")
		o.cfg = config.New()
	}

	if o.backend != "" {
		o.cfg.Backend = o.backend
	}
	if o.simulate {
		o.cfg.Backend = config.BackendSimulate
	}
	if o.debug {
		o.cfg.Log.Debug = true
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	configureLogging(o.cfg)
	return nil
}

// configureLogging routes log output to stderr so command output on stdout
// stays parseable.
func configureLogging(cfg *config.Config) {
	logOpts := []log.Option{log.WithOutput(os.Stderr)}
	if cfg.Log.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		logOpts = append(logOpts, log.WithFile(cfg.Log.File))
	}
	log.Configure(logOpts...)
	log.SetDebug(cfg.Log.Debug)
}

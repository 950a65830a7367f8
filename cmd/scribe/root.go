package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/scribe/config"
	"github.com/jonwraymond/scribe/logging"
)

// app holds state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scribe",
		Short: "Record every method call made by a script",
		Long: `scribe runs a JavaScript file with a global "scribe" object providing
wrap(object, options), mutative(object, options) and inspect(value).
Every call made through a wrapped object is recorded, and the histories
are printed when the script finishes or served over MCP.

Configuration is read from --config, .scribe.yaml in the working directory,
or scribe/config.yaml in the user config directory. Flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newRunCmd(a), newMCPCmd(a), newVersionCmd())
	return root
}

// load reads the configuration, applies the flags that were set and builds
// the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if f := flags.Lookup("mode"); f != nil && f.Changed {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.Output, _ = flags.GetString("output")
	}
	if f := flags.Lookup("metrics"); f != nil && f.Changed {
		cfg.Metrics.Enabled, _ = flags.GetBool("metrics")
	}
	if f := flags.Lookup("log-calls"); f != nil && f.Changed {
		cfg.Log.Calls, _ = flags.GetBool("log-calls")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	a.cfg = cfg
	a.logger = logging.New(lc)
	return nil
}

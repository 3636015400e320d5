package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"avweather/internal/config"
	"avweather/internal/logging"
)

// app carries what every subcommand needs once flags are resolved.
type app struct {
	cfg *config.Config
	log *logging.Logger
}

type rootFlags struct {
	cfgFile   string
	format    string
	pretty    bool
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "avweather",
		Short: "Decode METAR and SPECI weather reports",
		Long: `avweather decodes METAR and SPECI surface weather reports into
structured records.

Commands:
  parse    - decode reports given as arguments or on stdin
  extract  - find and decode reports in a JSONL message feed`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			log, err := logging.New(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log.Named(cmd.Name())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.cfgFile, "config", "", "TOML config file (default: built-in defaults)")
	pf.StringVar(&f.format, "format", "json", "Output format (json, yaml)")
	pf.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "console", "Log format (json, console)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newExtractCmd(a))

	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig reads the config file and applies the flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = f.pretty
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

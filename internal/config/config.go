package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// Config represents the avweather configuration file
type Config struct {
	Output  OutputConfig  `toml:"output"`  // How decoded reports are rendered
	Logging LoggingConfig `toml:"logging"` // Application logging settings
	Extract ExtractConfig `toml:"extract"` // Batch extraction settings
}

// OutputConfig controls rendering of decoded reports
type OutputConfig struct {
	Format string `toml:"format"` // "json" or "yaml"
	Pretty bool   `toml:"pretty"` // Indent JSON output
	Trace  bool   `toml:"trace"`  // Include the per-group parse trace
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// ExtractConfig contains settings for the extract command
type ExtractConfig struct {
	IncludeAll  bool   `toml:"include_all"`  // Keep messages in which no report was found
	Stats       bool   `toml:"stats"`        // Print counters to stderr when done
	MetricsFile string `toml:"metrics_file"` // Prometheus textfile to write when done (empty = disabled)
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the configuration from path on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key: %s", undecoded[0])
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %q (must be json or yaml)", c.Output.Format)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q (must be json or console)", c.Logging.Format)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

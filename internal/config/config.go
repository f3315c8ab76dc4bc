// Package config loads the client configuration from a YAML file and
// WOH_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WOH_LOGGING_LEVEL.
const EnvPrefix = "WOH"

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	UI      UIConfig      `mapstructure:"ui"`
}

// LoggingConfig selects the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output. The terminal client owns stdout, so logs go
	// to a file or are discarded when empty.
	File string `mapstructure:"file"`
}

// GameConfig controls how a session is created.
type GameConfig struct {
	// ScenarioPath is a scenario file; empty selects the bundled scenario.
	ScenarioPath string `mapstructure:"scenario_path"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `mapstructure:"seed"`
	// IDs selects the log id generator: "uuid" or "sequence".
	IDs string `mapstructure:"ids"`
}

// UIConfig tunes the terminal client.
type UIConfig struct {
	LogLines    int  `mapstructure:"log_lines"`
	ShowSummary bool `mapstructure:"show_summary"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("game.scenario_path", "")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.ids", "uuid")
	v.SetDefault("ui.log_lines", 12)
	v.SetDefault("ui.show_summary", true)
}

// Load reads the configuration at path. A missing file is not an error when
// path is empty; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the client cannot honour.
func (c *Config) Validate() error {
	var errs []error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	switch c.Game.IDs {
	case "uuid", "sequence":
	default:
		errs = append(errs, fmt.Errorf("game.ids: unknown generator %q", c.Game.IDs))
	}
	if c.UI.LogLines <= 0 {
		errs = append(errs, fmt.Errorf("ui.log_lines: must be positive, got %d", c.UI.LogLines))
	}

	return errors.Join(errs...)
}

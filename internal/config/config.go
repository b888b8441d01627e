// Package config loads the cradle driver configuration. Built-in defaults are
// overridden by the YAML file, which is overridden by CRADLE_* variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CRADLE_LOGGING_LEVEL=debug.
const EnvPrefix = "CRADLE"

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GameConfig struct {
	// Seed for the deck shuffler; 0 picks a random one.
	Seed        uint64   `mapstructure:"seed"`
	PlayerNames []string `mapstructure:"player_names"`
	// ReplayLimit bounds the in-memory replay; 0 disables it.
	ReplayLimit int `mapstructure:"replay_limit"`
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "console": true}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.player_names", []string{"Player 1", "Player 2"})
	v.SetDefault("game.replay_limit", 500)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not load: %v", err))
	}
	return cfg
}

// Load reads configPath. An empty path or a missing file yields the defaults
// plus any environment overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
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

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level %q: want debug, info, warn or error", c.Logging.Level)
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q: want json or console", c.Logging.Format)
	}
	if c.Game.ReplayLimit < 0 {
		return fmt.Errorf("game.replay_limit must not be negative, got %d", c.Game.ReplayLimit)
	}
	if len(c.Game.PlayerNames) != 2 {
		return fmt.Errorf("game.player_names must list exactly 2 players, got %d", len(c.Game.PlayerNames))
	}
	for i, name := range c.Game.PlayerNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("game.player_names[%d] is empty", i)
		}
	}
	return nil
}

// Names returns the player names as a fixed pair.
func (g GameConfig) Names() [2]string {
	var names [2]string
	copy(names[:], g.PlayerNames)
	return names
}

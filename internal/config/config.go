// Package config loads framestep settings from defaults, an optional YAML
// file and FRAMESTEP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plus3/framestep/sequence"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. FRAMESTEP_TICK.
const EnvPrefix = "FRAMESTEP"

// Config contains runtime configuration.
type Config struct {
	// Greeting is printed once at startup.
	Greeting string `mapstructure:"greeting"`

	// Tick is the interval between scheduler updates in headless mode.
	// Default: 16ms.
	Tick time.Duration `mapstructure:"tick"`

	// Window drives the scheduler from an ebiten window instead of a ticker.
	Window bool `mapstructure:"window"`

	// LogLevel is a zerolog level name. Default: info.
	LogLevel string `mapstructure:"log_level"`

	// SequenceFile, when set, replaces Sequence with a definition loaded
	// from disk.
	SequenceFile string `mapstructure:"sequence_file"`

	Sequence SequenceConfig `mapstructure:"sequence"`
}

// SequenceConfig is the inline sequence definition.
type SequenceConfig struct {
	DurationsMs []int64        `mapstructure:"durations_ms"`
	Actions     []ActionConfig `mapstructure:"actions"`
}

// ActionConfig binds a message to a frame.
type ActionConfig struct {
	Frame   int    `mapstructure:"frame"`
	Message string `mapstructure:"message"`
}

// Default returns the configuration of the three-frame hello world demo.
func Default() Config {
	def := sequence.DefaultDefinition()

	cfg := Config{
		Greeting: def.Greeting,
		Tick:     16 * time.Millisecond,
		LogLevel: "info",
	}
	for _, d := range def.FrameDurations() {
		cfg.Sequence.DurationsMs = append(cfg.Sequence.DurationsMs, d.Milliseconds())
	}
	for _, a := range def.Actions {
		cfg.Sequence.Actions = append(cfg.Sequence.Actions, ActionConfig{Frame: a.Frame, Message: a.Message})
	}
	return cfg
}

// New returns a viper instance seeded with the defaults and bound to the
// environment.
func New() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("greeting", d.Greeting)
	v.SetDefault("tick", d.Tick)
	v.SetDefault("window", d.Window)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("sequence_file", "")
	v.SetDefault("sequence.durations_ms", d.Sequence.DurationsMs)
	actions := make([]map[string]any, 0, len(d.Sequence.Actions))
	for _, a := range d.Sequence.Actions {
		actions = append(actions, map[string]any{"frame": a.Frame, "message": a.Message})
	}
	v.SetDefault("sequence.actions", actions)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that do not depend on the sequence.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return errors.New("tick must be positive")
	}
	return nil
}

// Definition resolves the sequence to run: the file named by SequenceFile
// when set, otherwise the inline sequence. The greeting from the config
// applies when the definition has none.
func (c *Config) Definition() (*sequence.Definition, error) {
	var def *sequence.Definition
	if c.SequenceFile != "" {
		loaded, err := sequence.LoadDefinition(c.SequenceFile)
		if err != nil {
			return nil, err
		}
		def = loaded
	} else {
		def = &sequence.Definition{Name: "config", Source: "config"}
		for _, ms := range c.Sequence.DurationsMs {
			m, err := sequence.FromMillis(ms)
			if err != nil {
				return nil, err
			}
			def.Durations = append(def.Durations, m)
		}
		for _, a := range c.Sequence.Actions {
			def.Actions = append(def.Actions, sequence.Action{Frame: a.Frame, Message: a.Message})
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}

	if def.Greeting == "" {
		def.Greeting = c.Greeting
	}
	return def, nil
}

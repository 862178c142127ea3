package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

type Config struct {
	Loop     LoopConfig     `toml:"loop"`
	Arena    ArenaConfig    `toml:"arena"`
	Events   EventsConfig   `toml:"events"`
	Input    InputConfig    `toml:"input"`
	Rules    RulesConfig    `toml:"rules"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Terminal TerminalConfig `toml:"terminal"`
	Logging  LoggingConfig  `toml:"logging"`
	Scene    SceneConfig    `toml:"scene"`
	Profile  ProfileConfig  `toml:"profile"`
}

type LoopConfig struct {
	UpdatesPerSecond int `toml:"updates_per_second"`
	RendersPerSecond int `toml:"renders_per_second"`
	MaxBehind        int `toml:"max_behind"` // update intervals of lag before the deadline resets
}

type ArenaConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type EventsConfig struct {
	Capacity int `toml:"capacity"`
}

type InputConfig struct {
	SpawnKey     string  `toml:"spawn_key"`
	RadiusLambda float64 `toml:"radius_lambda"` // mean of the Poisson ball radius
	Seed         uint64  `toml:"seed"`          // 0 = seed from the clock
}

type RulesConfig struct {
	OutOfBounds string `toml:"out_of_bounds"` // "respawn" or "destroy"
}

type DispatchConfig struct {
	Parallel bool `toml:"parallel"`
}

type TerminalConfig struct {
	Enabled bool          `toml:"enabled"`
	Hold    time.Duration `toml:"hold"` // key counts as released after this long without a repeat
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // used while the terminal UI owns the screen
}

type SceneConfig struct {
	Path string `toml:"path"` // empty = built-in scene
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "trace"; PONG_PROFILE overrides
	Dir  string `toml:"dir"`
}

// Load reads the TOML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func Default() *Config {
	return &Config{
		Loop: LoopConfig{
			UpdatesPerSecond: 20,
			RendersPerSecond: 60,
			MaxBehind:        5,
		},
		Arena: ArenaConfig{
			Width:  1024,
			Height: 768,
		},
		Events: EventsConfig{
			Capacity: 256,
		},
		Input: InputConfig{
			SpawnKey:     "space",
			RadiusLambda: 4,
		},
		Rules: RulesConfig{
			OutOfBounds: "respawn",
		},
		Dispatch: DispatchConfig{
			Parallel: true,
		},
		Terminal: TerminalConfig{
			Enabled: true,
			Hold:    400 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "pong.log",
		},
		Profile: ProfileConfig{
			Dir: ".",
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. ECSCORE_LOOP_TICK_RATE.
const EnvPrefix = "ECSCORE_"

type Config struct {
	World     WorldConfig     `toml:"world"     envPrefix:"WORLD_"`
	Loop      LoopConfig      `toml:"loop"      envPrefix:"LOOP_"`
	Render    RenderConfig    `toml:"render"    envPrefix:"RENDER_"`
	Scripting ScriptingConfig `toml:"scripting" envPrefix:"SCRIPTING_"`
	Systems   SystemsConfig   `toml:"systems"`
	Logging   LoggingConfig   `toml:"logging"   envPrefix:"LOGGING_"`
}

type WorldConfig struct {
	Name       string `toml:"name"       env:"NAME"`
	Blueprints string `toml:"blueprints" env:"BLUEPRINTS"` // yaml file, empty = none
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"  env:"TICK_RATE"`
	MaxFrames int           `toml:"max_frames" env:"MAX_FRAMES"` // 0 = run until signalled
}

type RenderConfig struct {
	Enabled bool `toml:"enabled" env:"ENABLED"`
	Width   int  `toml:"width"   env:"WIDTH"`
	Height  int  `toml:"height"  env:"HEIGHT"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled" env:"ENABLED"`
	Dir     string `toml:"dir"     env:"DIR"`
}

// SystemsConfig overrides system priorities by system name. Values are
// priority names (highest ... lowest) or integers.
type SystemsConfig struct {
	Priority map[string]string `toml:"priority"`
}

type LoggingConfig struct {
	Level  string `toml:"level"  env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" or "console"
}

// Load reads the toml file at path over the defaults, then applies
// ECSCORE_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.Loop.MaxFrames < 0 {
		return fmt.Errorf("loop.max_frames must not be negative, got %d", c.Loop.MaxFrames)
	}
	if c.Render.Enabled && (c.Render.Width <= 0 || c.Render.Height <= 0) {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Name: "ecscore",
		},
		Loop: LoopConfig{
			TickRate: 100 * time.Millisecond,
		},
		Render: RenderConfig{
			Enabled: true,
			Width:   40,
			Height:  12,
		},
		Scripting: ScriptingConfig{
			Enabled: false,
			Dir:     "scripts",
		},
		Systems: SystemsConfig{
			Priority: map[string]string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

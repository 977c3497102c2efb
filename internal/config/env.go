package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides. Zero values leave the file config
// alone.
type Env struct {
	ConfigPath string `env:"LAUGHTALE_CONFIG"     envDefault:"laughtale_config.yml"`
	Addr       string `env:"LAUGHTALE_ADDR"`
	LogLevel   string `env:"LAUGHTALE_LOG_LEVEL"`
	DevStatic  bool   `env:"LAUGHTALE_DEV_STATIC"`
	Seed       int64  `env:"LAUGHTALE_SEED"`
	Pace       Pace   `env:"LAUGHTALE_PACE"`
}

// FromEnv parses the LAUGHTALE_* variables.
func FromEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if err := e.Pace.Validate(); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ApplyEnv overrides c with every variable that was set. A pace override
// replaces the display windows with that preset.
func (c *Config) ApplyEnv(e Env) {
	if e.Addr != "" {
		c.Server.Addr = e.Addr
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	if e.DevStatic {
		c.Server.DevStatic = true
	}
	if e.Seed != 0 {
		c.SeededRNG.Enabled = true
		c.SeededRNG.Seed = e.Seed
	}
	if e.Pace != "" {
		c.Timing = Timing{Pace: e.Pace}
		c.Timing.ApplyDefaults()
	}
}

// LoadFromEnv reads the file named by LAUGHTALE_CONFIG and applies the other
// overrides on top.
func LoadFromEnv() (*Config, error) {
	e, err := FromEnv()
	if err != nil {
		return nil, err
	}
	c, err := Load(e.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(e)
	return c, nil
}

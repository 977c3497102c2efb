package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/game"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when LAUGHTALE_CONFIG is not set.
const DefaultPath = "laughtale_config.yml"

type Config struct {
	Version   string    `yaml:"version" json:"version"`
	Server    Server    `yaml:"server" json:"server"`
	Timing    Timing    `yaml:"timing" json:"timing"`
	SeededRNG SeededRNG `yaml:"seeded_rng" json:"seeded_rng"`
	Log       Log       `yaml:"log" json:"log"`
	Sessions  Sessions  `yaml:"sessions" json:"sessions"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
	// DevStatic serves ./static from disk instead of the embedded copy.
	DevStatic bool `yaml:"dev_static" json:"dev_static"`
}

type Timing struct {
	Pace               Pace `yaml:"pace" json:"pace"`
	EffectsDisplayMS   int  `yaml:"effects_display_ms" json:"effects_display_ms"`
	ImmediateDisplayMS int  `yaml:"immediate_display_ms" json:"immediate_display_ms"`
}

type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

type Log struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

type Sessions struct {
	MaxGames int `yaml:"max_games" json:"max_games"`
}

func (s *Server) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":3000"
	}
}

// ApplyDefaults fills unset display windows from the pace preset.
func (t *Timing) ApplyDefaults() {
	if t.Pace == "" {
		t.Pace = PaceNormal
	}
	preset := t.Pace.Timing()
	if t.EffectsDisplayMS <= 0 {
		t.EffectsDisplayMS = int(preset.EffectsDisplay / time.Millisecond)
	}
	if t.ImmediateDisplayMS <= 0 {
		t.ImmediateDisplayMS = int(preset.ImmediateDisplay / time.Millisecond)
	}
}

func (t Timing) Game() game.Timing {
	return game.Timing{
		EffectsDisplay:   time.Duration(t.EffectsDisplayMS) * time.Millisecond,
		ImmediateDisplay: time.Duration(t.ImmediateDisplayMS) * time.Millisecond,
	}
}

func (l *Log) ApplyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
}

func (s *Sessions) ApplyDefaults() {
	if s.MaxGames == 0 {
		s.MaxGames = 1000
	}
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	c.Server.ApplyDefaults()
	c.Timing.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.Sessions.ApplyDefaults()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := r.Timing.Pace.Validate(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	r.ApplyDefaults()
	return &r, nil
}

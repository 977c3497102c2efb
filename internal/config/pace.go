package config

import (
	"fmt"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/game"
)

// Pace is a preset for how long outcomes stay on screen.
type Pace string

const (
	PaceNormal  Pace = "normal"
	PaceRelaxed Pace = "relaxed"
	PaceQuick   Pace = "quick"
)

// Validate accepts the presets and the empty pace.
func (p Pace) Validate() error {
	switch p {
	case "", PaceNormal, PaceRelaxed, PaceQuick:
		return nil
	default:
		return fmt.Errorf("unknown pace %q", string(p))
	}
}

// Timing returns the preset's display windows. Unknown paces are normal.
func (p Pace) Timing() game.Timing {
	t := game.DefaultTiming()
	switch p {
	case PaceRelaxed:
		t.EffectsDisplay *= 2
		t.ImmediateDisplay *= 2
	case PaceQuick:
		t.EffectsDisplay = time.Second
		t.ImmediateDisplay = 2 * time.Second
	}
	return t
}

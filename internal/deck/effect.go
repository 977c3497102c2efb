package deck

import (
	"encoding/json"
	"strconv"
)

// Currency is the player resource an immediate effect changes.
type Currency string

const (
	Berries   Currency = "berries"
	Poneglyph Currency = "poneglyph"
)

// Effect is one of Immediate, Probabilistic or Choice. The set is closed:
// only this package can add variants.
type Effect interface {
	isEffect()
}

// Immediate changes one currency by a signed, possibly fractional amount.
type Immediate struct {
	Currency  Currency
	Magnitude float64
	Note      string
}

// Probabilistic is resolved by a die roll in 1..6.
type Probabilistic struct {
	Description string
	Outcome     func(roll int) []Immediate
}

// Choice is resolved by the player picking one of the options. An option with
// no effects is the decline choice.
type Choice struct {
	Options []Option
}

type Option struct {
	Label   string      `json:"label"`
	Effects []Immediate `json:"effects"`
}

func (Immediate) isEffect() {}
func (Probabilistic) isEffect() {}
func (Choice) isEffect() {}

// Delta is the currency change of a single immediate effect. Exactly one
// field is set.
type Delta struct {
	Berries   *float64 `json:"berries,omitempty"`
	Poneglyph *float64 `json:"poneglyph,omitempty"`
}

func ApplyImmediate(e Immediate) Delta {
	m := e.Magnitude
	switch e.Currency {
	case Poneglyph:
		return Delta{Poneglyph: &m}
	default:
		return Delta{Berries: &m}
	}
}

// ResolveProbabilistic returns the outcome for roll. Rolls outside 1..6
// resolve to nothing.
func ResolveProbabilistic(p Probabilistic, roll int) []Immediate {
	if roll < 1 || roll > 6 || p.Outcome == nil {
		return nil
	}
	return p.Outcome(roll)
}

// ResolveChoice returns the effects of option index, or an empty list when the
// index is out of range.
func ResolveChoice(c Choice, index int) []Immediate {
	if index < 0 || index >= len(c.Options) {
		return []Immediate{}
	}
	return cloneImmediates(c.Options[index].Effects)
}

func cloneImmediates(in []Immediate) []Immediate {
	out := make([]Immediate, len(in))
	copy(out, in)
	return out
}

func (e Immediate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      Currency `json:"type"`
		Magnitude float64  `json:"magnitude"`
		Note      string   `json:"note,omitempty"`
	}{e.Currency, e.Magnitude, e.Note})
}

// MarshalJSON exposes the outcome of every roll so clients can preview them.
func (p Probabilistic) MarshalJSON() ([]byte, error) {
	outcomes := make(map[string][]Immediate, 6)
	for roll := 1; roll <= 6; roll++ {
		res := ResolveProbabilistic(p, roll)
		if res == nil {
			res = []Immediate{}
		}
		outcomes[strconv.Itoa(roll)] = res
	}
	return json.Marshal(struct {
		Type        string                 `json:"type"`
		Description string                 `json:"description"`
		Outcomes    map[string][]Immediate `json:"outcomes"`
	}{"probability", p.Description, outcomes})
}

func (c Choice) MarshalJSON() ([]byte, error) {
	opts := c.Options
	if opts == nil {
		opts = []Option{}
	}
	return json.Marshal(struct {
		Type    string   `json:"type"`
		Options []Option `json:"options"`
	}{"choice", opts})
}

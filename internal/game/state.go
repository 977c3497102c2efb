package game

import (
	"slices"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
)

// Phase is the outer lifecycle of a game.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
)

func (p Phase) Valid() bool { return p == PhaseIdle || p == PhasePlaying }

// Panel is what the player owes the game next.
type Panel string

const (
	PanelMove        Panel = "move"
	PanelProbability Panel = "probability"
	PanelChoice      Panel = "choice"
	PanelEffects     Panel = "effects"
)

// Result is the outcome of the final war.
type Result string

const (
	Win  Result = "win"
	Lose Result = "lose"
)

// StartingPoneglyph is the poneglyph every new game starts with.
const StartingPoneglyph = 2

// EpiloguePoneglyph is the poneglyph needed to take a jolly roger.
const EpiloguePoneglyph = 4

// Timing holds the display windows of the effects panel.
type Timing struct {
	// EffectsDisplay is how long a resolved roll or choice stays on screen.
	EffectsDisplay time.Duration
	// ImmediateDisplay is how long an immediate card stays on screen. It covers
	// the card reveal as well as its effects.
	ImmediateDisplay time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		EffectsDisplay:   3 * time.Second,
		ImmediateDisplay: 6 * time.Second,
	}
}

// State is a read-only snapshot of a game.
type State struct {
	ID            string         `json:"id"`
	Berries       float64        `json:"berries"`
	Poneglyph     float64        `json:"poneglyph"`
	Position      board.Position `json:"position"`
	Location      board.Location `json:"location"`
	Deck          []deck.Card    `json:"deck"`
	DeckSize      int            `json:"deck_size"`
	CurrentCard   *deck.Card     `json:"current_card"`
	Panel         Panel          `json:"panel"`
	Phase         Phase          `json:"phase"`
	CharacterName string         `json:"character_name"`
	PirateType    board.Location `json:"pirate_type"`
	Version       int64          `json:"version"`
}

func (s State) clone() State {
	out := s
	out.Deck = slices.Clone(s.Deck)
	if out.Deck == nil {
		out.Deck = []deck.Card{}
	}
	out.DeckSize = len(s.Deck)
	if s.CurrentCard != nil {
		c := *s.CurrentCard
		c.FinalOutcome = slices.Clone(s.CurrentCard.FinalOutcome)
		out.CurrentCard = &c
	}
	return out
}

// CanTakeJollyRoger reports whether the epilogue can be started from s.
func (s State) CanTakeJollyRoger() bool {
	return s.EpilogueErr() == nil
}

// EpilogueErr names the first reason the epilogue cannot start from s.
func (s State) EpilogueErr() error {
	switch {
	case s.Panel != PanelMove:
		return ErrNotMovable
	case !board.IsJollyRogerStop(s.Position):
		return ErrNotAtJollyRoger
	case s.Poneglyph < EpiloguePoneglyph:
		return ErrNotEnoughPoneglyph
	}
	return nil
}

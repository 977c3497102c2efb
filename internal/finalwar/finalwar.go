// Package finalwar settles the epilogue: one die roll plus the poneglyph
// collected must reach WinThreshold.
package finalwar

import (
	"errors"

	"github.com/ChinmayNoob/laughtale/internal/game"
)

const (
	WinThreshold = 10
	MinPoneglyph = game.EpiloguePoneglyph
)

var ErrInvalidRoll = errors.New("final war roll must be between 1 and 6")

// Resolve decides the final war for a roll and a poneglyph total.
func Resolve(roll int, poneglyph float64) (game.Result, error) {
	if roll < 1 || roll > 6 {
		return "", ErrInvalidRoll
	}
	if float64(roll)+poneglyph >= WinThreshold {
		return game.Win, nil
	}
	return game.Lose, nil
}

// Battle is the record of a fought final war.
type Battle struct {
	Roll      int          `json:"roll"`
	Poneglyph float64      `json:"poneglyph"`
	Result    game.Result  `json:"result"`
	Outcome   game.Outcome `json:"outcome"`
}

// Play fights the final war of e with roll and applies the result. The roll is
// judged against the poneglyph held when the engine runs the command.
func Play(e *game.Engine, roll int) (Battle, error) {
	return play(e, game.FightCommand{Roll: roll, Decide: Resolve})
}

// PlayFromJollyRoger is Play for callers that must not skip the board: it is
// rejected unless the token is on a Jolly Roger stop with enough poneglyph and
// nothing is pending.
func PlayFromJollyRoger(e *game.Engine, roll int) (Battle, error) {
	return play(e, game.FightCommand{Roll: roll, Decide: Resolve, RequireJollyRoger: true})
}

func play(e *game.Engine, cmd game.FightCommand) (Battle, error) {
	out, err := e.Dispatch(cmd)
	if err != nil {
		return Battle{}, err
	}
	return Battle{
		Roll:      out.Fight.Roll,
		Poneglyph: out.Fight.Poneglyph,
		Result:    out.Fight.Result,
		Outcome:   out,
	}, nil
}

package game

import (
	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
)

// Command is an inbound intent. The set is closed; use Dispatch to run one.
type Command interface {
	Name() string
	run(e *Engine) (Outcome, error)
}

// Outcome is what a dispatched command produced. State is taken under the same
// lock as the command ran.
type Outcome struct {
	Effects []deck.Immediate `json:"effects,omitempty"`
	State   State            `json:"state"`
	// Finished is the final state of a game that the command ended.
	Finished *State `json:"finished,omitempty"`
	// Fight is set by FightCommand.
	Fight *Fight `json:"fight,omitempty"`
}

// Fight records how a rolled final war was decided.
type Fight struct {
	Roll      int     `json:"roll"`
	Poneglyph float64 `json:"poneglyph"`
	Result    Result  `json:"result"`
}

type MoveCommand struct {
	Distance  int
	Direction board.Direction
}

type RollCommand struct {
	Roll int
}

type ChooseCommand struct {
	Index int
}

type FinalWarCommand struct {
	Result Result
	// RequireJollyRoger rejects the command unless the epilogue could start
	// from the current state.
	RequireJollyRoger bool
}

// FightCommand settles the final war from a die roll. Decide is called with
// the poneglyph held when the command runs, under the engine lock, so it must
// not call back into the engine.
type FightCommand struct {
	Roll              int
	Decide            func(roll int, poneglyph float64) (Result, error)
	RequireJollyRoger bool
}

type ResetCommand struct{}

type ChangePhaseCommand struct {
	Phase Phase
}

type CloseCardCommand struct{}

type JollyRogerCommand struct{}

func (MoveCommand) Name() string { return "move" }
func (RollCommand) Name() string { return "roll" }
func (ChooseCommand) Name() string { return "choose" }
func (FinalWarCommand) Name() string { return "final_war" }
func (FightCommand) Name() string { return "fight" }
func (ResetCommand) Name() string { return "reset" }
func (ChangePhaseCommand) Name() string { return "change_phase" }
func (CloseCardCommand) Name() string { return "close_card" }
func (JollyRogerCommand) Name() string { return "take_jolly_roger" }

func (c MoveCommand) run(e *Engine) (Outcome, error) {
	return Outcome{}, e.move(c.Distance, c.Direction)
}

func (c RollCommand) run(e *Engine) (Outcome, error) {
	effects, err := e.handleRoll(c.Roll)
	return Outcome{Effects: effects}, err
}

func (c ChooseCommand) run(e *Engine) (Outcome, error) {
	effects, err := e.handleChoice(c.Index)
	return Outcome{Effects: effects}, err
}

func (c FinalWarCommand) run(e *Engine) (Outcome, error) {
	if c.Result != Win && c.Result != Lose {
		return Outcome{}, ErrInvalidResult
	}
	if c.RequireJollyRoger {
		if err := e.s.EpilogueErr(); err != nil {
			return Outcome{}, err
		}
	}
	st, err := e.handleFinalWar(c.Result)
	if err != nil || c.Result != Win {
		return Outcome{}, err
	}
	return Outcome{Finished: &st}, nil
}

func (c FightCommand) run(e *Engine) (Outcome, error) {
	if c.Decide == nil {
		return Outcome{}, ErrInvalidResult
	}
	poneglyph := e.s.Poneglyph
	res, err := c.Decide(c.Roll, poneglyph)
	if err != nil {
		return Outcome{}, err
	}
	out, err := FinalWarCommand{Result: res, RequireJollyRoger: c.RequireJollyRoger}.run(e)
	if err != nil {
		return Outcome{}, err
	}
	out.Fight = &Fight{Roll: c.Roll, Poneglyph: poneglyph, Result: res}
	return out, nil
}

func (ResetCommand) run(e *Engine) (Outcome, error) {
	e.reset()
	return Outcome{}, nil
}

func (c ChangePhaseCommand) run(e *Engine) (Outcome, error) {
	return Outcome{}, e.changePhase(c.Phase)
}

func (CloseCardCommand) run(e *Engine) (Outcome, error) {
	e.closeCard()
	return Outcome{}, nil
}

func (JollyRogerCommand) run(e *Engine) (Outcome, error) {
	return Outcome{}, e.takeJollyRoger()
}

// Dispatch runs cmd. On rejection the returned outcome still carries the
// unchanged state.
func (e *Engine) Dispatch(cmd Command) (Outcome, error) {
	var out Outcome
	err := e.do(cmd.Name(), func() error {
		var err error
		out, err = cmd.run(e)
		if err != nil {
			out = Outcome{}
		}
		out.State = e.s.clone()
		return err
	})
	return out, err
}

package game

import (
	"errors"
	"testing"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	e, clock := newEngineForTest(board.Rookie)

	out, err := e.Dispatch(ChangePhaseCommand{Phase: PhasePlaying})
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, out.State.Phase)

	out, err = e.Dispatch(MoveCommand{Distance: 3, Direction: board.Forward})
	require.NoError(t, err)
	assert.Equal(t, PanelChoice, out.State.Panel)
	assert.Empty(t, out.Effects)

	out, err = e.Dispatch(RollCommand{Roll: 3})
	require.ErrorIs(t, err, ErrNotAwaitingRoll)
	assert.Equal(t, PanelChoice, out.State.Panel, "rejections still carry the state")

	out, err = e.Dispatch(ChooseCommand{Index: 1})
	require.NoError(t, err)
	assert.Len(t, out.Effects, 2)
	assert.Equal(t, PanelEffects, out.State.Panel)
	assert.Equal(t, 100.0, out.State.Berries)

	clock.Advance(3 * time.Second)

	out, err = e.Dispatch(FinalWarCommand{Result: Lose})
	require.NoError(t, err)
	assert.Nil(t, out.Finished)
	assert.Equal(t, 50.0, out.State.Berries)

	e.s.Poneglyph = 6
	out, err = e.Dispatch(FinalWarCommand{Result: Win})
	require.NoError(t, err)
	require.NotNil(t, out.Finished)
	assert.Equal(t, 12.0, out.Finished.Poneglyph)
	assert.Equal(t, 2.0, out.State.Poneglyph)
	assert.Equal(t, PhaseIdle, out.State.Phase)
}

func TestDispatch_CardCommands(t *testing.T) {
	e, _ := newEngineForTest(board.Rookie)
	onlyCards(t, e, "rook-p-1")

	_, err := e.Dispatch(MoveCommand{Distance: 2, Direction: board.Forward})
	require.NoError(t, err)

	out, err := e.Dispatch(CloseCardCommand{})
	require.NoError(t, err)
	assert.Equal(t, PanelMove, out.State.Panel)

	_, err = e.Dispatch(JollyRogerCommand{})
	require.ErrorIs(t, err, ErrNotEnoughPoneglyph)

	out, err = e.Dispatch(ResetCommand{})
	require.NoError(t, err)
	assert.Equal(t, board.Position(0), out.State.Position)
	assert.Nil(t, out.State.CurrentCard)
}

func TestDispatch_Fight(t *testing.T) {
	e, _ := newEngineForTest(board.Rookie)
	atLeast := func(min float64) func(int, float64) (Result, error) {
		return func(roll int, poneglyph float64) (Result, error) {
			if float64(roll)+poneglyph >= min {
				return Win, nil
			}
			return Lose, nil
		}
	}

	t.Run("decided on the poneglyph held at dispatch", func(t *testing.T) {
		e.s.Poneglyph = 5
		out, err := e.Dispatch(FightCommand{Roll: 5, Decide: atLeast(10)})
		require.NoError(t, err)
		require.NotNil(t, out.Fight)
		assert.Equal(t, Fight{Roll: 5, Poneglyph: 5, Result: Win}, *out.Fight)
		require.NotNil(t, out.Finished)
		assert.Equal(t, 10.0, out.Finished.Poneglyph)
	})

	t.Run("loss halves", func(t *testing.T) {
		out, err := e.Dispatch(FightCommand{Roll: 1, Decide: atLeast(10)})
		require.NoError(t, err)
		assert.Equal(t, Lose, out.Fight.Result)
		assert.Equal(t, 2.0, out.Fight.Poneglyph)
		assert.Equal(t, 1.0, out.State.Poneglyph)
	})

	t.Run("decide errors and missing decide reject", func(t *testing.T) {
		before := e.Snapshot()
		boom := errors.New("boom")
		_, err := e.Dispatch(FightCommand{Roll: 3, Decide: func(int, float64) (Result, error) { return "", boom }})
		require.ErrorIs(t, err, boom)
		_, err = e.Dispatch(FightCommand{Roll: 3})
		require.ErrorIs(t, err, ErrInvalidResult)
		requireUnchanged(t, before, e.Snapshot())
	})
}

func TestDispatch_FinalWarFromJollyRoger(t *testing.T) {
	e, clock := newEngineForTest(board.Rookie)
	onlyCards(t, e, "rook-p-1")
	decide := func(int, float64) (Result, error) { return Win, nil }

	_, err := e.Dispatch(FinalWarCommand{Result: Win, RequireJollyRoger: true})
	require.ErrorIs(t, err, ErrNotAtJollyRoger)
	_, err = e.Dispatch(FightCommand{Roll: 6, Decide: decide, RequireJollyRoger: true})
	require.ErrorIs(t, err, ErrNotAtJollyRoger)
	_, err = e.Dispatch(FinalWarCommand{Result: "draw", RequireJollyRoger: true})
	require.ErrorIs(t, err, ErrInvalidResult, "bad input is reported before position")

	_, err = e.Dispatch(MoveCommand{Distance: 2, Direction: board.Forward})
	require.NoError(t, err)
	_, err = e.Dispatch(FinalWarCommand{Result: Win, RequireJollyRoger: true})
	require.ErrorIs(t, err, ErrNotMovable)

	clock.Advance(e.Timing().ImmediateDisplay)
	_, err = e.Dispatch(FinalWarCommand{Result: Lose, RequireJollyRoger: true})
	require.ErrorIs(t, err, ErrNotEnoughPoneglyph)

	e.s.Poneglyph = EpiloguePoneglyph
	out, err := e.Dispatch(FightCommand{Roll: 6, Decide: decide, RequireJollyRoger: true})
	require.NoError(t, err)
	require.NotNil(t, out.Finished)
	assert.Equal(t, 8.0, out.Finished.Poneglyph)
}

func TestCommandNames(t *testing.T) {
	cmds := []Command{
		MoveCommand{}, RollCommand{}, ChooseCommand{}, FinalWarCommand{},
		FightCommand{}, ResetCommand{}, ChangePhaseCommand{}, CloseCardCommand{}, JollyRogerCommand{},
	}
	seen := map[string]bool{}
	for _, c := range cmds {
		assert.NotEmpty(t, c.Name())
		assert.False(t, seen[c.Name()], c.Name())
		seen[c.Name()] = true
	}
}

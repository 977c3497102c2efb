package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/config"
	"github.com/ChinmayNoob/laughtale/internal/deck"
	"github.com/ChinmayNoob/laughtale/internal/finalwar"
	"github.com/ChinmayNoob/laughtale/internal/game"
	"github.com/ChinmayNoob/laughtale/internal/serverapp"
	"github.com/ChinmayNoob/laughtale/internal/session"
	"github.com/ChinmayNoob/laughtale/internal/telemetry"

	"go.uber.org/zap"
)

// Report summarizes a batch of simulated games.
type Report struct {
	Games        int
	Wins         int
	Losses       int
	AvgTurns     float64
	AvgBerries   float64
	AvgPoneglyph float64
	Stats        telemetry.Stats
}

// simulate plays n games on a fake clock. A game ends with a final war win or
// after maxTurns moves.
func simulate(cfg *config.Config, n, maxTurns int, log *zap.Logger) (Report, error) {
	clock := game.NewFakeClock(time.Unix(0, 0).UTC())
	tel := telemetry.NewMemoryRepositoryWithClock(clock.Now)
	games := session.NewMemoryRepo(serverapp.NewGameFactory(cfg, clock, tel, log), 0)
	ctx := context.Background()

	var r Report
	var turns, berries, poneglyph float64
	for i := 0; i < n; i++ {
		e, err := games.Create(ctx)
		if err != nil {
			return Report{}, err
		}
		res, err := playGame(e, clock, maxTurns)
		if err != nil {
			return Report{}, fmt.Errorf("game %d: %w", i, err)
		}
		if _, err := games.Delete(ctx, e.ID()); err != nil {
			return Report{}, err
		}

		r.Games++
		if res.won {
			r.Wins++
		}
		r.Losses += res.losses
		turns += float64(res.turns)
		berries += res.final.Berries
		poneglyph += res.final.Poneglyph
	}

	r.AvgTurns = turns / float64(r.Games)
	r.AvgBerries = berries / float64(r.Games)
	r.AvgPoneglyph = poneglyph / float64(r.Games)

	events, err := tel.GetEvents(time.Time{}, "", nil)
	if err != nil {
		return Report{}, err
	}
	r.Stats, err = telemetry.CalculateStats(events, time.Time{})
	if err != nil {
		return Report{}, err
	}
	return r, nil
}

type gameResult struct {
	won    bool
	losses int
	turns  int
	final  game.State
}

// playGame drives one engine the way a player who always sails forward would.
func playGame(e *game.Engine, clock *game.FakeClock, maxTurns int) (gameResult, error) {
	var res gameResult
	if err := e.ChangePhase(game.PhasePlaying); err != nil {
		return res, err
	}
	wait := e.Timing().ImmediateDisplay
	if e.Timing().EffectsDisplay > wait {
		wait = e.Timing().EffectsDisplay
	}

	for res.turns < maxTurns {
		s := e.Snapshot()
		switch s.Panel {
		case game.PanelMove:
			if board.IsJollyRogerStop(s.Position) && s.Poneglyph >= finalwar.MinPoneglyph {
				if err := e.TakeJollyRoger(); err != nil {
					return res, err
				}
				battle, err := finalwar.PlayFromJollyRoger(e, e.RollDie())
				if err != nil {
					return res, err
				}
				if battle.Result == game.Win {
					res.won = true
					res.final = *battle.Outcome.Finished
					return res, nil
				}
				res.losses++
			}
			if _, err := e.Move(e.RollDie(), board.Forward); err != nil {
				return res, err
			}
			res.turns++
		case game.PanelProbability:
			if _, err := e.HandleRoll(e.RollDie()); err != nil {
				return res, err
			}
		case game.PanelChoice:
			c, ok := deck.FirstChoice(*s.CurrentCard)
			if !ok {
				return res, fmt.Errorf("choice panel without a choice card")
			}
			if _, err := e.HandleChoice(pickOption(c, e.RollDie())); err != nil {
				return res, err
			}
		case game.PanelEffects:
			clock.Advance(wait)
		}
	}
	res.final = e.Snapshot()
	return res, nil
}

// pickOption maps a die roll onto the options of c.
func pickOption(c deck.Choice, roll int) int {
	return (roll - 1) % len(c.Options)
}

package game

import "errors"

// Rejections. A rejected operation leaves the state untouched.
var (
	ErrNotMovable         = errors.New("token can only move from the move panel")
	ErrInvalidMove        = errors.New("invalid move")
	ErrNoCurrentCard      = errors.New("no card drawn")
	ErrNotAwaitingRoll    = errors.New("current card is not waiting for a roll")
	ErrInvalidRoll        = errors.New("roll must be between 1 and 6")
	ErrNotAwaitingChoice  = errors.New("current card is not waiting for a choice")
	ErrInvalidChoice      = errors.New("choice index out of range")
	ErrInvalidResult      = errors.New("final war result must be win or lose")
	ErrInvalidPhase       = errors.New("unknown game phase")
	ErrNotAtJollyRoger    = errors.New("token is not on a jolly roger stop")
	ErrNotEnoughPoneglyph = errors.New("not enough poneglyph to start the final war")
)

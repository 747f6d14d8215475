package bingo

import "errors"

var (
	// ErrNoActiveGame means no game is currently started. Callers report it
	// as a "finished" status, not as a failure.
	ErrNoActiveGame = errors.New("no active game")

	// ErrGameNotActive rejects a draw, stop or claim against a game that is
	// not started (or a board from an earlier round of it).
	ErrGameNotActive = errors.New("game is not active")

	ErrUnknownBoard = errors.New("unknown board")

	// ErrExhausted is returned once all numbers have been drawn. It is a
	// terminal condition of the sequence, not a fault.
	ErrExhausted = errors.New("all numbers drawn")

	ErrNotFound = errors.New("not found")
)

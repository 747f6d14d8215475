// Package bingo holds the game and board state machine: draw sequencing,
// board visibility windows, mark derivation and win verification.
package bingo

import "time"

type Status string

const (
	StatusFinished Status = "finished"
	StatusStarted  Status = "started"
)

// Game is one bingo game. A game can be started and stopped many times;
// every start begins a new round with an empty draw sequence.
type Game struct {
	ID         string
	Name       string
	Status     Status
	Round      int
	Draws      DrawSequence
	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
}

// NewGame returns a game in the Finished state.
func NewGame(id, name string, now time.Time) *Game {
	return &Game{
		ID:        id,
		Name:      name,
		Status:    StatusFinished,
		CreatedAt: now,
	}
}

func (g *Game) Active() bool { return g.Status == StatusStarted }

// Start resets the draws and opens a new round. Starting an already
// started game is allowed and simply resets it.
func (g *Game) Start(now time.Time) {
	g.Draws.Reset()
	g.Status = StatusStarted
	g.Round++
	g.StartedAt = &now
	g.FinishedAt = nil
}

// Stop freezes the draws. Stopping a finished game is rejected.
func (g *Game) Stop(now time.Time) error {
	if !g.Active() {
		return ErrGameNotActive
	}
	g.Status = StatusFinished
	g.FinishedAt = &now
	return nil
}

// DrawNext reveals the next number. ErrExhausted leaves the game untouched.
func (g *Game) DrawNext(src Source) (int, error) {
	if !g.Active() {
		return 0, ErrGameNotActive
	}
	return g.Draws.Draw(src)
}

// CurrentNumber is the latest draw of the running round.
func (g *Game) CurrentNumber() (int, bool) { return g.Draws.Latest() }

// Clone returns a deep copy, so stores can hand out snapshots.
func (g *Game) Clone() *Game {
	c := *g
	c.Draws = NewDrawSequence(g.Draws.numbers)
	if g.StartedAt != nil {
		t := *g.StartedAt
		c.StartedAt = &t
	}
	if g.FinishedAt != nil {
		t := *g.FinishedAt
		c.FinishedAt = &t
	}
	return &c
}

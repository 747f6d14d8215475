package bingo

import "time"

type EventType string

const (
	EventGameStarted EventType = "game_started"
	EventGameStopped EventType = "game_stopped"
	EventNumberDrawn EventType = "number_drawn"
	EventBingo       EventType = "bingo"
)

// Event describes a state change of a game, published after it is stored.
type Event struct {
	Type    EventType `json:"type"`
	GameID  string    `json:"gameId"`
	Round   int       `json:"round"`
	Number  int       `json:"number,omitempty"`
	Drawn   int       `json:"drawn,omitempty"`
	BoardID string    `json:"boardId,omitempty"`
	Lines   []Line    `json:"lines,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier receives game events. Notify must not block.
type Notifier interface {
	Notify(Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

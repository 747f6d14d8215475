package bingo

import (
	"context"
	"time"
)

// Store persists games and boards. Implementations return copies: callers
// may mutate what they get back and must Save to publish the change.
type Store interface {
	CreateGame(ctx context.Context, g *Game) error
	// GetGame returns ErrNotFound for an unknown id.
	GetGame(ctx context.Context, id string) (*Game, error)
	ListGames(ctx context.Context) ([]*Game, error)
	// ActiveGame returns the started game, or ErrNoActiveGame.
	ActiveGame(ctx context.Context) (*Game, error)
	SaveGame(ctx context.Context, g *Game) error

	CreateBoard(ctx context.Context, b *Board) error
	// GetBoard returns ErrUnknownBoard for an unknown id.
	GetBoard(ctx context.Context, id string) (*Board, error)
	// MarkWinner sets winner and wonAt unless the board already won.
	MarkWinner(ctx context.Context, boardID string, at time.Time) error
	ListWinners(ctx context.Context, gameID string, round int) ([]*Board, error)
}

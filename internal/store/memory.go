// Package store implements bingo.Store in memory and on SQLite.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/playperu/bingohall/internal/bingo"
)

// Memory is a bingo.Store kept in maps. State is lost on restart; it backs
// tests and single-process demos.
type Memory struct {
	mu     sync.RWMutex
	games  map[string]*bingo.Game
	boards map[string]*bingo.Board
}

var _ bingo.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		games:  make(map[string]*bingo.Game),
		boards: make(map[string]*bingo.Board),
	}
}

func (m *Memory) CreateGame(_ context.Context, g *bingo.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) GetGame(_ context.Context, id string) (*bingo.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, bingo.ErrNotFound
	}
	return g.Clone(), nil
}

func (m *Memory) ListGames(_ context.Context) ([]*bingo.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	games := make([]*bingo.Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g.Clone())
	}
	slices.SortFunc(games, func(a, b *bingo.Game) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return games, nil
}

func (m *Memory) ActiveGame(_ context.Context) (*bingo.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.Active() {
			return g.Clone(), nil
		}
	}
	return nil, bingo.ErrNoActiveGame
}

func (m *Memory) SaveGame(_ context.Context, g *bingo.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		return bingo.ErrNotFound
	}
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) CreateBoard(_ context.Context, b *bingo.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[b.GameID]; !ok {
		return bingo.ErrNotFound
	}
	m.boards[b.ID] = b.Clone()
	return nil
}

func (m *Memory) GetBoard(_ context.Context, id string) (*bingo.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.boards[id]
	if !ok {
		return nil, bingo.ErrUnknownBoard
	}
	return b.Clone(), nil
}

func (m *Memory) MarkWinner(_ context.Context, boardID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.boards[boardID]
	if !ok {
		return bingo.ErrUnknownBoard
	}
	if !b.Winner {
		b.Winner = true
		b.WonAt = &at
	}
	return nil
}

func (m *Memory) ListWinners(_ context.Context, gameID string, round int) ([]*bingo.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*bingo.Board
	for _, b := range m.boards {
		if b.Winner && b.GameID == gameID && b.Round == round {
			out = append(out, b.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *bingo.Board) int {
		return cmp.Compare(a.WonAt.UnixNano(), b.WonAt.UnixNano())
	})
	return out, nil
}

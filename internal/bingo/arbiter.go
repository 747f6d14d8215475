package bingo

import (
	"context"
	"errors"
	"fmt"
)

type ClaimResult struct {
	Accepted   bool
	AlreadyWon bool
	Lines      []Line
}

// Claim verifies a bingo call for boardID. Marks are re-derived from the
// stored draws under the game lock; nothing the client reports is trusted.
// A board that already won is accepted again without side effects.
func (h *Hall) Claim(ctx context.Context, boardID string) (ClaimResult, error) {
	if boardID == "" {
		return ClaimResult{}, ErrUnknownBoard
	}
	b, err := h.store.GetBoard(ctx, boardID)
	if err != nil {
		return ClaimResult{}, err
	}

	unlock := h.lock(b.GameID)
	defer unlock()

	g, err := h.store.GetGame(ctx, b.GameID)
	if errors.Is(err, ErrNotFound) {
		return ClaimResult{}, ErrGameNotActive
	}
	if err != nil {
		return ClaimResult{}, fmt.Errorf("loading game: %w", err)
	}
	if !g.Active() || !b.Belongs(g) {
		return ClaimResult{}, ErrGameNotActive
	}

	// Reload under the lock; only claims write the winner flag.
	if b, err = h.store.GetBoard(ctx, boardID); err != nil {
		return ClaimResult{}, err
	}
	if b.Winner {
		return ClaimResult{Accepted: true, AlreadyWon: true}, nil
	}

	won := CompletedLines(DeriveMarks(b, g.Draws.Numbers()))
	if len(won) == 0 {
		h.logger.Info("bingo rejected", "board_id", b.ID, "game_id", g.ID)
		return ClaimResult{}, nil
	}

	at := h.now()
	if err := h.store.MarkWinner(ctx, b.ID, at); err != nil {
		return ClaimResult{}, fmt.Errorf("recording winner: %w", err)
	}

	h.logger.Info("bingo accepted", "board_id", b.ID, "game_id", g.ID, "round", g.Round, "lines", len(won))
	h.notifier.Notify(Event{Type: EventBingo, GameID: g.ID, Round: g.Round, BoardID: b.ID, Lines: won, At: at})
	return ClaimResult{Accepted: true, Lines: won}, nil
}

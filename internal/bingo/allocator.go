package bingo

import (
	"context"
	"errors"
	"fmt"
)

// ResolveBoard returns the board identified by presentedID when it belongs
// to the running round of the active game, and mints a new one otherwise.
// created tells the caller to hand out the new board's id.
//
// It does not take the game lock: two polls racing with the same stale id
// may each mint a board, which only costs an extra row.
func (h *Hall) ResolveBoard(ctx context.Context, presentedID string) (b *Board, active *Game, created bool, err error) {
	active, err = h.store.ActiveGame(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	if presentedID != "" {
		b, err = h.store.GetBoard(ctx, presentedID)
		switch {
		case err == nil && b.Belongs(active):
			return b, active, false, nil
		case err != nil && !errors.Is(err, ErrUnknownBoard):
			return nil, nil, false, fmt.Errorf("loading board: %w", err)
		}
	}

	b = NewBoard(h.newID(), active, h.src, h.now())
	if err := h.store.CreateBoard(ctx, b); err != nil {
		return nil, nil, false, fmt.Errorf("creating board: %w", err)
	}
	h.logger.Debug("board issued", "board_id", b.ID, "game_id", active.ID, "round", active.Round, "offset", b.Offset)
	return b, active, true, nil
}

// BoardView is what a polling client sees of its board.
type BoardView struct {
	Board   *Board
	Marks   Marks
	Current *int
	Drawn   int
	Issued  bool
}

// FetchBoard resolves the presented board and derives its marks from the
// active game's draws. It returns ErrNoActiveGame when nothing is started.
func (h *Hall) FetchBoard(ctx context.Context, presentedID string) (BoardView, error) {
	b, g, created, err := h.ResolveBoard(ctx, presentedID)
	if err != nil {
		return BoardView{}, err
	}

	view := BoardView{
		Board:  b,
		Marks:  DeriveMarks(b, g.Draws.Numbers()),
		Drawn:  g.Draws.Len(),
		Issued: created,
	}
	if n, ok := g.CurrentNumber(); ok {
		view.Current = &n
	}
	return view, nil
}

// FeedGame names the game whose events a client should follow: the game of
// the presented board when it is known, otherwise the active game.
func (h *Hall) FeedGame(ctx context.Context, presentedID string) (string, error) {
	if presentedID != "" {
		b, err := h.store.GetBoard(ctx, presentedID)
		if err == nil {
			return b.GameID, nil
		}
		if !errors.Is(err, ErrUnknownBoard) {
			return "", fmt.Errorf("loading board: %w", err)
		}
	}
	g, err := h.store.ActiveGame(ctx)
	if err != nil {
		return "", err
	}
	return g.ID, nil
}

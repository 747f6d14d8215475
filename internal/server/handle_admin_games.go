package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/bingohall/internal/bingo"
)

// AdminGame is a game as shown to operators.
type AdminGame struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	Round         int     `json:"round"`
	DrawnNumbers  []int   `json:"drawnNumbers"`
	CurrentNumber *int    `json:"currentNumber"`
	StartedAt     *string `json:"startedAt"`
	FinishedAt    *string `json:"finishedAt"`
	CreatedAt     string  `json:"createdAt"`
}

// AdminGameRequest is the request body for creating a game.
type AdminGameRequest struct {
	Name string `json:"name"`
}

// DrawResponse reports a draw. Exhausted is set when no number was left.
type DrawResponse struct {
	GameID    string `json:"gameId"`
	Number    int    `json:"number,omitempty"`
	Drawn     int    `json:"drawn"`
	Exhausted bool   `json:"exhausted"`
}

// WinnerItem is one winning board of the current round.
type WinnerItem struct {
	BoardID string `json:"boardId"`
	WonAt   string `json:"wonAt"`
}

func (req *AdminGameRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if len(req.Name) > 100 {
		return "name must be at most 100 characters"
	}
	return ""
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toAdminGame(g *bingo.Game) AdminGame {
	out := AdminGame{
		ID:           g.ID,
		Name:         g.Name,
		Status:       string(g.Status),
		Round:        g.Round,
		DrawnNumbers: g.Draws.Numbers(),
		StartedAt:    formatOptionalTime(g.StartedAt),
		FinishedAt:   formatOptionalTime(g.FinishedAt),
		CreatedAt:    formatTime(g.CreatedAt),
	}
	if n, ok := g.CurrentNumber(); ok {
		out.CurrentNumber = &n
	}
	return out
}

// writeHallError maps hall errors to admin responses.
func writeHallError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, bingo.ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, bingo.ErrGameNotActive):
		writeError(w, http.StatusConflict, "game is not active")
	default:
		logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func handleAdminListGames(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := hall.Games(r.Context())
		if err != nil {
			writeHallError(w, logger, "listing games", err)
			return
		}
		out := make([]AdminGame, 0, len(games))
		for _, g := range games {
			out = append(out, toAdminGame(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleAdminCreateGame(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		g, err := hall.CreateGame(r.Context(), req.Name)
		if err != nil {
			writeHallError(w, logger, "creating game", err)
			return
		}
		writeJSON(w, http.StatusCreated, toAdminGame(g))
	}
}

func handleAdminGetGame(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := hall.Game(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeHallError(w, logger, "loading game", err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminGame(g))
	}
}

func handleAdminStartGame(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := hall.Start(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeHallError(w, logger, "starting game", err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminGame(g))
	}
}

func handleAdminStopGame(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := hall.Stop(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeHallError(w, logger, "stopping game", err)
			return
		}
		writeJSON(w, http.StatusOK, toAdminGame(g))
	}
}

func handleAdminDraw(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := hall.DrawNext(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeHallError(w, logger, "drawing number", err)
			return
		}
		writeJSON(w, http.StatusOK, DrawResponse{
			GameID:    res.GameID,
			Number:    res.Number,
			Drawn:     res.Drawn,
			Exhausted: res.Exhausted,
		})
	}
}

func handleAdminWinners(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards, err := hall.Winners(r.Context(), chi.URLParam(r, "gameID"))
		if err != nil {
			writeHallError(w, logger, "listing winners", err)
			return
		}
		out := make([]WinnerItem, 0, len(boards))
		for _, b := range boards {
			item := WinnerItem{BoardID: b.ID}
			if b.WonAt != nil {
				item.WonAt = formatTime(*b.WonAt)
			}
			out = append(out, item)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

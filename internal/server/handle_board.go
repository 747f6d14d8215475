package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/credential"
)

// BoardResponse is what a polling player receives. Board fields are
// omitted when no game is running.
type BoardResponse struct {
	Status        string       `json:"status"`
	BoardID       string       `json:"boardId,omitempty"`
	Numbers       *bingo.Grid  `json:"numbers,omitempty"`
	Marks         *bingo.Marks `json:"marks,omitempty"`
	CurrentNumber *int         `json:"currentNumber"`
	DrawnCount    int          `json:"drawnCount,omitempty"`
}

func handleBoard(logger *slog.Logger, hall *bingo.Hall, cookieSecure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := hall.FetchBoard(r.Context(), credential.FromRequest(r))
		if errors.Is(err, bingo.ErrNoActiveGame) {
			writeJSON(w, http.StatusOK, StatusResponse{Status: string(bingo.StatusFinished)})
			return
		}
		if err != nil {
			logger.Error("fetching board", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if view.Issued {
			credential.SetCookie(w, view.Board.ID, cookieSecure)
		}

		writeJSON(w, http.StatusOK, BoardResponse{
			Status:        string(bingo.StatusStarted),
			BoardID:       view.Board.ID,
			Numbers:       &view.Board.Numbers,
			Marks:         &view.Marks,
			CurrentNumber: view.Current,
			DrawnCount:    view.Drawn,
		})
	}
}

// StatusResponse is the board response while no game is started.
type StatusResponse struct {
	Status string `json:"status"`
}

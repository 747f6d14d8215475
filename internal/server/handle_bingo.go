package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/credential"
)

// BingoRequest names the board being claimed. When BoardID is empty the
// board credential of the request is used.
type BingoRequest struct {
	BoardID string `json:"boardId"`
}

type BingoResponse struct {
	OK         bool         `json:"ok"`
	AlreadyWon bool         `json:"alreadyWon,omitempty"`
	Lines      []bingo.Line `json:"lines,omitempty"`
	Error      string       `json:"error,omitempty"`
}

func handleBingo(logger *slog.Logger, hall *bingo.Hall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BingoRequest
		// An empty body, chunked or not, decodes to io.EOF.
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, BingoResponse{Error: "invalid request body"})
			return
		}
		if req.BoardID == "" {
			req.BoardID = credential.FromRequest(r)
		}

		res, err := hall.Claim(r.Context(), req.BoardID)
		switch {
		case errors.Is(err, bingo.ErrUnknownBoard):
			writeJSON(w, http.StatusNotFound, BingoResponse{Error: "unknown board"})
			return
		case errors.Is(err, bingo.ErrGameNotActive):
			writeJSON(w, http.StatusConflict, BingoResponse{Error: "game is not active"})
			return
		case err != nil:
			logger.Error("claiming bingo", "board_id", req.BoardID, "error", err)
			writeJSON(w, http.StatusInternalServerError, BingoResponse{Error: "internal error"})
			return
		}

		if !res.Accepted {
			writeJSON(w, http.StatusOK, BingoResponse{Error: "no completed line"})
			return
		}
		writeJSON(w, http.StatusOK, BingoResponse{OK: true, AlreadyWon: res.AlreadyWon, Lines: res.Lines})
	}
}

package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/credential"
	"github.com/playperu/bingohall/internal/events"
)

// handleEvents streams the events of the presented board's game, or of the
// active game when no board is presented.
func handleEvents(logger *slog.Logger, hall *bingo.Hall, broker *events.Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := hall.FeedGame(r.Context(), credential.FromRequest(r))
		switch {
		case errors.Is(err, bingo.ErrNoActiveGame):
			writeError(w, http.StatusConflict, "no active game")
			return
		case err != nil:
			logger.Error("resolving event feed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(gameID)
		defer broker.Unsubscribe(gameID, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: game\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

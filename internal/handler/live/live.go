// Package live streams game events over WebSocket.
package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/credential"
	"github.com/playperu/bingohall/internal/events"
)

// GameResolver picks the game a client follows from its board credential.
type GameResolver interface {
	FeedGame(ctx context.Context, boardID string) (string, error)
}

type Handler struct {
	games  GameResolver
	broker *events.Broker
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger, games GameResolver, broker *events.Broker) *Handler {
	return &Handler{games: games, broker: broker, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/live", h.live)
	return r
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	gameID, err := h.games.FeedGame(r.Context(), credential.FromRequest(r))
	if errors.Is(err, bingo.ErrNoActiveGame) {
		http.Error(w, "no active game", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.Error("resolving live feed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ch := h.broker.Subscribe(gameID)
	defer h.broker.Unsubscribe(gameID, ch)

	// The feed is one-way; CloseRead handles pings and the peer's close.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("live feed closed", "game_id", gameID)
			return
		case data := <-ch:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}

package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	hall := opts.Hall

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Bingo Hall API", "/openapi.json", "/docs"))

	// Player routes; the board credential travels in a cookie, header or query.
	r.Get("/api/board", handleBoard(logger, hall, opts.CookieSecure))
	r.Post("/api/bingo", handleBingo(logger, hall))
	r.Get("/api/events", handleEvents(logger, hall, opts.Broker))

	r.Route("/api/admin/games", func(r chi.Router) {
		r.Use(adminTokenMiddleware(opts.AdminTokenHash))

		r.Get("/", handleAdminListGames(logger, hall))
		r.Post("/", handleAdminCreateGame(logger, hall))
		r.Get("/{gameID}", handleAdminGetGame(logger, hall))
		r.Post("/{gameID}/start", handleAdminStartGame(logger, hall))
		r.Post("/{gameID}/stop", handleAdminStopGame(logger, hall))
		r.Post("/{gameID}/draw", handleAdminDraw(logger, hall))
		r.Get("/{gameID}/winners", handleAdminWinners(logger, hall))
	})
}

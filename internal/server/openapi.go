package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is the state of one dependency in the health report.
type HealthStatus struct {
	Status string `json:"status" enum:"ok,error"`
}

// HealthResponse documents /healthz. Redis is only reported when configured.
type HealthResponse struct {
	SQLite HealthStatus  `json:"sqlite"`
	Redis  *HealthStatus `json:"redis,omitempty"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Bingo Hall API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the bingo hall: player boards, win claims and game control.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws/live
	getLive, _ := r.NewOperationContext(http.MethodGet, "/ws/live")
	getLive.SetSummary("Live game feed")
	getLive.SetDescription("Upgrades to a WebSocket that streams the events of the board's game, or of the active game.")
	getLive.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	getLive.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getLive)

	// GET /api/board
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/board")
	getBoard.SetSummary("Fetch board")
	getBoard.SetDescription("Returns the player's board with marks derived from the draws. " +
		"A missing or stale board_id credential is replaced and set as a cookie. " +
		"Without a started game only the status is returned.")
	getBoard.AddRespStructure(BoardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getBoard)

	// POST /api/bingo
	postBingo, _ := r.NewOperationContext(http.MethodPost, "/api/bingo")
	postBingo.SetSummary("Claim bingo")
	postBingo.SetDescription("Verifies a win for the board. Marks are recomputed on the server.")
	postBingo.AddReqStructure(BingoRequest{})
	postBingo.AddRespStructure(BingoResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postBingo.AddRespStructure(BingoResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postBingo.AddRespStructure(BingoResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postBingo)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of the board's game: starts, stops, draws and wins.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getEvents)

	// GET /api/admin/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns all games, newest first. Requires Bearer token when configured.")
	listGames.AddRespStructure([]AdminGame{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listGames)

	// POST /api/admin/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a finished game. Requires Bearer token when configured.")
	createGame.AddReqStructure(AdminGameRequest{})
	createGame.AddRespStructure(AdminGame{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createGame)

	// GET /api/admin/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns a game with its drawn numbers.")
	getGame.AddRespStructure(AdminGame{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getGame)

	// POST /api/admin/games/{gameID}/start
	startGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games/{gameID}/start")
	startGame.SetSummary("Start game")
	startGame.SetDescription("Starts a new round with no draws. Any other started game is stopped first.")
	startGame.AddRespStructure(AdminGame{}, openapi.WithHTTPStatus(http.StatusOK))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(startGame)

	// POST /api/admin/games/{gameID}/stop
	stopGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games/{gameID}/stop")
	stopGame.SetSummary("Stop game")
	stopGame.SetDescription("Finishes a started game and freezes its draws.")
	stopGame.AddRespStructure(AdminGame{}, openapi.WithHTTPStatus(http.StatusOK))
	stopGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	stopGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	stopGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(stopGame)

	// POST /api/admin/games/{gameID}/draw
	drawNumber, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games/{gameID}/draw")
	drawNumber.SetSummary("Draw number")
	drawNumber.SetDescription("Draws the next number. Reports exhausted once all 75 numbers are out.")
	drawNumber.AddRespStructure(DrawResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	drawNumber.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	drawNumber.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	drawNumber.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(drawNumber)

	// GET /api/admin/games/{gameID}/winners
	listWinners, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games/{gameID}/winners")
	listWinners.SetSummary("List winners")
	listWinners.SetDescription("Returns the winning boards of the game's current round in win order.")
	listWinners.AddRespStructure([]WinnerItem{}, openapi.WithHTTPStatus(http.StatusOK))
	listWinners.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	listWinners.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listWinners)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

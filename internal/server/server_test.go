package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/credential"
	"github.com/playperu/bingohall/internal/database"
	"github.com/playperu/bingohall/internal/events"
	"github.com/playperu/bingohall/internal/migrations"
	"github.com/playperu/bingohall/internal/store"
)

func newTestHall(t *testing.T, opts ...bingo.Option) *bingo.Hall {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return bingo.NewHall(store.NewSQLite(db), opts...)
}

type testEnv struct {
	hall   *bingo.Hall
	broker *events.Broker
	h      http.Handler
}

func newTestEnv(t *testing.T, adminTokenHash string) *testEnv {
	t.Helper()
	broker := events.NewBroker()
	hall := newTestHall(t, bingo.WithNotifier(broker))
	return &testEnv{
		hall:   hall,
		broker: broker,
		h: NewHandler(slog.New(slog.DiscardHandler), Options{
			Hall:           hall,
			Broker:         broker,
			AdminTokenHash: adminTokenHash,
		}),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, mod ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, m := range mod {
		m(req)
	}
	w := httptest.NewRecorder()
	e.h.ServeHTTP(w, req)
	return w
}

// startGame creates and starts a game through the admin API.
func (e *testEnv) startGame(t *testing.T, name string, mod ...func(*http.Request)) AdminGame {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/games", AdminGameRequest{Name: name}, mod...)
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var g AdminGame
	json.NewDecoder(w.Body).Decode(&g)

	w = e.do(t, http.MethodPost, "/api/admin/games/"+g.ID+"/start", nil, mod...)
	if w.Code != http.StatusOK {
		t.Fatalf("start game: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	json.NewDecoder(w.Body).Decode(&g)
	return g
}

func withCookie(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: value}) }
}

func withHeader(name, value string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(name, value) }
}

func boardCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == credential.CookieName {
			return c
		}
	}
	return nil
}

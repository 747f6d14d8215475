package bingo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hall runs the games of one bingo hall. Start, Stop, DrawNext and Claim
// for a game are serialized by a per-game lock; board fetches read store
// snapshots without it.
type Hall struct {
	store    Store
	src      Source
	now      func() time.Time
	newID    func() string
	notifier Notifier
	logger   *slog.Logger

	// startMu keeps two starts from both leaving a game started.
	// Lock order: startMu, then game locks.
	startMu sync.Mutex

	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

type Option func(*Hall)

func WithSource(src Source) Option { return func(h *Hall) { h.src = src } }

func WithClock(now func() time.Time) Option { return func(h *Hall) { h.now = now } }

func WithIDGenerator(fn func() string) Option { return func(h *Hall) { h.newID = fn } }

func WithNotifier(n Notifier) Option { return func(h *Hall) { h.notifier = n } }

func WithLogger(l *slog.Logger) Option { return func(h *Hall) { h.logger = l } }

func NewHall(store Store, opts ...Option) *Hall {
	h := &Hall{
		store:    store,
		src:      DefaultSource,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		notifier: nopNotifier{},
		logger:   slog.New(slog.DiscardHandler),
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// lock acquires the exclusion boundary of gameID and returns its release.
func (h *Hall) lock(gameID string) func() {
	h.mu.RLock()
	m, ok := h.locks[gameID]
	h.mu.RUnlock()

	if !ok {
		h.mu.Lock()
		// Double-check after acquiring write lock.
		if m, ok = h.locks[gameID]; !ok {
			m = &sync.Mutex{}
			h.locks[gameID] = m
		}
		h.mu.Unlock()
	}

	m.Lock()
	return m.Unlock
}

// DrawResult reports the outcome of a draw request. Exhausted is set, with
// a zero Number, when every number was already drawn.
type DrawResult struct {
	GameID    string
	Number    int
	Drawn     int
	Exhausted bool
}

func (h *Hall) CreateGame(ctx context.Context, name string) (*Game, error) {
	g := NewGame(h.newID(), name, h.now())
	if err := h.store.CreateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	h.logger.Info("game created", "game_id", g.ID, "name", name)
	return g, nil
}

func (h *Hall) Game(ctx context.Context, id string) (*Game, error) {
	return h.store.GetGame(ctx, id)
}

func (h *Hall) Games(ctx context.Context) ([]*Game, error) {
	return h.store.ListGames(ctx)
}

// ActiveGame returns the started game, or ErrNoActiveGame.
func (h *Hall) ActiveGame(ctx context.Context) (*Game, error) {
	return h.store.ActiveGame(ctx)
}

// Start starts game id, stopping any other started game first so at most
// one game is ever started. An unknown id fails before anything is stopped.
func (h *Hall) Start(ctx context.Context, id string) (*Game, error) {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if _, err := h.store.GetGame(ctx, id); err != nil {
		return nil, err
	}

	games, err := h.store.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	for _, other := range games {
		if other.ID == id || !other.Active() {
			continue
		}
		if _, err := h.Stop(ctx, other.ID); err != nil && !errors.Is(err, ErrGameNotActive) {
			return nil, fmt.Errorf("stopping game %s: %w", other.ID, err)
		}
	}

	unlock := h.lock(id)
	defer unlock()

	g, err := h.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Start(h.now())
	if err := h.store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	h.logger.Info("game started", "game_id", g.ID, "round", g.Round)
	h.notifier.Notify(Event{Type: EventGameStarted, GameID: g.ID, Round: g.Round, At: *g.StartedAt})
	return g, nil
}

// Stop finishes game id. A game that is not started yields ErrGameNotActive.
func (h *Hall) Stop(ctx context.Context, id string) (*Game, error) {
	unlock := h.lock(id)
	defer unlock()

	g, err := h.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Stop(h.now()); err != nil {
		return g, err
	}
	if err := h.store.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	h.logger.Info("game stopped", "game_id", g.ID, "round", g.Round, "drawn", g.Draws.Len())
	h.notifier.Notify(Event{Type: EventGameStopped, GameID: g.ID, Round: g.Round, Drawn: g.Draws.Len(), At: *g.FinishedAt})
	return g, nil
}

// DrawNext reveals the next number of game id. A finished game yields
// ErrGameNotActive; an exhausted sequence is reported in the result.
func (h *Hall) DrawNext(ctx context.Context, id string) (DrawResult, error) {
	unlock := h.lock(id)
	defer unlock()

	g, err := h.store.GetGame(ctx, id)
	if err != nil {
		return DrawResult{}, err
	}

	n, err := g.DrawNext(h.src)
	if errors.Is(err, ErrExhausted) {
		return DrawResult{GameID: g.ID, Drawn: g.Draws.Len(), Exhausted: true}, nil
	}
	if err != nil {
		return DrawResult{}, err
	}

	if err := h.store.SaveGame(ctx, g); err != nil {
		return DrawResult{}, fmt.Errorf("saving game: %w", err)
	}

	res := DrawResult{GameID: g.ID, Number: n, Drawn: g.Draws.Len()}
	h.logger.Debug("number drawn", "game_id", g.ID, "number", n, "drawn", res.Drawn)
	h.notifier.Notify(Event{Type: EventNumberDrawn, GameID: g.ID, Round: g.Round, Number: n, Drawn: res.Drawn, At: h.now()})
	return res, nil
}

// DrawActive draws the next number of whichever game is started.
func (h *Hall) DrawActive(ctx context.Context) (DrawResult, error) {
	g, err := h.store.ActiveGame(ctx)
	if err != nil {
		return DrawResult{}, err
	}
	return h.DrawNext(ctx, g.ID)
}

// Winners lists the winning boards of the current round of game id.
func (h *Hall) Winners(ctx context.Context, id string) ([]*Board, error) {
	g, err := h.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.store.ListWinners(ctx, g.ID, g.Round)
}

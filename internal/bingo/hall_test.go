package bingo_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/database"
	"github.com/playperu/bingohall/internal/migrations"
	"github.com/playperu/bingohall/internal/store"
)

type recorder struct {
	mu     sync.Mutex
	events []bingo.Event
}

func (r *recorder) Notify(e bingo.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) count(typ bingo.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

type fixture struct {
	hall   *bingo.Hall
	store  bingo.Store
	events *recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWith(t, store.NewMemory())
}

func newFixtureWith(t *testing.T, st bingo.Store) fixture {
	t.Helper()
	var seq atomic.Int64
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var tick atomic.Int64

	rec := &recorder{}
	h := bingo.NewHall(st,
		bingo.WithNotifier(rec),
		bingo.WithIDGenerator(func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }),
		bingo.WithClock(func() time.Time { return clock.Add(time.Duration(tick.Add(1)) * time.Millisecond) }),
	)
	return fixture{hall: h, store: st, events: rec}
}

// newFileStore opens a file-backed SQLite store under a temp dir.
func newFileStore(t *testing.T) bingo.Store {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "bingo.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return store.NewSQLite(db)
}

// forEachStore runs fn with a hall on every Store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, f fixture)) {
	stores := []struct {
		name string
		new  func(t *testing.T) bingo.Store
	}{
		{name: "memory", new: func(*testing.T) bingo.Store { return store.NewMemory() }},
		{name: "sqlite-file", new: newFileStore},
	}
	for _, tt := range stores {
		t.Run(tt.name, func(t *testing.T) { fn(t, newFixtureWith(t, tt.new(t))) })
	}
}

// startWithDraws creates and starts a game whose draws are set to draws.
func (f fixture) startWithDraws(t *testing.T, draws []int) *bingo.Game {
	t.Helper()
	ctx := context.Background()
	g, err := f.hall.CreateGame(ctx, "Friday")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if g, err = f.hall.Start(ctx, g.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	g.Draws = bingo.NewDrawSequence(draws)
	if err := f.store.SaveGame(ctx, g); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	return g
}

// addBoard stores a board of g with the given first row and offset; the
// other rows hold numbers 51..70.
func (f fixture) addBoard(t *testing.T, g *bingo.Game, id string, firstRow [5]int, offset int) *bingo.Board {
	t.Helper()
	b := &bingo.Board{ID: id, GameID: g.ID, Round: g.Round, Offset: offset, CreatedAt: time.Now()}
	b.Numbers[0] = firstRow
	n := 51
	for r := 1; r < bingo.Size; r++ {
		for c := range bingo.Size {
			b.Numbers[r][c] = n
			n++
		}
	}
	if err := f.store.CreateBoard(context.Background(), b); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	return b
}

func TestStartStopsOtherGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _ := f.hall.CreateGame(ctx, "A")
	b, _ := f.hall.CreateGame(ctx, "B")

	if _, err := f.hall.Start(ctx, a.ID); err != nil {
		t.Fatalf("Start A: %v", err)
	}
	if _, err := f.hall.Start(ctx, b.ID); err != nil {
		t.Fatalf("Start B: %v", err)
	}

	active, err := f.hall.ActiveGame(ctx)
	if err != nil {
		t.Fatalf("ActiveGame: %v", err)
	}
	if active.ID != b.ID {
		t.Errorf("active = %s, want %s", active.ID, b.ID)
	}
	if a, _ = f.hall.Game(ctx, a.ID); a.Active() {
		t.Error("game A should have been stopped")
	}
	if got := f.events.count(bingo.EventGameStopped); got != 1 {
		t.Errorf("game_stopped events = %d, want 1", got)
	}
}

func TestStartTwiceIsAReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, _ := f.hall.CreateGame(ctx, "Friday")
	f.hall.Start(ctx, g.ID)
	for range 3 {
		if _, err := f.hall.DrawNext(ctx, g.ID); err != nil {
			t.Fatalf("DrawNext: %v", err)
		}
	}

	g, err := f.hall.Start(ctx, g.ID)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if g.Status != bingo.StatusStarted {
		t.Errorf("status = %s, want started", g.Status)
	}
	if n := g.Draws.Numbers(); len(n) != 0 {
		t.Errorf("drawn = %v, want empty", n)
	}

	stored, _ := f.hall.Game(ctx, g.ID)
	if stored.Draws.Len() != 0 || !stored.Active() {
		t.Errorf("stored game = %s with %d draws, want started with none", stored.Status, stored.Draws.Len())
	}
}

func TestStopRejectsFinishedGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, _ := f.hall.CreateGame(ctx, "Friday")
	if _, err := f.hall.Stop(ctx, g.ID); !errors.Is(err, bingo.ErrGameNotActive) {
		t.Errorf("Stop finished: err = %v, want ErrGameNotActive", err)
	}
	if _, err := f.hall.Stop(ctx, "missing"); !errors.Is(err, bingo.ErrNotFound) {
		t.Errorf("Stop unknown: err = %v, want ErrNotFound", err)
	}
}

func TestDrawNextOnFinishedGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.startWithDraws(t, []int{8, 12})
	if _, err := f.hall.Stop(ctx, g.ID); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	_, err := f.hall.DrawNext(ctx, g.ID)
	if !errors.Is(err, bingo.ErrGameNotActive) {
		t.Fatalf("err = %v, want ErrGameNotActive", err)
	}
	g, _ = f.hall.Game(ctx, g.ID)
	if !slices.Equal(g.Draws.Numbers(), []int{8, 12}) {
		t.Errorf("drawn = %v, want [8 12]", g.Draws.Numbers())
	}
	if got := f.events.count(bingo.EventNumberDrawn); got != 0 {
		t.Errorf("number_drawn events = %d, want 0", got)
	}
}

func TestDrawNextExhaustion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, _ := f.hall.CreateGame(ctx, "Friday")
	f.hall.Start(ctx, g.ID)

	for i := range bingo.MaxNumber {
		res, err := f.hall.DrawNext(ctx, g.ID)
		if err != nil {
			t.Fatalf("draw %d: %v", i+1, err)
		}
		if res.Exhausted || res.Drawn != i+1 {
			t.Fatalf("draw %d: %+v", i+1, res)
		}
	}

	res, err := f.hall.DrawNext(ctx, g.ID)
	if err != nil {
		t.Fatalf("draw past the end: %v", err)
	}
	if !res.Exhausted || res.Number != 0 || res.Drawn != bingo.MaxNumber {
		t.Errorf("result = %+v, want exhausted with %d drawn", res, bingo.MaxNumber)
	}
	if got := f.events.count(bingo.EventNumberDrawn); got != bingo.MaxNumber {
		t.Errorf("number_drawn events = %d, want %d", got, bingo.MaxNumber)
	}
}

func TestDrawActiveWithoutGame(t *testing.T) {
	f := newFixture(t)
	if _, err := f.hall.DrawActive(context.Background()); !errors.Is(err, bingo.ErrNoActiveGame) {
		t.Fatalf("err = %v, want ErrNoActiveGame", err)
	}
}

func TestStartUnknownGameKeepsRunningGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.startWithDraws(t, []int{1, 2, 3})

	if _, err := f.hall.Start(ctx, "no-such-game"); !errors.Is(err, bingo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	running, err := f.hall.ActiveGame(ctx)
	if err != nil {
		t.Fatalf("ActiveGame: %v", err)
	}
	if running.ID != g.ID || !slices.Equal(running.Draws.Numbers(), []int{1, 2, 3}) {
		t.Errorf("active = %s with %v, want %s with [1 2 3]", running.ID, running.Draws.Numbers(), g.ID)
	}
	if got := f.events.count(bingo.EventGameStopped); got != 0 {
		t.Errorf("game_stopped events = %d, want 0", got)
	}
	if got := f.events.count(bingo.EventGameStarted); got != 1 {
		t.Errorf("game_started events = %d, want 1", got)
	}
}

func TestConcurrentStartsLeaveOneActive(t *testing.T) {
	forEachStore(t, testConcurrentStarts)
}

func testConcurrentStarts(t *testing.T, f fixture) {
	ctx := context.Background()

	var ids []string
	for i := range 8 {
		g, _ := f.hall.CreateGame(ctx, fmt.Sprintf("game %d", i))
		ids = append(ids, g.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.hall.Start(ctx, id); err != nil {
				t.Errorf("Start %s: %v", id, err)
			}
		}()
	}
	wg.Wait()

	games, _ := f.hall.Games(ctx)
	active := 0
	for _, g := range games {
		if g.Active() {
			active++
		}
	}
	if active != 1 {
		t.Errorf("%d games started, want 1", active)
	}
}

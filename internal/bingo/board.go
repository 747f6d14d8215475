package bingo

import "time"

// Size is the side length of a board.
const Size = 5

type Grid [Size][Size]int

// Board is a card issued to one client for one round of a game. Only the
// winner fields ever change after creation.
type Board struct {
	ID      string
	GameID  string
	Round   int
	Numbers Grid
	// Offset is the first draw position this board counts.
	Offset    int
	Winner    bool
	WonAt     *time.Time
	CreatedAt time.Time
}

// NewBoard mints a board for the current round of g.
func NewBoard(id string, g *Game, src Source, now time.Time) *Board {
	return &Board{
		ID:        id,
		GameID:    g.ID,
		Round:     g.Round,
		Numbers:   GenerateGrid(src),
		Offset:    VisibilityOffset(g.Draws.Len()),
		CreatedAt: now,
	}
}

// VisibilityOffset returns where a board minted after drawn draws starts
// counting. A new board always sees the most recent draw, never the ones
// before it.
func VisibilityOffset(drawn int) int {
	if drawn <= 0 {
		return 0
	}
	return drawn - 1
}

// GenerateGrid fills a grid with distinct numbers from [MinNumber,
// MaxNumber], taken from a shrinking pool.
func GenerateGrid(src Source) Grid {
	pool := make([]int, 0, MaxNumber-MinNumber+1)
	for n := MinNumber; n <= MaxNumber; n++ {
		pool = append(pool, n)
	}

	var g Grid
	for i := range Size * Size {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		g[i/Size][i%Size] = pool[i]
	}
	return g
}

// Belongs reports whether the board was minted for the running round of g.
func (b *Board) Belongs(g *Game) bool {
	return g != nil && b.GameID == g.ID && b.Round == g.Round
}

func (b *Board) Clone() *Board {
	c := *b
	if b.WonAt != nil {
		t := *b.WonAt
		c.WonAt = &t
	}
	return &c
}

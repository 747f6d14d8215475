package bingo

import (
	"math/rand/v2"
	"slices"
)

const (
	MinNumber = 1
	MaxNumber = 75
)

// Source picks a uniform index in [0, n). *rand.Rand satisfies it, so tests
// can inject a seeded generator.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource is safe for concurrent use.
var DefaultSource Source = globalSource{}

// DrawSequence is the ordered, append-only history of numbers revealed for
// one game.
type DrawSequence struct {
	numbers []int
}

// NewDrawSequence restores a sequence from persisted numbers.
func NewDrawSequence(numbers []int) DrawSequence {
	return DrawSequence{numbers: slices.Clone(numbers)}
}

// Draw picks one of the numbers not yet drawn, appends it and returns it.
func (d *DrawSequence) Draw(src Source) (int, error) {
	pool := d.remaining()
	if len(pool) == 0 {
		return 0, ErrExhausted
	}
	n := pool[src.IntN(len(pool))]
	d.numbers = append(d.numbers, n)
	return n, nil
}

func (d *DrawSequence) Reset() { d.numbers = nil }

// Latest returns the most recent draw, or false before the first one.
func (d DrawSequence) Latest() (int, bool) {
	if len(d.numbers) == 0 {
		return 0, false
	}
	return d.numbers[len(d.numbers)-1], true
}

func (d DrawSequence) Len() int { return len(d.numbers) }

// Numbers returns a copy of the drawn numbers in draw order.
func (d DrawSequence) Numbers() []int {
	out := slices.Clone(d.numbers)
	if out == nil {
		out = []int{}
	}
	return out
}

func (d DrawSequence) Contains(n int) bool { return slices.Contains(d.numbers, n) }

func (d DrawSequence) remaining() []int {
	var drawn [MaxNumber + 1]bool
	for _, n := range d.numbers {
		if n >= MinNumber && n <= MaxNumber {
			drawn[n] = true
		}
	}
	pool := make([]int, 0, max(0, MaxNumber-len(d.numbers)))
	for n := MinNumber; n <= MaxNumber; n++ {
		if !drawn[n] {
			pool = append(pool, n)
		}
	}
	return pool
}

package bingo

import (
	"math/rand/v2"
	"testing"
)

// sequentialGrid numbers the cells 1..25 row by row.
func sequentialGrid() Grid {
	var g Grid
	for i := range Size * Size {
		g[i/Size][i%Size] = i + 1
	}
	return g
}

func TestDeriveMarksSeesOnlyFromOffset(t *testing.T) {
	// Board minted after [3 17 44 9 61]: offset 4, only 61 counts.
	b := &Board{Numbers: sequentialGrid(), Offset: VisibilityOffset(5)}
	b.Numbers[2][2] = 61

	m := DeriveMarks(b, []int{3, 17, 44, 9, 61})
	if got := m.Count(); got != 1 {
		t.Fatalf("marked %d cells, want 1", got)
	}
	if !m[2][2] {
		t.Error("cell holding 61 should be marked")
	}
	if m[0][2] {
		t.Error("3 was drawn before the board's offset and must not be marked")
	}
}

func TestDeriveMarksOffsetBeyondDraws(t *testing.T) {
	b := &Board{Numbers: sequentialGrid(), Offset: 3}
	if got := DeriveMarks(b, []int{1, 2}).Count(); got != 0 {
		t.Errorf("marked %d cells, want 0", got)
	}
	if got := DeriveMarks(b, nil).Count(); got != 0 {
		t.Errorf("marked %d cells with no draws, want 0", got)
	}
}

func TestDeriveMarksMonotonic(t *testing.T) {
	src := rand.New(rand.NewPCG(11, 12))
	for trial := range 20 {
		b := &Board{Numbers: GenerateGrid(src), Offset: trial % 3}

		var seq DrawSequence
		var prev Marks
		for range MaxNumber {
			if _, err := seq.Draw(src); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			cur := DeriveMarks(b, seq.Numbers())
			for r := range Size {
				for c := range Size {
					if prev[r][c] && !cur[r][c] {
						t.Fatalf("trial %d: cell %d,%d flipped to unmarked after %d draws", trial, r, c, seq.Len())
					}
				}
			}
			prev = cur
		}
		if b.Offset == 0 && prev.Count() != Size*Size {
			t.Errorf("trial %d: %d cells marked after every number, want all", trial, prev.Count())
		}
	}
}

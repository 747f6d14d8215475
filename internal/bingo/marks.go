package bingo

// Marks is the hit state of each cell of a board.
type Marks [Size][Size]bool

// DeriveMarks marks every cell whose number was drawn at or after the
// board's offset. It always recomputes from drawn, which only grows, so a
// board's marks never go from true to false during a round.
func DeriveMarks(b *Board, drawn []int) Marks {
	var m Marks
	if b.Offset < 0 || b.Offset >= len(drawn) {
		return m
	}

	relevant := make(map[int]struct{}, len(drawn)-b.Offset)
	for _, n := range drawn[b.Offset:] {
		relevant[n] = struct{}{}
	}

	for r := range Size {
		for c := range Size {
			_, m[r][c] = relevant[b.Numbers[r][c]]
		}
	}
	return m
}

// Count returns the number of marked cells.
func (m Marks) Count() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if m[r][c] {
				n++
			}
		}
	}
	return n
}

package bingo

import "fmt"

// Line is one winnable set of cells: a row, a column or a main diagonal.
type Line struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	cells [Size][2]int
}

func (l Line) String() string { return fmt.Sprintf("%s %d", l.Kind, l.Index) }

// lines lists the 12 winnable lines: 5 rows, 5 columns, 2 diagonals.
var lines = func() []Line {
	out := make([]Line, 0, 2*Size+2)
	for r := range Size {
		l := Line{Kind: "row", Index: r}
		for c := range Size {
			l.cells[c] = [2]int{r, c}
		}
		out = append(out, l)
	}
	for c := range Size {
		l := Line{Kind: "column", Index: c}
		for r := range Size {
			l.cells[r] = [2]int{r, c}
		}
		out = append(out, l)
	}
	diag := Line{Kind: "diagonal", Index: 0}
	anti := Line{Kind: "diagonal", Index: 1}
	for i := range Size {
		diag.cells[i] = [2]int{i, i}
		anti.cells[i] = [2]int{i, Size - 1 - i}
	}
	return append(out, diag, anti)
}()

func (l Line) complete(m Marks) bool {
	for _, cell := range l.cells {
		if !m[cell[0]][cell[1]] {
			return false
		}
	}
	return true
}

// IsComplete reports whether any row, column or main diagonal is fully
// marked.
func IsComplete(m Marks) bool {
	for _, l := range lines {
		if l.complete(m) {
			return true
		}
	}
	return false
}

// CompletedLines returns every fully marked line, rows first.
func CompletedLines(m Marks) []Line {
	var out []Line
	for _, l := range lines {
		if l.complete(m) {
			out = append(out, l)
		}
	}
	return out
}

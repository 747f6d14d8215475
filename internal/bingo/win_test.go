package bingo

import "testing"

func marksOf(cells ...[2]int) Marks {
	var m Marks
	for _, c := range cells {
		m[c[0]][c[1]] = true
	}
	return m
}

func TestCompletedLines(t *testing.T) {
	fullRow := func(r int) [][2]int {
		out := make([][2]int, Size)
		for c := range Size {
			out[c] = [2]int{r, c}
		}
		return out
	}

	tests := []struct {
		name  string
		marks Marks
		want  []string
	}{
		{name: "empty", marks: Marks{}, want: nil},
		{name: "first row", marks: marksOf(fullRow(0)...), want: []string{"row 0"}},
		{
			name:  "last column",
			marks: marksOf([2]int{0, 4}, [2]int{1, 4}, [2]int{2, 4}, [2]int{3, 4}, [2]int{4, 4}),
			want:  []string{"column 4"},
		},
		{
			name:  "main diagonal",
			marks: marksOf([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4}),
			want:  []string{"diagonal 0"},
		},
		{
			name:  "anti diagonal",
			marks: marksOf([2]int{0, 4}, [2]int{1, 3}, [2]int{2, 2}, [2]int{3, 1}, [2]int{4, 0}),
			want:  []string{"diagonal 1"},
		},
		{
			name:  "four of a row",
			marks: marksOf([2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}, [2]int{1, 3}),
			want:  nil,
		},
		{
			name:  "broken diagonal",
			marks: marksOf([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 3}, [2]int{3, 3}, [2]int{4, 4}),
			want:  nil,
		},
		{
			name:  "row and column",
			marks: marksOf(append(fullRow(2), [2]int{0, 1}, [2]int{1, 1}, [2]int{3, 1}, [2]int{4, 1})...),
			want:  []string{"row 2", "column 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletedLines(tt.marks)
			if len(got) != len(tt.want) {
				t.Fatalf("CompletedLines = %v, want %v", got, tt.want)
			}
			for i, l := range got {
				if l.String() != tt.want[i] {
					t.Errorf("line %d = %s, want %s", i, l, tt.want[i])
				}
			}
			if IsComplete(tt.marks) != (len(tt.want) > 0) {
				t.Errorf("IsComplete = %v, want %v", IsComplete(tt.marks), len(tt.want) > 0)
			}
		})
	}
}

func TestFullCardCompletesEveryLine(t *testing.T) {
	var m Marks
	for r := range Size {
		for c := range Size {
			m[r][c] = true
		}
	}
	if got := len(CompletedLines(m)); got != 2*Size+2 {
		t.Errorf("full card completes %d lines, want %d", got, 2*Size+2)
	}
}

package problem

import (
	"strings"
	"testing"

	"agon/internal/genome"
)

// solvedDefaultPuzzle is the unique solution of DefaultPuzzle.
var solvedDefaultPuzzle = [81]int{
	5, 3, 4, 6, 7, 8, 9, 1, 2,
	6, 7, 2, 1, 9, 5, 3, 4, 8,
	1, 9, 8, 3, 4, 2, 5, 6, 7,
	8, 5, 9, 7, 6, 1, 4, 2, 3,
	4, 2, 6, 8, 5, 3, 7, 9, 1,
	7, 1, 3, 9, 2, 4, 8, 5, 6,
	9, 6, 1, 5, 3, 7, 2, 8, 4,
	2, 8, 7, 4, 1, 9, 6, 3, 5,
	3, 4, 5, 2, 8, 6, 1, 7, 9,
}

func solvedSudokuGenome(t *testing.T) *genome.PermGenome[int] {
	t.Helper()
	genes := make([]int, 0, 81)
	for i, v := range DefaultPuzzle {
		if v == 0 {
			genes = append(genes, solvedDefaultPuzzle[i])
		}
	}
	g, err := genome.NewPermGenome(genome.PermConfig[int]{Base: genes})
	if err != nil {
		t.Fatalf("solved genome: %v", err)
	}
	return g
}

func TestNewSudokuValidation(t *testing.T) {
	bad := DefaultPuzzle
	bad[0] = 12
	if _, err := NewSudoku(bad); err == nil {
		t.Fatal("expected error for an out-of-range cell")
	}

	var full [81]int
	for i := range full {
		full[i] = i%9 + 1
	}
	if _, err := NewSudoku(full); err == nil {
		t.Fatal("expected error for a puzzle with no blanks")
	}
}

func TestSudokuBaseCoversMissingDigits(t *testing.T) {
	p, err := NewSudoku(DefaultPuzzle)
	if err != nil {
		t.Fatalf("new sudoku: %v", err)
	}
	if len(p.base) != len(p.blanks) {
		t.Fatalf("base has %d digits for %d blanks", len(p.base), len(p.blanks))
	}

	counts := [10]int{}
	for _, v := range DefaultPuzzle {
		counts[v]++
	}
	for _, d := range p.base {
		counts[d]++
	}
	for d := 1; d <= 9; d++ {
		if counts[d] != 9 {
			t.Fatalf("digit %d occurs %d times overall, want 9", d, counts[d])
		}
	}
}

func TestSudokuEvaluateSolvedBoardIsZero(t *testing.T) {
	p, err := NewSudoku(DefaultPuzzle)
	if err != nil {
		t.Fatalf("new sudoku: %v", err)
	}
	fit, err := p.Evaluate(solvedSudokuGenome(t))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fit != 0 {
		t.Fatalf("solved board scored %v, want 0", fit)
	}
}

func TestSudokuEvaluateCountsViolations(t *testing.T) {
	p, err := NewSudoku(DefaultPuzzle)
	if err != nil {
		t.Fatalf("new sudoku: %v", err)
	}

	g := solvedSudokuGenome(t)
	genes := g.Genes()
	// Swapping two unequal genes breaks at least one row, column or box.
	i, j := 0, 1
	for genes[i] == genes[j] {
		j++
	}
	genes[i], genes[j] = genes[j], genes[i]

	fit, err := p.Evaluate(g)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fit <= 0 {
		t.Fatalf("broken board scored %v, want > 0", fit)
	}
}

func TestSudokuEvaluateRejectsLengthMismatch(t *testing.T) {
	p, err := NewSudoku(DefaultPuzzle)
	if err != nil {
		t.Fatalf("new sudoku: %v", err)
	}
	short, err := genome.NewPermGenome(genome.PermConfig[int]{Base: []int{1, 2, 3}})
	if err != nil {
		t.Fatalf("short genome: %v", err)
	}
	if _, err := p.Evaluate(short); err == nil {
		t.Fatal("expected error for mismatched genome length")
	}
}

func TestSudokuRenderDrawsTheBoard(t *testing.T) {
	p, err := NewSudoku(DefaultPuzzle)
	if err != nil {
		t.Fatalf("new sudoku: %v", err)
	}
	out := p.Render(solvedSudokuGenome(t))
	if !strings.Contains(out, "| 5 3 4 | 6 7 8 | 9 1 2 |") {
		t.Fatalf("rendered board is missing the first row:\n%s", out)
	}
	if strings.Count(out, "\n") != 12 {
		t.Fatalf("rendered board has %d line breaks, want 12", strings.Count(out, "\n"))
	}
}

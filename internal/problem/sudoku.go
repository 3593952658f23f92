package problem

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"agon/internal/genome"
)

// DefaultPuzzle is a standard 9x9 sudoku in row-major order, 0 for blanks.
var DefaultPuzzle = [81]int{
	5, 3, 0, 0, 7, 0, 0, 0, 0,
	6, 0, 0, 1, 9, 5, 0, 0, 0,
	0, 9, 8, 0, 0, 0, 0, 6, 0,
	8, 0, 0, 0, 6, 0, 0, 0, 3,
	4, 0, 0, 8, 0, 3, 0, 0, 1,
	7, 0, 0, 0, 2, 0, 0, 0, 6,
	0, 6, 0, 0, 0, 0, 2, 8, 0,
	0, 0, 0, 4, 1, 9, 0, 0, 5,
	0, 0, 0, 0, 8, 0, 0, 7, 9,
}

// Sudoku treats the blank cells as a permutation problem: the genome is a
// permutation of the digits missing from the puzzle, filled into the blanks
// in row-major order. Fitness counts duplicate digits across all rows,
// columns and boxes, so zero means solved.
type Sudoku struct {
	puzzle [81]int
	blanks []int
	base   []int
}

func NewSudoku(puzzle [81]int) (Sudoku, error) {
	counts := [10]int{}
	blanks := make([]int, 0, 81)
	for i, v := range puzzle {
		if v < 0 || v > 9 {
			return Sudoku{}, fmt.Errorf("invalid cell value %d at index %d", v, i)
		}
		if v == 0 {
			blanks = append(blanks, i)
			continue
		}
		counts[v]++
		if counts[v] > 9 {
			return Sudoku{}, fmt.Errorf("digit %d appears more than 9 times", v)
		}
	}
	if len(blanks) == 0 {
		return Sudoku{}, fmt.Errorf("puzzle has no blank cells")
	}

	base := make([]int, 0, len(blanks))
	for d := 1; d <= 9; d++ {
		for i := counts[d]; i < 9; i++ {
			base = append(base, d)
		}
	}
	return Sudoku{puzzle: puzzle, blanks: blanks, base: base}, nil
}

func (p Sudoku) Name() string {
	return "sudoku"
}

func (p Sudoku) Describe() string {
	return fmt.Sprintf("fill %d blank cells with a permutation of the missing digits; fitness counts duplicates", len(p.blanks))
}

func (p Sudoku) Archetype(_ *rand.Rand) (genome.Genome, error) {
	return genome.NewPermGenome(genome.PermConfig[int]{Base: p.base})
}

func (p Sudoku) Evaluate(g genome.Genome) (float64, error) {
	board, err := p.fill(g)
	if err != nil {
		return 0, err
	}

	conflicts := 0
	for unit := 0; unit < 9; unit++ {
		var row, col, box [10]bool
		for k := 0; k < 9; k++ {
			conflicts += mark(&row, board[unit*9+k])
			conflicts += mark(&col, board[k*9+unit])
			r := (unit/3)*3 + k/3
			c := (unit%3)*3 + k%3
			conflicts += mark(&box, board[r*9+c])
		}
	}
	return float64(conflicts), nil
}

// mark records one digit in a unit and reports 1 when it is a duplicate.
func mark(seen *[10]bool, digit int) int {
	if seen[digit] {
		return 1
	}
	seen[digit] = true
	return 0
}

func (p Sudoku) fill(g genome.Genome) ([81]int, error) {
	pg, ok := g.(*genome.PermGenome[int])
	if !ok {
		return [81]int{}, fmt.Errorf("sudoku expects an int perm genome, got %T", g)
	}
	genes := pg.Genes()
	if len(genes) != len(p.blanks) {
		return [81]int{}, fmt.Errorf("genome length mismatch: got %d blanks, want %d", len(genes), len(p.blanks))
	}
	board := p.puzzle
	for i, cell := range p.blanks {
		board[cell] = genes[i]
	}
	return board, nil
}

func (p Sudoku) EncodeGenes(g genome.Genome) (json.RawMessage, error) {
	pg, ok := g.(*genome.PermGenome[int])
	if !ok {
		return nil, fmt.Errorf("sudoku expects an int perm genome, got %T", g)
	}
	return json.Marshal(pg.Genes())
}

func (p Sudoku) Render(g genome.Genome) string {
	board, err := p.fill(g)
	if err != nil {
		return fmt.Sprintf("%v", g)
	}

	var b strings.Builder
	for r := 0; r < 9; r++ {
		if r%3 == 0 {
			b.WriteString("-------------------------\n")
		}
		for c := 0; c < 9; c++ {
			if c%3 == 0 {
				b.WriteString("| ")
			}
			fmt.Fprintf(&b, "%d ", board[r*9+c])
		}
		b.WriteString("|\n")
	}
	b.WriteString("-------------------------")
	return b.String()
}

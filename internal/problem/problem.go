// Package problem carries the built-in optimization problems: each one pairs
// a genome archetype with a fitness function the engine minimizes.
package problem

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"agon/internal/genome"
)

type Problem interface {
	Name() string
	Describe() string

	// Archetype builds the genome the engine seeds and restarts from.
	Archetype(rng *rand.Rand) (genome.Genome, error)

	// Evaluate scores a genome; lower is better, zero is a perfect solution
	// where the problem has one.
	Evaluate(g genome.Genome) (float64, error)

	// EncodeGenes serializes the gene vector for archival.
	EncodeGenes(g genome.Genome) (json.RawMessage, error)

	// Render formats a genome for human consumption.
	Render(g genome.Genome) string
}

// FromName builds the named problem. Names are canonicalized, so "Sudoku "
// and "sudoku" resolve to the same problem.
func FromName(name string) (Problem, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ladder":
		return NewLadder(10), nil
	case "sphere":
		return NewSphere(10), nil
	case "sudoku":
		return NewSudoku(DefaultPuzzle)
	default:
		return nil, fmt.Errorf("unsupported problem: %s", name)
	}
}

func Names() []string {
	return []string{"ladder", "sphere", "sudoku"}
}

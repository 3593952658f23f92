package problem

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"agon/internal/genome"
)

// Ladder is the toy problem of evolving the integer vector [0, 1, ..., n-1].
// Fitness is the sum of per-position distances to that vector.
type Ladder struct {
	length int
}

func NewLadder(length int) Ladder {
	if length <= 0 {
		length = 10
	}
	return Ladder{length: length}
}

func (p Ladder) Name() string {
	return "ladder"
}

func (p Ladder) Describe() string {
	return fmt.Sprintf("evolve the integer vector [0..%d]; fitness is sum of |gene[i]-i|", p.length-1)
}

func (p Ladder) Archetype(rng *rand.Rand) (genome.Genome, error) {
	goodset := make([]int, p.length)
	for i := range goodset {
		goodset[i] = i
	}
	return genome.NewEnumGenome(rng, genome.EnumConfig[int]{Length: p.length, Goodset: goodset})
}

func (p Ladder) Evaluate(g genome.Genome) (float64, error) {
	eg, ok := g.(*genome.EnumGenome[int])
	if !ok {
		return 0, fmt.Errorf("ladder expects an int enum genome, got %T", g)
	}
	total := 0
	for i, v := range eg.Genes() {
		d := v - i
		if d < 0 {
			d = -d
		}
		total += d
	}
	return float64(total), nil
}

func (p Ladder) EncodeGenes(g genome.Genome) (json.RawMessage, error) {
	eg, ok := g.(*genome.EnumGenome[int])
	if !ok {
		return nil, fmt.Errorf("ladder expects an int enum genome, got %T", g)
	}
	return json.Marshal(eg.Genes())
}

func (p Ladder) Render(g genome.Genome) string {
	eg, ok := g.(*genome.EnumGenome[int])
	if !ok {
		return fmt.Sprintf("%v", g)
	}
	return fmt.Sprintf("%v", eg.Genes())
}

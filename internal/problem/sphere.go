package problem

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"agon/internal/genome"
)

// Sphere is the classic continuous benchmark: minimize the sum of squared
// genes over a float vector initialized in [-100, 100].
type Sphere struct {
	dimensions int
}

func NewSphere(dimensions int) Sphere {
	if dimensions <= 0 {
		dimensions = 10
	}
	return Sphere{dimensions: dimensions}
}

func (p Sphere) Name() string {
	return "sphere"
}

func (p Sphere) Describe() string {
	return fmt.Sprintf("minimize the sum of squares over a %d-dimensional float vector", p.dimensions)
}

func (p Sphere) Archetype(rng *rand.Rand) (genome.Genome, error) {
	return genome.NewFloatGenome(rng, genome.FloatConfig{
		Length: p.dimensions,
		Low:    -100,
		High:   100,
	})
}

func (p Sphere) Evaluate(g genome.Genome) (float64, error) {
	fg, ok := g.(*genome.FloatGenome)
	if !ok {
		return 0, fmt.Errorf("sphere expects a float genome, got %T", g)
	}
	total := 0.0
	for _, v := range fg.Genes() {
		total += v * v
	}
	return total, nil
}

func (p Sphere) EncodeGenes(g genome.Genome) (json.RawMessage, error) {
	fg, ok := g.(*genome.FloatGenome)
	if !ok {
		return nil, fmt.Errorf("sphere expects a float genome, got %T", g)
	}
	return json.Marshal(fg.Genes())
}

func (p Sphere) Render(g genome.Genome) string {
	fg, ok := g.(*genome.FloatGenome)
	if !ok {
		return fmt.Sprintf("%v", g)
	}
	return fmt.Sprintf("%v", fg.Genes())
}

package genome

import (
	"fmt"
	"math/rand"
)

var DefaultEnumTable = mustTable(
	Entry{Op: OpFresh, Weight: 1},
	Entry{Op: OpCopy, Weight: 1},
	Entry{Op: OpCrossover, Weight: 3},
	Entry{Op: OpPointMutate, Weight: 5},
)

type EnumConfig[T comparable] struct {
	Length int
	// Goodset is the fixed set of values a gene may take.
	Goodset []T
	Table   Table
}

// EnumGenome is a vector whose genes are drawn from a fixed value set.
type EnumGenome[T comparable] struct {
	genes   []T
	cfg     EnumConfig[T]
	fitness float64
}

// NewEnumGenome builds a genome with genes randomized from the goodset.
func NewEnumGenome[T comparable](rng *rand.Rand, cfg EnumConfig[T]) (*EnumGenome[T], error) {
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("enum genome length must be > 0, got %d", cfg.Length)
	}
	if err := normalizeEnumConfig(&cfg); err != nil {
		return nil, err
	}
	g := &EnumGenome[T]{genes: make([]T, cfg.Length), cfg: cfg}
	for i := range g.genes {
		g.genes[i] = cfg.Goodset[rng.Intn(len(cfg.Goodset))]
	}
	return g, nil
}

// EnumGenomeFromGenes builds a genome around an explicit gene vector,
// typically to seed a known solution. The vector is copied.
func EnumGenomeFromGenes[T comparable](genes []T, cfg EnumConfig[T]) (*EnumGenome[T], error) {
	if len(genes) == 0 {
		return nil, fmt.Errorf("enum genome requires at least one gene")
	}
	cfg.Length = len(genes)
	if err := normalizeEnumConfig(&cfg); err != nil {
		return nil, err
	}
	return &EnumGenome[T]{genes: append([]T(nil), genes...), cfg: cfg}, nil
}

func normalizeEnumConfig[T comparable](cfg *EnumConfig[T]) error {
	if len(cfg.Goodset) == 0 {
		return fmt.Errorf("enum genome goodset must not be empty")
	}
	if cfg.Table.isZero() {
		cfg.Table = DefaultEnumTable
	}
	return nil
}

// Genes returns the backing gene slice. Callers must treat it as read-only.
func (g *EnumGenome[T]) Genes() []T {
	return g.genes
}

func (g *EnumGenome[T]) Fitness() float64 {
	return g.fitness
}

func (g *EnumGenome[T]) SetFitness(f float64) {
	g.fitness = f
}

func (g *EnumGenome[T]) Fresh(rng *rand.Rand) Genome {
	child := g.clone()
	for i := range child.genes {
		child.genes[i] = g.cfg.Goodset[rng.Intn(len(g.cfg.Goodset))]
	}
	return child
}

func (g *EnumGenome[T]) Copy() Genome {
	return g.clone()
}

func (g *EnumGenome[T]) Spawn(rng *rand.Rand, partner Genome) (Genome, error) {
	mate, ok := partner.(*EnumGenome[T])
	if !ok {
		return nil, fmt.Errorf("enum genome cannot spawn with %T", partner)
	}
	op := g.cfg.Table.Pick(rng)
	switch op {
	case OpFresh:
		return g.Fresh(rng), nil
	case OpCopy:
		return g.Copy(), nil
	case OpCrossover:
		return g.crossover(rng, mate), nil
	case OpPointMutate:
		return g.pointMutate(rng), nil
	default:
		return nil, fmt.Errorf("enum genome does not support operator %s", op)
	}
}

func (g *EnumGenome[T]) crossover(rng *rand.Rand, mate *EnumGenome[T]) *EnumGenome[T] {
	child := g.clone()
	a := rng.Intn(len(g.genes))
	b := rng.Intn(len(g.genes)-a) + a
	copy(child.genes[a:b], mate.genes[a:b])
	return child
}

// pointMutate replaces one gene with a random goodset value.
func (g *EnumGenome[T]) pointMutate(rng *rand.Rand) *EnumGenome[T] {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	child.genes[i] = g.cfg.Goodset[rng.Intn(len(g.cfg.Goodset))]
	return child
}

func (g *EnumGenome[T]) clone() *EnumGenome[T] {
	return &EnumGenome[T]{
		genes:   append([]T(nil), g.genes...),
		cfg:     g.cfg,
		fitness: g.fitness,
	}
}

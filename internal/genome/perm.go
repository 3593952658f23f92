package genome

import (
	"fmt"
	"math/rand"
)

// DefaultPermTable leans on swap; it is the operator that actually moves a
// permutation through the search space.
var DefaultPermTable = mustTable(
	Entry{Op: OpCopy, Weight: 1},
	Entry{Op: OpFresh, Weight: 1},
	Entry{Op: OpCrossover, Weight: 2},
	Entry{Op: OpSwap, Weight: 6},
)

type PermConfig[T comparable] struct {
	// Base is the multiset the solution must be a permutation of.
	Base  []T
	Table Table
}

// PermGenome is a vector known to be a permutation of a fixed multiset.
// Every operator preserves that invariant.
type PermGenome[T comparable] struct {
	genes   []T
	table   Table
	fitness float64
}

// NewPermGenome builds a genome carrying the base ordering itself. Fresh
// shuffles it; use the engine's eden population for randomized starts.
func NewPermGenome[T comparable](cfg PermConfig[T]) (*PermGenome[T], error) {
	if len(cfg.Base) == 0 {
		return nil, fmt.Errorf("perm genome base must not be empty")
	}
	if cfg.Table.isZero() {
		cfg.Table = DefaultPermTable
	}
	return &PermGenome[T]{genes: append([]T(nil), cfg.Base...), table: cfg.Table}, nil
}

// Genes returns the backing gene slice. Callers must treat it as read-only.
func (g *PermGenome[T]) Genes() []T {
	return g.genes
}

func (g *PermGenome[T]) Fitness() float64 {
	return g.fitness
}

func (g *PermGenome[T]) SetFitness(f float64) {
	g.fitness = f
}

func (g *PermGenome[T]) Fresh(rng *rand.Rand) Genome {
	child := g.clone()
	rng.Shuffle(len(child.genes), func(i, j int) {
		child.genes[i], child.genes[j] = child.genes[j], child.genes[i]
	})
	return child
}

func (g *PermGenome[T]) Copy() Genome {
	return g.clone()
}

func (g *PermGenome[T]) Spawn(rng *rand.Rand, partner Genome) (Genome, error) {
	mate, ok := partner.(*PermGenome[T])
	if !ok {
		return nil, fmt.Errorf("perm genome cannot spawn with %T", partner)
	}
	op := g.table.Pick(rng)
	switch op {
	case OpCopy:
		return g.Copy(), nil
	case OpFresh:
		return g.Fresh(rng), nil
	case OpCrossover:
		return g.crossover(rng, mate), nil
	case OpSwap:
		return g.swap(rng), nil
	default:
		return nil, fmt.Errorf("perm genome does not support operator %s", op)
	}
}

func (g *PermGenome[T]) swap(rng *rand.Rand) *PermGenome[T] {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	j := rng.Intn(len(child.genes))
	child.genes[i], child.genes[j] = child.genes[j], child.genes[i]
	return child
}

// crossover combines two permutations of the same multiset into a child that
// is again a permutation of that multiset.
//
// Positions where both parents agree are fixed in the child and the value is
// consumed from both parents' remaining pools. Every other position is a
// conflict. Conflicts are then filled in order by a fair coin: take the next
// unused value from one parent's pool, and remove that value (by value, not
// position) from the other parent's pool as well. Consuming from both pools
// on every placement is what rules out duplicates and omissions.
func (g *PermGenome[T]) crossover(rng *rand.Rand, mate *PermGenome[T]) *PermGenome[T] {
	pool1 := append([]T(nil), g.genes...)
	pool2 := append([]T(nil), mate.genes...)

	result := make([]T, 0, len(g.genes))
	var conflicts []int
	i := 0
	for i < len(pool1) {
		if pool1[i] == pool2[i] {
			result = append(result, pool1[i])
			pool1 = append(pool1[:i], pool1[i+1:]...)
			pool2 = append(pool2[:i], pool2[i+1:]...)
		} else {
			conflicts = append(conflicts, len(result))
			var placeholder T
			result = append(result, placeholder)
			i++
		}
	}

	for _, pos := range conflicts {
		if rng.Float64() < 0.5 {
			v := pool1[0]
			pool1 = pool1[1:]
			pool2 = removeValue(pool2, v)
			result[pos] = v
		} else {
			v := pool2[0]
			pool2 = pool2[1:]
			pool1 = removeValue(pool1, v)
			result[pos] = v
		}
	}

	child := g.clone()
	child.genes = result
	return child
}

// removeValue drops the first occurrence of v. The value is always present
// when called from crossover: both pools hold the same multiset.
func removeValue[T comparable](pool []T, v T) []T {
	for i := range pool {
		if pool[i] == v {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

func (g *PermGenome[T]) clone() *PermGenome[T] {
	return &PermGenome[T]{
		genes:   append([]T(nil), g.genes...),
		table:   g.table,
		fitness: g.fitness,
	}
}

package genome

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultFloatTable leaves swap out; it rarely helps a plain float vector.
var DefaultFloatTable = mustTable(
	Entry{Op: OpFresh, Weight: 1},
	Entry{Op: OpCopy, Weight: 1},
	Entry{Op: OpCrossover, Weight: 3},
	Entry{Op: OpBigMutate, Weight: 1},
	Entry{Op: OpMediumMutate, Weight: 3},
	Entry{Op: OpSmallMutate, Weight: 2},
)

type FloatConfig struct {
	Length int
	// Low and High bound initial randomization and big mutations. Mutation
	// does not clamp, so genes can drift outside this range; a fitness
	// function that forbids that must penalize it.
	Low, High float64
	// Resolution is the smallest interesting step for a gene, used to size
	// small and medium mutations. Defaults to 0.001.
	Resolution float64
	Table      Table
}

// FloatGenome is a vector of float64 genes.
type FloatGenome struct {
	genes   []float64
	cfg     FloatConfig
	fitness float64
}

// NewFloatGenome builds a genome with genes randomized in [Low, High).
func NewFloatGenome(rng *rand.Rand, cfg FloatConfig) (*FloatGenome, error) {
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("float genome length must be > 0, got %d", cfg.Length)
	}
	if err := normalizeFloatConfig(&cfg); err != nil {
		return nil, err
	}
	g := &FloatGenome{genes: make([]float64, cfg.Length), cfg: cfg}
	for i := range g.genes {
		g.genes[i] = g.newVal(rng)
	}
	return g, nil
}

// FloatGenomeFromGenes builds a genome around an explicit gene vector,
// typically to seed a known solution. The vector is copied.
func FloatGenomeFromGenes(genes []float64, cfg FloatConfig) (*FloatGenome, error) {
	if len(genes) == 0 {
		return nil, fmt.Errorf("float genome requires at least one gene")
	}
	cfg.Length = len(genes)
	if err := normalizeFloatConfig(&cfg); err != nil {
		return nil, err
	}
	return &FloatGenome{genes: append([]float64(nil), genes...), cfg: cfg}, nil
}

func normalizeFloatConfig(cfg *FloatConfig) error {
	if cfg.Low == 0 && cfg.High == 0 {
		cfg.Low, cfg.High = 0, 1
	}
	if cfg.High <= cfg.Low {
		return fmt.Errorf("float genome limits are inverted: [%v, %v]", cfg.Low, cfg.High)
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = 0.001
	}
	if cfg.Resolution < 0 {
		return fmt.Errorf("float genome resolution must be > 0, got %v", cfg.Resolution)
	}
	if cfg.Table.isZero() {
		cfg.Table = DefaultFloatTable
	}
	return nil
}

// Genes returns the backing gene slice. Callers must treat it as read-only.
func (g *FloatGenome) Genes() []float64 {
	return g.genes
}

func (g *FloatGenome) Fitness() float64 {
	return g.fitness
}

func (g *FloatGenome) SetFitness(f float64) {
	g.fitness = f
}

func (g *FloatGenome) Fresh(rng *rand.Rand) Genome {
	child := g.clone()
	for i := range child.genes {
		child.genes[i] = g.newVal(rng)
	}
	return child
}

func (g *FloatGenome) Copy() Genome {
	return g.clone()
}

func (g *FloatGenome) Spawn(rng *rand.Rand, partner Genome) (Genome, error) {
	mate, ok := partner.(*FloatGenome)
	if !ok {
		return nil, fmt.Errorf("float genome cannot spawn with %T", partner)
	}
	op := g.cfg.Table.Pick(rng)
	switch op {
	case OpFresh:
		return g.Fresh(rng), nil
	case OpCopy:
		return g.Copy(), nil
	case OpCrossover:
		return g.crossover(rng, mate), nil
	case OpSwap:
		return g.swap(rng), nil
	case OpSmallMutate:
		return g.smallMutate(rng), nil
	case OpMediumMutate:
		return g.mediumMutate(rng), nil
	case OpBigMutate:
		return g.bigMutate(rng), nil
	default:
		return nil, fmt.Errorf("float genome does not support operator %s", op)
	}
}

// crossover replaces one segment of the receiver's genes with the partner's.
// Cut a is uniform in [0, n), cut b uniform in [a, n).
func (g *FloatGenome) crossover(rng *rand.Rand, mate *FloatGenome) *FloatGenome {
	child := g.clone()
	a := rng.Intn(len(g.genes))
	b := rng.Intn(len(g.genes)-a) + a
	copy(child.genes[a:b], mate.genes[a:b])
	return child
}

func (g *FloatGenome) swap(rng *rand.Rand) *FloatGenome {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	j := rng.Intn(len(child.genes))
	child.genes[i], child.genes[j] = child.genes[j], child.genes[i]
	return child
}

// smallMutate nudges one gene by a uniform step scaled by the resolution.
func (g *FloatGenome) smallMutate(rng *rand.Rand) *FloatGenome {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	child.genes[i] += (rng.Float64() - 0.5) * 10 * g.cfg.Resolution
	return child
}

// mediumMutate applies a gaussian perturbation whose deviation scales with
// the gene's magnitude, floored at the resolution.
func (g *FloatGenome) mediumMutate(rng *rand.Rand) *FloatGenome {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	gene := child.genes[i]
	sigma := math.Max(math.Abs(gene)/5, g.cfg.Resolution)
	child.genes[i] = gene + rng.NormFloat64()*sigma
	return child
}

// bigMutate replaces one gene with a fresh full-range value.
func (g *FloatGenome) bigMutate(rng *rand.Rand) *FloatGenome {
	child := g.clone()
	i := rng.Intn(len(child.genes))
	child.genes[i] = g.newVal(rng)
	return child
}

func (g *FloatGenome) newVal(rng *rand.Rand) float64 {
	return rng.Float64()*(g.cfg.High-g.cfg.Low) + g.cfg.Low
}

func (g *FloatGenome) clone() *FloatGenome {
	return &FloatGenome{
		genes:   append([]float64(nil), g.genes...),
		cfg:     g.cfg,
		fitness: g.fitness,
	}
}

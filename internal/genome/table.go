package genome

import (
	"errors"
	"fmt"
	"math/rand"
)

// Op identifies an evolutionary operator. Each genome variant dispatches on
// the ops its table carries and rejects the rest.
type Op int

const (
	OpCopy Op = iota
	OpFresh
	OpCrossover
	OpSwap
	OpPointMutate
	OpSmallMutate
	OpMediumMutate
	OpBigMutate
)

func (op Op) String() string {
	switch op {
	case OpCopy:
		return "copy"
	case OpFresh:
		return "fresh"
	case OpCrossover:
		return "crossover"
	case OpSwap:
		return "swap"
	case OpPointMutate:
		return "point_mutate"
	case OpSmallMutate:
		return "small_mutate"
	case OpMediumMutate:
		return "medium_mutate"
	case OpBigMutate:
		return "big_mutate"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Entry pairs an operator with its selection weight.
type Entry struct {
	Op     Op
	Weight float64
}

// Table is a weighted set of operators used by Spawn to pick how a child is
// derived from its parents. The zero Table is invalid; genome constructors
// substitute their variant's default table for it.
type Table struct {
	entries []Entry
	total   float64
}

func NewTable(entries ...Entry) (Table, error) {
	if len(entries) == 0 {
		return Table{}, errors.New("operator table requires at least one entry")
	}
	total := 0.0
	for i, e := range entries {
		if e.Weight <= 0 {
			return Table{}, fmt.Errorf("operator weight must be > 0 at index %d (%s)", i, e.Op)
		}
		total += e.Weight
	}
	return Table{entries: append([]Entry(nil), entries...), total: total}, nil
}

// Pick selects one operator by weighted draw. The draw is continuous, so an
// entry's probability is exactly its share of the total weight.
func (t Table) Pick(rng *rand.Rand) Op {
	draw := rng.Float64() * t.total
	acc := 0.0
	for _, e := range t.entries {
		acc += e.Weight
		if draw <= acc {
			return e.Op
		}
	}
	return t.entries[len(t.entries)-1].Op
}

func (t Table) Len() int {
	return len(t.entries)
}

func (t Table) Total() float64 {
	return t.total
}

func (t Table) isZero() bool {
	return len(t.entries) == 0
}

func mustTable(entries ...Entry) Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

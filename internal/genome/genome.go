// Package genome defines the capability contract shared by all candidate
// solution representations and the concrete variants the engine ships with.
package genome

import "math/rand"

// Genome is the contract a solution representation must satisfy. The engine
// owns the random source and threads it through every randomized operation,
// so runs are reproducible for a fixed seed.
//
// Fitness is a cached value set by the engine after evaluation; genomes never
// compute it themselves.
type Genome interface {
	// Fresh returns a new genome with independently randomized content and
	// the same configuration (size, bounds, operator table).
	Fresh(rng *rand.Rand) Genome

	// Copy returns a deep value copy. Mutating the copy never affects the
	// original.
	Copy() Genome

	// Spawn derives a child from the receiver and partner by picking one
	// operator from the receiver's table. Neither parent is mutated, and no
	// reference to partner is retained after the call returns.
	Spawn(rng *rand.Rand, partner Genome) (Genome, error)

	Fitness() float64
	SetFitness(f float64)
}

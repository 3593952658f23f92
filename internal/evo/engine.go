// Package evo implements the steady-state genetic algorithm engine: a
// circular population refined by local tournaments, with best tracking and
// full restarts on stagnation.
package evo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"agon/internal/genome"
	"agon/internal/model"
)

// FitnessFunc scores a genome; lower is better. It is invoked synchronously
// and must not touch the engine that called it.
type FitnessFunc func(g genome.Genome) (float64, error)

type Config struct {
	Fitness   FitnessFunc
	Archetype genome.Genome

	// PopulationSize defaults to 10000. Larger populations converge slower
	// but escape local optima more reliably.
	PopulationSize int

	// LocalWindow bounds tournament membership to indices near a random
	// midpoint in the circular population. Defaults to 10. Set
	// GlobalTournaments to draw every candidate uniformly instead.
	LocalWindow       int
	GlobalTournaments bool

	// TournamentSize is how many solutions compete per iteration. Defaults
	// to 3; values below 2 cannot produce a winner, runner-up and loser.
	TournamentSize int

	Seed int64

	// Quiet suppresses progress output. Progress defaults to os.Stdout.
	Quiet    bool
	Progress io.Writer
}

// RunOptions control a single Evolve invocation.
type RunOptions struct {
	// Budget is the wall-clock limit. Zero means run until the context is
	// cancelled or the target is reached. The check happens once per
	// iteration, so an expensive fitness function can overrun by one
	// iteration's cost.
	Budget time.Duration

	// Target stops the run once the best fitness is at or below it.
	// HasTarget gates the check since zero is a meaningful fitness.
	Target    float64
	HasTarget bool

	// DisableRestarts turns off the stagnation restart policy.
	DisableRestarts bool
}

// Engine owns the population exclusively for the duration of a run. It is
// not safe for concurrent use.
type Engine struct {
	cfg Config
	rng *rand.Rand

	pop        []genome.Genome
	iterations int
	lastEden   int

	bestGenome genome.Genome
	bestFit    float64
	bestFound  int
	history    []model.BestSample
}

// New validates the configuration and populates the initial population.
// Construction already evaluates fitness once per member, so a failing
// fitness function surfaces here.
func New(cfg Config) (*Engine, error) {
	if cfg.Fitness == nil {
		return nil, errors.New("fitness function is required")
	}
	if cfg.Archetype == nil {
		return nil, errors.New("genome archetype is required")
	}
	if cfg.PopulationSize == 0 {
		cfg.PopulationSize = 10000
	}
	if cfg.PopulationSize < 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}
	if cfg.LocalWindow == 0 {
		cfg.LocalWindow = 10
	}
	if cfg.LocalWindow < 0 {
		return nil, fmt.Errorf("local window must be > 0, got %d", cfg.LocalWindow)
	}
	if cfg.TournamentSize == 0 {
		cfg.TournamentSize = 3
	}
	if cfg.TournamentSize < 2 {
		return nil, fmt.Errorf("tournament size must be >= 2, got %d", cfg.TournamentSize)
	}
	if cfg.Progress == nil {
		cfg.Progress = os.Stdout
	}

	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	if err := e.eden(); err != nil {
		return nil, err
	}
	return e, nil
}

// eden discards the population and rebuilds it from fresh random genomes,
// clearing the recorded best.
func (e *Engine) eden() error {
	e.bestFit = 0
	e.lastEden = e.iterations
	e.bestGenome = nil

	pop := make([]genome.Genome, 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.PopulationSize; i++ {
		pop = append(pop, e.cfg.Archetype.Fresh(e.rng))
	}
	e.pop = pop

	for _, g := range e.pop {
		if err := e.checkBest(g); err != nil {
			return err
		}
	}
	return nil
}

// Seed appends an externally built solution to the population and records it
// against the best tracker. The population grows by one per call; the next
// restart rebuilds it at the configured size.
func (e *Engine) Seed(solution genome.Genome) error {
	if solution == nil {
		return errors.New("seed solution is required")
	}
	e.pop = append(e.pop, solution)
	return e.checkBest(solution)
}

// Evolve runs tournaments until the budget elapses, the context is
// cancelled, or the best fitness reaches the target. It returns a copy of
// the best genome found so far together with its fitness.
//
// Evolve is resumable: calling it again continues from the preserved
// iteration counter and population.
func (e *Engine) Evolve(ctx context.Context, opts RunOptions) (genome.Genome, float64, error) {
	start := time.Now()

	for {
		if opts.Budget > 0 && time.Since(start) >= opts.Budget {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if opts.HasTarget && e.bestGenome != nil && e.bestFit <= opts.Target {
			break
		}

		if !opts.DisableRestarts {
			maxInactive := e.bestFound * 2
			if floor := e.cfg.PopulationSize * 10; floor > maxInactive {
				maxInactive = floor
			}
			if e.iterations-e.lastEden > maxInactive {
				if !e.cfg.Quiet {
					fmt.Fprintf(e.cfg.Progress, "restart at iteration %s\n", humanize.Comma(int64(e.iterations)))
				}
				if err := e.eden(); err != nil {
					return nil, 0, err
				}
			}
		}

		e.iterations++

		ids := e.choose()
		sort.Slice(ids, func(a, b int) bool {
			fa, fb := e.pop[ids[a]].Fitness(), e.pop[ids[b]].Fitness()
			if fa == fb {
				return ids[a] < ids[b]
			}
			return fa < fb
		})
		winner, runnerUp := ids[0], ids[1]
		loser := ids[len(ids)-1]

		child, err := e.pop[winner].Spawn(e.rng, e.pop[runnerUp])
		if err != nil {
			return nil, 0, err
		}
		e.pop[loser] = child
		if err := e.checkBest(child); err != nil {
			return nil, 0, err
		}
	}

	return e.Best(), e.bestFit, nil
}

// choose picks tournament candidate indices: uniformly over the whole
// population in global mode, or around a random midpoint in local mode.
// Indices may repeat, as every draw is independent.
func (e *Engine) choose() []int {
	n := len(e.pop)
	ids := make([]int, 0, e.cfg.TournamentSize)

	if e.cfg.GlobalTournaments {
		for i := 0; i < e.cfg.TournamentSize; i++ {
			ids = append(ids, e.rng.Intn(n))
		}
		return ids
	}

	mid := e.rng.Intn(n)
	ids = append(ids, mid)
	w := e.cfg.LocalWindow
	for i := 1; i < e.cfg.TournamentSize; i++ {
		j := mid + e.rng.Intn(2*w) - w
		j = ((j % n) + n) % n
		ids = append(ids, j)
	}
	return ids
}

// checkBest evaluates g, caches its fitness, and promotes it to global best
// if it strictly improves on the recorded one. This is the only place the
// best state changes.
func (e *Engine) checkBest(g genome.Genome) error {
	fit, err := e.cfg.Fitness(g)
	if err != nil {
		return fmt.Errorf("evaluate fitness: %w", err)
	}
	g.SetFitness(fit)

	if e.bestGenome == nil || fit < e.bestFit {
		e.bestFit = fit
		e.bestGenome = g.Copy()
		e.bestFound = e.iterations - e.lastEden
		e.history = append(e.history, model.BestSample{Iteration: e.iterations, Fitness: fit})
		if !e.cfg.Quiet {
			fmt.Fprintf(e.cfg.Progress, "best fitness %v at iteration %s\n", fit, humanize.Comma(int64(e.iterations)))
		}
	}
	return nil
}

// Best returns a copy of the best genome found so far, or nil before any
// evaluation succeeded.
func (e *Engine) Best() genome.Genome {
	if e.bestGenome == nil {
		return nil
	}
	return e.bestGenome.Copy()
}

func (e *Engine) BestFitness() float64 {
	return e.bestFit
}

func (e *Engine) Iterations() int {
	return e.iterations
}

// LastEden reports the iteration index of the most recent restart; zero
// means the initial population is still alive.
func (e *Engine) LastEden() int {
	return e.lastEden
}

// PopulationLen is the current population length. It equals the configured
// size except after Seed calls, which grow it until the next restart.
func (e *Engine) PopulationLen() int {
	return len(e.pop)
}

// BestHistory returns every recorded best, including ones cleared by later
// restarts, in recording order.
func (e *Engine) BestHistory() []model.BestSample {
	return append([]model.BestSample(nil), e.history...)
}

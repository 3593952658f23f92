// Package agon is the public client for running and archiving GA
// optimizations over the built-in problems.
package agon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"agon/internal/evo"
	"agon/internal/model"
	"agon/internal/problem"
	"agon/internal/stats"
	"agon/internal/storage"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultExportsDir   = "exports"
	defaultDBPath       = "agon.db"
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ExportsDir   string
}

type Client struct {
	store storage.Store

	artifactsDir string
	exportsDir   string
}

type RunRequest struct {
	Problem           string
	Seed              int64
	PopulationSize    int
	LocalWindow       int
	GlobalTournaments bool
	TournamentSize    int

	// Seconds bounds the run's wall-clock time; 0 runs until cancellation
	// or target.
	Seconds float64

	// Target stops the run once best fitness reaches it; HasTarget gates
	// the check.
	Target    float64
	HasTarget bool

	DisableRestarts bool

	Quiet    bool
	Progress io.Writer
}

type RunSummary struct {
	RunID        string
	ArtifactsDir string
	Iterations   int
	LastEden     int
	BestFitness  float64
	Rendered     string
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Problem      string
	Seed         int64
	Iterations   int
	BestFitness  float64
}

type BestResult struct {
	RunID    string
	Problem  string
	Fitness  float64
	Rendered string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		artifactsDir: artifactsDir,
		exportsDir:   exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Run builds the named problem, evolves it and archives the outcome. A
// cancelled context stops the run gracefully; the best found so far is
// still recorded.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Problem == "" {
		req.Problem = "ladder"
	}
	if req.Seconds < 0 {
		return RunSummary{}, errors.New("seconds must be >= 0")
	}

	prob, err := problem.FromName(req.Problem)
	if err != nil {
		return RunSummary{}, err
	}
	archetype, err := prob.Archetype(rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		return RunSummary{}, err
	}

	engine, err := evo.New(evo.Config{
		Fitness:           prob.Evaluate,
		Archetype:         archetype,
		PopulationSize:    req.PopulationSize,
		LocalWindow:       req.LocalWindow,
		GlobalTournaments: req.GlobalTournaments,
		TournamentSize:    req.TournamentSize,
		Seed:              req.Seed,
		Quiet:             req.Quiet,
		Progress:          req.Progress,
	})
	if err != nil {
		return RunSummary{}, err
	}

	best, bestFit, err := engine.Evolve(ctx, evo.RunOptions{
		Budget:          time.Duration(req.Seconds * float64(time.Second)),
		Target:          req.Target,
		HasTarget:       req.HasTarget,
		DisableRestarts: req.DisableRestarts,
	})
	if err != nil {
		return RunSummary{}, err
	}

	runID := uuid.NewString()
	record := model.RunRecord{
		ID:                runID,
		CreatedAtUTC:      time.Now().UTC().Format(time.RFC3339Nano),
		Problem:           req.Problem,
		Seed:              req.Seed,
		PopulationSize:    req.PopulationSize,
		LocalWindow:       req.LocalWindow,
		GlobalTournaments: req.GlobalTournaments,
		TournamentSize:    req.TournamentSize,
		BudgetSeconds:     req.Seconds,
		Restarts:          !req.DisableRestarts,
		Iterations:        engine.Iterations(),
		LastEden:          engine.LastEden(),
		BestFitness:       bestFit,
	}
	if req.HasTarget {
		target := req.Target
		record.TargetFitness = &target
	}

	genes, err := prob.EncodeGenes(best)
	if err != nil {
		return RunSummary{}, err
	}
	solution := model.SolutionRecord{
		RunID:    runID,
		Problem:  req.Problem,
		Fitness:  bestFit,
		Genes:    genes,
		Rendered: prob.Render(best),
	}

	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveHistory(ctx, runID, engine.BestHistory()); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveSolution(ctx, solution); err != nil {
		return RunSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.artifactsDir, stats.RunArtifacts{
		Run:      record,
		History:  engine.BestHistory(),
		Solution: solution,
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.artifactsDir, record); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:        runID,
		ArtifactsDir: filepath.Clean(runDir),
		Iterations:   engine.Iterations(),
		LastEden:     engine.LastEden(),
		BestFitness:  bestFit,
		Rendered:     solution.Rendered,
	}, nil
}

func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	if limit <= 0 {
		limit = 20
	}

	records, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(records))
	for _, r := range records {
		out = append(out, RunItem{
			RunID:        r.ID,
			CreatedAtUTC: r.CreatedAtUTC,
			Problem:      r.Problem,
			Seed:         r.Seed,
			Iterations:   r.Iterations,
			BestFitness:  r.BestFitness,
		})
	}
	return out, nil
}

// Best returns the archived solution for a run, or the latest run when
// latest is set.
func (c *Client) Best(ctx context.Context, runID string, latest bool) (BestResult, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return BestResult{}, err
	}

	solution, ok, err := c.store.GetSolution(ctx, runID)
	if err != nil {
		return BestResult{}, err
	}
	if !ok {
		return BestResult{}, fmt.Errorf("solution not found for run id: %s", runID)
	}
	return BestResult{
		RunID:    solution.RunID,
		Problem:  solution.Problem,
		Fitness:  solution.Fitness,
		Rendered: solution.Rendered,
	}, nil
}

// History returns the best-fitness samples recorded during a run.
func (c *Client) History(ctx context.Context, runID string, latest bool) ([]model.BestSample, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return nil, err
	}

	history, ok, err := c.store.GetHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("history not found for run id: %s", runID)
	}
	return history, nil
}

func (c *Client) Export(ctx context.Context, runID string, latest bool, outDir string) (ExportSummary, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return ExportSummary{}, err
	}
	if outDir == "" {
		outDir = c.exportsDir
	}

	exportedDir, err := stats.ExportRunArtifacts(c.artifactsDir, runID, outDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id or latest is required")
	}

	records, err := c.store.ListRuns(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("no runs available")
	}
	return records[0].ID, nil
}

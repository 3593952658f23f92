package storage

import (
	"context"

	"agon/internal/model"
)

// Store persists run records, best-fitness history and archived solutions.
// Population state is never stored; runs are archived, not resumed.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveHistory(ctx context.Context, runID string, history []model.BestSample) error
	GetHistory(ctx context.Context, runID string) ([]model.BestSample, bool, error)
	SaveSolution(ctx context.Context, solution model.SolutionRecord) error
	GetSolution(ctx context.Context, runID string) (model.SolutionRecord, bool, error)
}

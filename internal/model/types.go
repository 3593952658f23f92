package model

import "encoding/json"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord is the archived configuration and outcome of one evolve run.
type RunRecord struct {
	VersionedRecord
	ID                string   `json:"id"`
	CreatedAtUTC      string   `json:"created_at_utc"`
	Problem           string   `json:"problem"`
	Seed              int64    `json:"seed"`
	PopulationSize    int      `json:"population_size"`
	LocalWindow       int      `json:"local_window"`
	GlobalTournaments bool     `json:"global_tournaments"`
	TournamentSize    int      `json:"tournament_size"`
	BudgetSeconds     float64  `json:"budget_seconds"`
	TargetFitness     *float64 `json:"target_fitness,omitempty"`
	Restarts          bool     `json:"restarts"`
	Iterations        int      `json:"iterations"`
	LastEden          int      `json:"last_eden"`
	BestFitness       float64  `json:"best_fitness"`
}

// BestSample marks the iteration at which a new global best was recorded.
type BestSample struct {
	Iteration int     `json:"iteration"`
	Fitness   float64 `json:"fitness"`
}

// SolutionRecord is the best solution archived for a run. Genes is the
// problem-specific JSON encoding of the gene vector.
type SolutionRecord struct {
	VersionedRecord
	RunID    string          `json:"run_id"`
	Problem  string          `json:"problem"`
	Fitness  float64         `json:"fitness"`
	Genes    json.RawMessage `json:"genes"`
	Rendered string          `json:"rendered,omitempty"`
}

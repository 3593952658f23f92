package stats

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"agon/internal/model"
)

func testArtifacts() RunArtifacts {
	return RunArtifacts{
		Run: model.RunRecord{
			ID:             "run-1",
			CreatedAtUTC:   "2026-01-02T03:04:05Z",
			Problem:        "ladder",
			PopulationSize: 100,
			Iterations:     321,
			BestFitness:    0,
		},
		History: []model.BestSample{
			{Iteration: 0, Fitness: 28},
			{Iteration: 40, Fitness: 5},
			{Iteration: 321, Fitness: 0},
		},
		Solution: model.SolutionRecord{
			RunID:    "run-1",
			Problem:  "ladder",
			Fitness:  0,
			Genes:    json.RawMessage(`[0,1,2,3,4,5,6,7,8,9]`),
			Rendered: "[0 1 2 3 4 5 6 7 8 9]",
		},
	}
}

func TestWriteAndReadRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	artifacts := testArtifacts()

	runDir, err := WriteRunArtifacts(baseDir, artifacts)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	if runDir != filepath.Join(baseDir, "run-1") {
		t.Fatalf("run dir is %s", runDir)
	}
	for _, file := range []string{"run.json", "history.json", "history.csv", "solution.json"} {
		if _, err := os.Stat(filepath.Join(runDir, file)); err != nil {
			t.Fatalf("missing artifact %s: %v", file, err)
		}
	}

	got, ok, err := ReadRunArtifacts(baseDir, "run-1")
	if err != nil {
		t.Fatalf("read artifacts: %v", err)
	}
	if !ok {
		t.Fatal("artifacts not found")
	}
	if got.Run.ID != "run-1" || got.Run.Iterations != 321 {
		t.Fatalf("got run %+v", got.Run)
	}
	if len(got.History) != 3 || got.History[2].Fitness != 0 {
		t.Fatalf("got history %v", got.History)
	}
	if got.Solution.Rendered != artifacts.Solution.Rendered {
		t.Fatalf("got solution %+v", got.Solution)
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	artifacts := testArtifacts()
	artifacts.Run.ID = ""
	if _, err := WriteRunArtifacts(t.TempDir(), artifacts); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestReadRunArtifactsMissingRun(t *testing.T) {
	_, ok, err := ReadRunArtifacts(t.TempDir(), "nope")
	if err != nil {
		t.Fatalf("read artifacts: %v", err)
	}
	if ok {
		t.Fatal("found artifacts that were never written")
	}
}

func TestHistoryCSVContents(t *testing.T) {
	baseDir := t.TempDir()
	if _, err := WriteRunArtifacts(baseDir, testArtifacts()); err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	file, err := os.Open(filepath.Join(baseDir, "run-1", "history.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("csv has %d rows, want 4", len(rows))
	}
	if rows[0][0] != "iteration" || rows[0][1] != "best_fitness" {
		t.Fatalf("csv header is %v", rows[0])
	}
	if rows[1][0] != "0" || rows[1][1] != "28" {
		t.Fatalf("first sample row is %v", rows[1])
	}
}

func TestAppendRunIndex(t *testing.T) {
	baseDir := t.TempDir()
	first := testArtifacts().Run
	second := first
	second.ID = "run-2"
	second.BestFitness = 3

	if err := AppendRunIndex(baseDir, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := AppendRunIndex(baseDir, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	file, err := os.Open(filepath.Join(baseDir, "index.csv"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("index has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "run_id" {
		t.Fatalf("index header is %v", rows[0])
	}
	if rows[1][0] != "run-1" || rows[2][0] != "run-2" || rows[2][4] != "3" {
		t.Fatalf("index rows are %v", rows[1:])
	}
}

func TestAppendRunIndexRequiresRunID(t *testing.T) {
	run := testArtifacts().Run
	run.ID = ""
	if err := AppendRunIndex(t.TempDir(), run); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestExportRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	outDir := t.TempDir()
	if _, err := WriteRunArtifacts(baseDir, testArtifacts()); err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	dst, err := ExportRunArtifacts(baseDir, "run-1", outDir)
	if err != nil {
		t.Fatalf("export artifacts: %v", err)
	}
	if dst != filepath.Join(outDir, "run-1") {
		t.Fatalf("export dir is %s", dst)
	}
	for _, file := range []string{"run.json", "history.json", "history.csv", "solution.json"} {
		if _, err := os.Stat(filepath.Join(dst, file)); err != nil {
			t.Fatalf("missing exported %s: %v", file, err)
		}
	}
}

func TestExportRunArtifactsMissingRun(t *testing.T) {
	if _, err := ExportRunArtifacts(t.TempDir(), "nope", t.TempDir()); err == nil {
		t.Fatal("expected error exporting a missing run")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"agon/internal/problem"
	"agon/internal/storage"
	agonapi "agon/pkg/agon"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "best":
		return runBest(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "problems":
		return runProblems(args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	configPath := fs.String("config", "", "optional JSON config file; flags override it")
	problemName := fs.String("problem", "ladder", "problem to optimize")
	seed := fs.Int64("seed", 0, "random seed")
	popSize := fs.Int("population", 0, "population size (0 uses the default of 10000)")
	window := fs.Int("window", 0, "local tournament window (0 uses the default of 10)")
	global := fs.Bool("global", false, "use global tournaments instead of a local window")
	tourney := fs.Int("tournament", 0, "tournament size (0 uses the default of 3)")
	seconds := fs.Float64("seconds", 0, "wall-clock budget; 0 runs until interrupted or target reached")
	target := fs.Float64("target", 0, "target fitness; valid with -use-target")
	useTarget := fs.Bool("use-target", false, "stop when best fitness reaches -target")
	noRestarts := fs.Bool("no-restarts", false, "disable stagnation restarts")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := agonapi.RunRequest{
		Problem:           *problemName,
		Seed:              *seed,
		PopulationSize:    *popSize,
		LocalWindow:       *window,
		GlobalTournaments: *global,
		TournamentSize:    *tourney,
		Seconds:           *seconds,
		Target:            *target,
		HasTarget:         *useTarget,
		DisableRestarts:   *noRestarts,
		Quiet:             *quiet,
	}
	if *configPath != "" {
		fileReq, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = mergeRunRequest(fileReq, fs, req)
	}
	if req.Seconds == 0 && !req.HasTarget {
		fmt.Println("no budget or target set; press Ctrl-C to stop")
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	// An interrupt cancels the run cooperatively; the best solution found
	// so far is still archived. The previous signal disposition comes back
	// on every exit path.
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	summary, err := client.Run(runCtx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished: best fitness %v after %d iterations\n", summary.RunID, summary.BestFitness, summary.Iterations)
	fmt.Printf("artifacts: %s\n", summary.ArtifactsDir)
	if summary.Rendered != "" {
		fmt.Println(summary.Rendered)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	limit := fs.Int("limit", 20, "maximum entries to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	items, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s  %s  problem=%s seed=%d iterations=%d best=%v\n",
			item.RunID, item.CreatedAtUTC, item.Problem, item.Seed, item.Iterations, item.BestFitness)
	}
	return nil
}

func runBest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("best", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	runID := fs.String("run-id", "", "run to inspect")
	latest := fs.Bool("latest", false, "inspect the most recent run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	best, err := client.Best(ctx, *runID, *latest)
	if err != nil {
		return err
	}
	fmt.Printf("run %s problem=%s best fitness %v\n", best.RunID, best.Problem, best.Fitness)
	if best.Rendered != "" {
		fmt.Println(best.Rendered)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	runID := fs.String("run-id", "", "run to inspect")
	latest := fs.Bool("latest", false, "inspect the most recent run")
	limit := fs.Int("limit", 0, "maximum samples to print; 0 prints all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	history, err := client.History(ctx, *runID, *latest)
	if err != nil {
		return err
	}
	if *limit > 0 && len(history) > *limit {
		history = history[:*limit]
	}
	for _, sample := range history {
		fmt.Printf("iteration=%d best=%v\n", sample.Iteration, sample.Fitness)
	}
	return nil
}

func runProblems(args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range problem.Names() {
		p, err := problem.FromName(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", p.Name(), p.Describe())
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "agon.db", "sqlite database path")
	runID := fs.String("run-id", "", "run to export")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", "", "output directory (defaults to exports/)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := agonapi.New(agonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Export(ctx, *runID, *latest, *outDir)
	if err != nil {
		return err
	}
	fmt.Printf("exported run %s to %s\n", summary.RunID, summary.Directory)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf(`%s

usage: agonctl <command> [flags]

commands:
  init      initialize the run archive
  run       evolve a problem and archive the result
  runs      list archived runs
  best      show the best solution of a run
  history   show the best-fitness history of a run
  problems  list the built-in problems
  export    export a run's artifacts`, msg)
}

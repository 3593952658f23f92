package main

import (
	"encoding/json"
	"flag"
	"os"

	agonapi "agon/pkg/agon"
)

func loadRunRequestFromConfig(path string) (agonapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return agonapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return agonapi.RunRequest{}, err
	}

	var req agonapi.RunRequest
	if v, ok := asString(raw["problem"]); ok {
		req.Problem = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.PopulationSize = v
	}
	if v, ok := asInt(raw["window"]); ok {
		req.LocalWindow = v
	}
	if v, ok := asBool(raw["global"]); ok {
		req.GlobalTournaments = v
	}
	if v, ok := asInt(raw["tournament"]); ok {
		req.TournamentSize = v
	}
	if v, ok := asFloat64(raw["seconds"]); ok {
		req.Seconds = v
	}
	if v, ok := asFloat64(raw["target"]); ok {
		req.Target = v
		req.HasTarget = true
	}
	if v, ok := asBool(raw["no_restarts"]); ok {
		req.DisableRestarts = v
	}
	if v, ok := asBool(raw["quiet"]); ok {
		req.Quiet = v
	}
	return req, nil
}

// mergeRunRequest layers explicitly-set flags over the config file values.
func mergeRunRequest(base agonapi.RunRequest, fs *flag.FlagSet, flags agonapi.RunRequest) agonapi.RunRequest {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["problem"] {
		base.Problem = flags.Problem
	}
	if set["seed"] {
		base.Seed = flags.Seed
	}
	if set["population"] {
		base.PopulationSize = flags.PopulationSize
	}
	if set["window"] {
		base.LocalWindow = flags.LocalWindow
	}
	if set["global"] {
		base.GlobalTournaments = flags.GlobalTournaments
	}
	if set["tournament"] {
		base.TournamentSize = flags.TournamentSize
	}
	if set["seconds"] {
		base.Seconds = flags.Seconds
	}
	if set["target"] {
		base.Target = flags.Target
		base.HasTarget = true
	}
	if set["use-target"] {
		base.HasTarget = flags.HasTarget
	}
	if set["no-restarts"] {
		base.DisableRestarts = flags.DisableRestarts
	}
	if set["quiet"] {
		base.Quiet = flags.Quiet
	}
	return base
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

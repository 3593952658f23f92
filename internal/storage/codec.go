package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"agon/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(run model.RunRecord) ([]byte, error) {
	run.SchemaVersion = CurrentSchemaVersion
	run.CodecVersion = CurrentCodecVersion
	return json.Marshal(run)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeHistory(history []model.BestSample) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeHistory(data []byte) ([]model.BestSample, error) {
	var history []model.BestSample
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func EncodeSolution(solution model.SolutionRecord) ([]byte, error) {
	solution.SchemaVersion = CurrentSchemaVersion
	solution.CodecVersion = CurrentCodecVersion
	return json.Marshal(solution)
}

func DecodeSolution(data []byte) (model.SolutionRecord, error) {
	var solution model.SolutionRecord
	if err := json.Unmarshal(data, &solution); err != nil {
		return model.SolutionRecord{}, err
	}
	if err := checkVersion(solution.VersionedRecord); err != nil {
		return model.SolutionRecord{}, err
	}
	return solution, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}

package repository

import (
	"encoding/json"
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
)

func encodeRun(run *entity.SimulationRun) ([]byte, error) {
	payload, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("encode simulation run: %w", err)
	}
	return payload, nil
}

func decodeRun(payload []byte) (*entity.SimulationRun, error) {
	var run entity.SimulationRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("decode simulation run: %w", err)
	}
	return &run, nil
}

// cloneRun deep-copies run so stored values cannot be mutated through returned pointers.
func cloneRun(run *entity.SimulationRun) *entity.SimulationRun {
	c := *run
	c.Scenarios = append([]entity.ScenarioResult(nil), run.Scenarios...)
	c.Trajectory = append([]entity.YearPoint(nil), run.Trajectory...)
	return &c
}

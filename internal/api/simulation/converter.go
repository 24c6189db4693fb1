package simulation

import "github.com/futig/cpf-explainer/internal/entity"

func toSimulationResponse(run *entity.SimulationRun, explanation *entity.Explanation) *entity.SimulationResponse {
	return &entity.SimulationResponse{
		ID:             run.ID,
		CreatedAt:      run.CreatedAt,
		Inputs:         run.Inputs,
		Scenarios:      run.Scenarios,
		Classification: run.Classification,
		Trajectory:     run.Trajectory,
		Benchmarks:     run.Benchmarks,
		Explanation:    explanation,
	}
}

func toSimulationSummary(run *entity.SimulationRun) *entity.SimulationSummary {
	base := run.Base()
	return &entity.SimulationSummary{
		ID:               run.ID,
		CreatedAt:        run.CreatedAt,
		RetirementAge:    base.RetirementAge,
		ProjectedSavings: base.ProjectedSavings,
		Label:            run.Classification.Label,
	}
}

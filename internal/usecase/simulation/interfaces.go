package simulation

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

type SimulationRepository interface {
	Save(ctx context.Context, run *entity.SimulationRun) error
	Get(ctx context.Context, id string) (*entity.SimulationRun, error)
	List(ctx context.Context, limit int) ([]*entity.SimulationRun, error)
}

type SimulationExplainer interface {
	ExplainSimulation(
		ctx context.Context,
		inputs entity.RetirementInputs,
		scenarios []entity.ScenarioResult,
		classification entity.Classification,
	) (*entity.Explanation, error)
}

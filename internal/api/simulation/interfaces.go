package simulation

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

type SimulationUsecase interface {
	Simulate(ctx context.Context, inputs entity.RetirementInputs) (*entity.SimulationRun, error)
	Explain(ctx context.Context, run *entity.SimulationRun) (*entity.Explanation, error)
	Get(ctx context.Context, id string) (*entity.SimulationRun, error)
	List(ctx context.Context, limit int) ([]*entity.SimulationRun, error)
	Report(ctx context.Context, id string, format entity.ResultFormat, explanation string) (*entity.ReportFile, error)
	Presets() []entity.Preset
	Benchmarks() entity.Benchmarks
}

// Package simulation runs retirement projections and keeps their history.
package simulation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/formatter"
	"github.com/futig/cpf-explainer/internal/pkg/logger"
	"github.com/futig/cpf-explainer/internal/pkg/validator"
	"github.com/futig/cpf-explainer/internal/simulator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type SimulationUsecase struct {
	repo       SimulationRepository
	explainer  SimulationExplainer
	formatters *formatter.Factory
	benchmarks entity.Benchmarks
	presets    []entity.Preset
	now        func() time.Time
}

func NewSimulationUsecase(
	repo SimulationRepository,
	explainer SimulationExplainer,
	benchmarks entity.Benchmarks,
	presets []entity.Preset,
) *SimulationUsecase {
	return &SimulationUsecase{
		repo:       repo,
		explainer:  explainer,
		formatters: formatter.NewFactory(),
		benchmarks: benchmarks,
		presets:    presets,
		now:        time.Now,
	}
}

// Simulate validates inputs, projects every scenario, classifies the base case
// and stores the run.
func (uc *SimulationUsecase) Simulate(ctx context.Context, inputs entity.RetirementInputs) (*entity.SimulationRun, error) {
	ctx = logger.WithAction(ctx, "Simulate")

	if err := validator.ValidateInputs(inputs); err != nil {
		return nil, err
	}

	scenarios, err := simulator.BuildScenarios(inputs)
	if err != nil {
		return nil, err
	}

	trajectory, err := simulator.Trajectory(inputs)
	if err != nil {
		return nil, err
	}
	if err := checkFinite(scenarios, trajectory); err != nil {
		return nil, err
	}

	run := &entity.SimulationRun{
		ID:         uuid.New().String(),
		CreatedAt:  uc.now().UTC(),
		Inputs:     inputs,
		Scenarios:  scenarios,
		Trajectory: trajectory,
		Benchmarks: uc.benchmarks,
	}
	run.Classification = simulator.ClassifyAgainst(run.Base().ProjectedSavings, uc.benchmarks)

	if err := uc.repo.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}

	ctxzap.Info(ctx, "simulation completed",
		zap.String("simulation_id", run.ID),
		zap.Int("years", inputs.Years()),
		zap.Int("scenarios", len(scenarios)),
		zap.String("label", string(run.Classification.Label)),
	)

	return run, nil
}

// checkFinite rejects projections that overflowed float64.
func checkFinite(scenarios []entity.ScenarioResult, trajectory []entity.YearPoint) error {
	for _, s := range scenarios {
		if math.IsNaN(s.ProjectedSavings) || math.IsInf(s.ProjectedSavings, 0) {
			return fmt.Errorf("%w: projection for %q is not a finite amount", entity.ErrInvalidInputs, s.Name)
		}
	}
	for _, p := range trajectory {
		if math.IsNaN(p.Balance) || math.IsInf(p.Balance, 0) {
			return fmt.Errorf("%w: balance at age %d is not a finite amount", entity.ErrInvalidInputs, p.Age)
		}
	}
	return nil
}

// Explain asks the explainer to interpret a run. Generation failures come back
// as a fallback Explanation, not as an error.
func (uc *SimulationUsecase) Explain(ctx context.Context, run *entity.SimulationRun) (*entity.Explanation, error) {
	ctx = logger.AddFields(ctx, zap.String("simulation_id", run.ID))
	return uc.explainer.ExplainSimulation(ctx, run.Inputs, run.Scenarios, run.Classification)
}

func (uc *SimulationUsecase) Get(ctx context.Context, id string) (*entity.SimulationRun, error) {
	return uc.repo.Get(ctx, id)
}

// List returns the newest runs; limit is clamped to [1, MaxListLimit] with 0 meaning DefaultListLimit.
func (uc *SimulationUsecase) List(ctx context.Context, limit int) ([]*entity.SimulationRun, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return uc.repo.List(ctx, limit)
}

// Report renders a stored run. explanation is included verbatim when non-empty.
func (uc *SimulationUsecase) Report(
	ctx context.Context,
	id string,
	format entity.ResultFormat,
	explanation string,
) (*entity.ReportFile, error) {
	ctx = logger.WithAction(ctx, "Report")

	fmtr, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	run, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := fmtr.Format(formatter.SimulationReport(run, explanation))
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	ctxzap.Info(ctx, "report rendered",
		zap.String("simulation_id", id),
		zap.String("format", string(format)),
		zap.Int("bytes", len(content)),
	)

	return &entity.ReportFile{
		Filename:    "simulation-" + id + fmtr.FileExtension(),
		ContentType: fmtr.ContentType(),
		Content:     content,
	}, nil
}

func (uc *SimulationUsecase) Presets() []entity.Preset {
	return uc.presets
}

// Preset returns the preset at 1-based position n.
func (uc *SimulationUsecase) Preset(n int) (entity.Preset, error) {
	if n < 1 || n > len(uc.presets) {
		return entity.Preset{}, fmt.Errorf("%w: %d", entity.ErrPresetNotFound, n)
	}
	return uc.presets[n-1], nil
}

func (uc *SimulationUsecase) Benchmarks() entity.Benchmarks {
	return uc.benchmarks
}

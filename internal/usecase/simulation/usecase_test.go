package simulation

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/repository"
	"github.com/futig/cpf-explainer/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExplainer struct {
	got entity.Classification
}

func (s *stubExplainer) ExplainSimulation(
	_ context.Context,
	_ entity.RetirementInputs,
	_ []entity.ScenarioResult,
	c entity.Classification,
) (*entity.Explanation, error) {
	s.got = c
	return &entity.Explanation{Text: "explained", Grounded: true}, nil
}

var benchmarks = entity.Benchmarks{BRS: 106500, FRS: 213000, ERS: 426000, YearLabel: "2025"}

var baseInputs = entity.RetirementInputs{
	CurrentAge:          35,
	RetirementAge:       65,
	CurrentSavings:      50000,
	MonthlyContribution: 800,
	SalaryGrowthRate:    0.02,
	AssumedReturnRate:   0.04,
}

func newUsecase(t *testing.T) (*SimulationUsecase, *stubExplainer) {
	t.Helper()
	exp := &stubExplainer{}
	uc := NewSimulationUsecase(
		repository.NewSimulationMemory(time.Hour, time.Hour),
		exp,
		benchmarks,
		[]entity.Preset{{Name: "Young starter", Inputs: baseInputs}},
	)
	return uc, exp
}

func TestSimulate(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	run, err := uc.Simulate(ctx, baseInputs)
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Len(t, run.Scenarios, 3)
	assert.Len(t, run.Trajectory, 31)
	assert.Equal(t, benchmarks, run.Benchmarks)

	projected, err := simulator.Project(baseInputs)
	require.NoError(t, err)
	assert.InDelta(t, projected, run.Base().ProjectedSavings, 1e-6)
	assert.InDelta(t, projected, run.Trajectory[len(run.Trajectory)-1].Balance, 1e-6)
	assert.Equal(t, simulator.ClassifyAgainst(projected, benchmarks), run.Classification)

	stored, err := uc.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, stored.ID)
}

func TestSimulate_InvalidRange(t *testing.T) {
	uc, _ := newUsecase(t)
	in := baseInputs
	in.RetirementAge = 30

	_, err := uc.Simulate(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrInvalidRange)

	runs, err := uc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSimulate_InvalidInputs(t *testing.T) {
	uc, _ := newUsecase(t)
	in := baseInputs
	in.CurrentSavings = -5

	_, err := uc.Simulate(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrInvalidInputs)
}

func TestExplain(t *testing.T) {
	uc, exp := newUsecase(t)
	run, err := uc.Simulate(context.Background(), baseInputs)
	require.NoError(t, err)

	explanation, err := uc.Explain(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, "explained", explanation.Text)
	assert.Equal(t, run.Classification, exp.got)
}

func TestList(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	for range 3 {
		_, err := uc.Simulate(ctx, baseInputs)
		require.NoError(t, err)
	}

	runs, err := uc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = uc.List(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestReport(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()
	run, err := uc.Simulate(ctx, baseInputs)
	require.NoError(t, err)

	md, err := uc.Report(ctx, run.ID, entity.FormatMarkdown, "because")
	require.NoError(t, err)
	assert.Equal(t, "simulation-"+run.ID+".md", md.Filename)
	assert.Contains(t, md.ContentType, "text/markdown")
	assert.Contains(t, string(md.Content), "## Explanation\n\nbecause")

	pdf, err := uc.Report(ctx, run.ID, entity.FormatPDF, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF-")))

	_, err = uc.Report(ctx, "nope", entity.FormatMarkdown, "")
	assert.ErrorIs(t, err, entity.ErrSimulationNotFound)

	_, err = uc.Report(ctx, run.ID, "rtf", "")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestPresets(t *testing.T) {
	uc, _ := newUsecase(t)

	assert.Len(t, uc.Presets(), 1)

	p, err := uc.Preset(1)
	require.NoError(t, err)
	assert.Equal(t, "Young starter", p.Name)

	_, err = uc.Preset(2)
	assert.ErrorIs(t, err, entity.ErrPresetNotFound)
	_, err = uc.Preset(0)
	assert.ErrorIs(t, err, entity.ErrPresetNotFound)
}

func TestCheckFinite(t *testing.T) {
	scenarios := []entity.ScenarioResult{{Name: "Base case", ProjectedSavings: 1000}}
	trajectory := []entity.YearPoint{{Age: 35, Balance: 500}, {Age: 36, Balance: 1000}}
	require.NoError(t, checkFinite(scenarios, trajectory))

	overflow := []entity.ScenarioResult{{Name: "Base case", ProjectedSavings: math.Inf(1)}}
	assert.ErrorIs(t, checkFinite(overflow, trajectory), entity.ErrInvalidInputs)

	badPoint := []entity.YearPoint{{Age: 35, Balance: math.NaN()}}
	assert.ErrorIs(t, checkFinite(scenarios, badPoint), entity.ErrInvalidInputs)
}

func TestSimulate_RejectsNaNSavings(t *testing.T) {
	uc, _ := newUsecase(t)
	in := baseInputs
	in.CurrentSavings = math.NaN()

	run, err := uc.Simulate(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrInvalidInputs)
	assert.Nil(t, run)

	runs, err := uc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

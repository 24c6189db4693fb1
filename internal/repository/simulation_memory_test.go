package repository

import (
	"context"
	"testing"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(id string, createdAt time.Time) *entity.SimulationRun {
	return &entity.SimulationRun{
		ID:        id,
		CreatedAt: createdAt,
		Scenarios: []entity.ScenarioResult{{Name: "Base case", RetirementAge: 65, ProjectedSavings: 1000}},
	}
}

func TestSimulationMemory_SaveGet(t *testing.T) {
	repo := NewSimulationMemory(time.Hour, time.Hour)
	ctx := context.Background()

	r := run("a", time.Now())
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, r, got)

	// stored copy is isolated from the caller
	got.Scenarios[0].ProjectedSavings = 0
	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, again.Scenarios[0].ProjectedSavings)
}

func TestSimulationMemory_NotFound(t *testing.T) {
	repo := NewSimulationMemory(time.Hour, time.Hour)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrSimulationNotFound)
}

func TestSimulationMemory_ListNewestFirst(t *testing.T) {
	repo := NewSimulationMemory(time.Hour, time.Hour)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, run("old", now.Add(-2*time.Minute))))
	require.NoError(t, repo.Save(ctx, run("new", now)))
	require.NoError(t, repo.Save(ctx, run("mid", now.Add(-time.Minute))))

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSimulationMemory_Expires(t *testing.T) {
	repo := NewSimulationMemory(10*time.Millisecond, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, run("a", time.Now())))
	time.Sleep(20 * time.Millisecond)

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, entity.ErrSimulationNotFound)
}

func TestEncodeDecodeRun(t *testing.T) {
	r := run("a", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	r.Classification = entity.Classification{Label: entity.BandBelowBRS, MultipleOfFRS: "0.01 × FRS", Ratio: 0.01}

	payload, err := encodeRun(r)
	require.NoError(t, err)
	back, err := decodeRun(payload)
	require.NoError(t, err)
	assert.Equal(t, r, back)

	_, err = decodeRun([]byte("{"))
	assert.Error(t, err)
}

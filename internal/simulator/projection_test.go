package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futig/cpf-explainer/internal/entity"
)

func baseInputs() entity.RetirementInputs {
	return entity.RetirementInputs{
		CurrentAge:          35,
		RetirementAge:       65,
		CurrentSavings:      50000,
		MonthlyContribution: 800,
		SalaryGrowthRate:    0.02,
		AssumedReturnRate:   0.04,
	}
}

// referenceProjection mirrors the yearly recurrence step by step.
func referenceProjection(in entity.RetirementInputs) float64 {
	balance := in.CurrentSavings
	contribution := in.MonthlyContribution * 12
	for i := 0; i < in.RetirementAge-in.CurrentAge; i++ {
		balance = (balance + contribution) * (1 + in.AssumedReturnRate)
		contribution = contribution * (1 + in.SalaryGrowthRate)
	}
	return balance
}

func TestProject(t *testing.T) {
	t.Run("matches reference recurrence", func(t *testing.T) {
		in := baseInputs()
		require.Equal(t, 30, in.Years())

		got, err := Project(in)
		require.NoError(t, err)
		assert.InDelta(t, referenceProjection(in), got, 1e-6)
	})

	t.Run("contribution earns the same year's return", func(t *testing.T) {
		in := entity.RetirementInputs{
			CurrentAge:          40,
			RetirementAge:       41,
			CurrentSavings:      0,
			MonthlyContribution: 100,
			AssumedReturnRate:   0.1,
		}
		got, err := Project(in)
		require.NoError(t, err)
		assert.InDelta(t, 1320.0, got, 1e-9)
	})

	t.Run("zero years returns current savings", func(t *testing.T) {
		in := baseInputs()
		in.RetirementAge = in.CurrentAge

		got, err := Project(in)
		require.NoError(t, err)
		assert.Equal(t, in.CurrentSavings, got)
	})

	t.Run("retirement before current age", func(t *testing.T) {
		in := baseInputs()
		in.RetirementAge = 30

		_, err := Project(in)
		assert.ErrorIs(t, err, entity.ErrInvalidRange)
	})
}

func TestProject_Monotonic(t *testing.T) {
	base := baseInputs()
	baseValue, err := Project(base)
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(*entity.RetirementInputs)
	}{
		{"monthly contribution", func(in *entity.RetirementInputs) { in.MonthlyContribution += 1 }},
		{"current savings", func(in *entity.RetirementInputs) { in.CurrentSavings += 1 }},
		{"return rate", func(in *entity.RetirementInputs) { in.AssumedReturnRate += 0.001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.modify(&in)

			got, err := Project(in)
			require.NoError(t, err)
			assert.Greater(t, got, baseValue)
		})
	}
}

func TestTrajectory(t *testing.T) {
	in := baseInputs()

	points, err := Trajectory(in)
	require.NoError(t, err)
	require.Len(t, points, 31)

	assert.Equal(t, 35, points[0].Age)
	assert.Equal(t, 0, points[0].Year)
	assert.Equal(t, in.CurrentSavings, points[0].Balance)

	final, err := Project(in)
	require.NoError(t, err)
	last := points[len(points)-1]
	assert.Equal(t, 65, last.Age)
	assert.InDelta(t, final, last.Balance, 1e-6)

	_, err = Trajectory(entity.RetirementInputs{CurrentAge: 50, RetirementAge: 40})
	assert.ErrorIs(t, err, entity.ErrInvalidRange)
}

func TestBuildScenarios(t *testing.T) {
	t.Run("three scenarios below the cap", func(t *testing.T) {
		in := baseInputs()

		scenarios, err := BuildScenarios(in)
		require.NoError(t, err)
		require.Len(t, scenarios, 3)

		assert.Equal(t, "Base case", scenarios[0].Name)
		assert.Equal(t, 65, scenarios[0].RetirementAge)

		assert.Equal(t, "Retire 2 years later", scenarios[1].Name)
		assert.Equal(t, 67, scenarios[1].RetirementAge)

		later := in
		later.RetirementAge = 67
		assert.InDelta(t, referenceProjection(later), scenarios[1].ProjectedSavings, 1e-6)

		assert.Equal(t, "Increase contribution by 20%", scenarios[2].Name)
		assert.Equal(t, 65, scenarios[2].RetirementAge)
		higher := in
		higher.MonthlyContribution = 960
		assert.InDelta(t, referenceProjection(higher), scenarios[2].ProjectedSavings, 1e-6)
	})

	t.Run("later retirement at the cap is included", func(t *testing.T) {
		in := baseInputs()
		in.RetirementAge = 73

		scenarios, err := BuildScenarios(in)
		require.NoError(t, err)
		require.Len(t, scenarios, 3)
		assert.Equal(t, 75, scenarios[1].RetirementAge)
	})

	t.Run("later retirement past the cap is omitted", func(t *testing.T) {
		in := baseInputs()
		in.RetirementAge = 74

		scenarios, err := BuildScenarios(in)
		require.NoError(t, err)
		require.Len(t, scenarios, 2)
		assert.Equal(t, "Base case", scenarios[0].Name)
		assert.Equal(t, "Increase contribution by 20%", scenarios[1].Name)
	})

	t.Run("does not mutate the base inputs", func(t *testing.T) {
		in := baseInputs()
		before := in

		_, err := BuildScenarios(in)
		require.NoError(t, err)
		assert.Equal(t, before, in)
	})

	t.Run("invalid range", func(t *testing.T) {
		in := baseInputs()
		in.RetirementAge = 20

		_, err := BuildScenarios(in)
		assert.ErrorIs(t, err, entity.ErrInvalidRange)
	})
}

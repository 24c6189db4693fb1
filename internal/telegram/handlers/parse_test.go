package handlers

import (
	"testing"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimulateArgs(t *testing.T) {
	in, err := ParseSimulateArgs("35 65 S$60,000 $900")
	require.NoError(t, err)
	assert.Equal(t, entity.RetirementInputs{
		CurrentAge:          35,
		RetirementAge:       65,
		CurrentSavings:      60000,
		MonthlyContribution: 900,
		SalaryGrowthRate:    DefaultSalaryGrowthRate,
		AssumedReturnRate:   DefaultAssumedReturnRate,
	}, in)

	in, err = ParseSimulateArgs("45 60 100000 1000 1.5% 3")
	require.NoError(t, err)
	assert.InDelta(t, 0.015, in.SalaryGrowthRate, 1e-12)
	assert.InDelta(t, 0.03, in.AssumedReturnRate, 1e-12)
}

func TestParseSimulateArgs_Errors(t *testing.T) {
	for _, args := range []string{
		"",
		"35 65 1000",
		"35 65 1000 100 2 4 9",
		"35.5 65 1000 100",
		"35 65 lots 100",
		"35 65 1000 100 two",
		"35 65 NaN 800",
		"35 65 Inf 800",
		"35 65 1000 +Inf",
		"35 65 1000 100 NaN",
		"35 65 1000 100 2 -Inf%",
	} {
		_, err := ParseSimulateArgs(args)
		assert.ErrorIs(t, err, entity.ErrInvalidParameter, args)
	}
}

package validator

import (
	"math"
	"strings"
	"testing"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(config.RetrievalConfig{TopK: 5, MaxK: 10, MaxQuestionLength: 20})
}

func TestValidateQuestion(t *testing.T) {
	v := newTestValidator()

	req := &entity.PolicyQuestionRequest{Question: "  What is FRS?  "}
	require.NoError(t, v.ValidateQuestion(req))
	assert.Equal(t, "What is FRS?", req.Question)

	assert.ErrorIs(t, v.ValidateQuestion(&entity.PolicyQuestionRequest{Question: "   "}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateQuestion(&entity.PolicyQuestionRequest{Question: strings.Repeat("x", 21)}), entity.ErrInvalidParameter)
}

func TestValidateSearch(t *testing.T) {
	v := newTestValidator()

	req := &entity.SearchRequest{Query: "frs"}
	require.NoError(t, v.ValidateSearch(req))
	assert.Equal(t, 5, req.K)

	assert.ErrorIs(t, v.ValidateSearch(&entity.SearchRequest{Query: ""}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateSearch(&entity.SearchRequest{Query: "q", K: 11}), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidateSearch(&entity.SearchRequest{Query: "q", K: -1}), entity.ErrInvalidParameter)
}

func TestValidateInputs(t *testing.T) {
	valid := entity.RetirementInputs{
		CurrentAge: 35, RetirementAge: 65, CurrentSavings: 50000,
		MonthlyContribution: 800, SalaryGrowthRate: 0.02, AssumedReturnRate: 0.04,
	}
	require.NoError(t, ValidateInputs(valid))

	withTarget := valid
	withTarget.TargetMonthlyIncome = 2500
	withTarget.CurrentSavings = MaxAmount
	assert.NoError(t, ValidateInputs(withTarget))

	sameAge := valid
	sameAge.RetirementAge = 35
	assert.NoError(t, ValidateInputs(sameAge))

	cases := []struct {
		name   string
		mutate func(*entity.RetirementInputs)
		want   error
	}{
		{"retire before current age", func(in *entity.RetirementInputs) { in.RetirementAge = 30 }, entity.ErrInvalidRange},
		{"too young", func(in *entity.RetirementInputs) { in.CurrentAge = 17 }, entity.ErrInvalidInputs},
		{"retire too late", func(in *entity.RetirementInputs) { in.RetirementAge = 101 }, entity.ErrInvalidInputs},
		{"negative savings", func(in *entity.RetirementInputs) { in.CurrentSavings = -1 }, entity.ErrInvalidInputs},
		{"negative contribution", func(in *entity.RetirementInputs) { in.MonthlyContribution = -1 }, entity.ErrInvalidInputs},
		{"growth of 100%", func(in *entity.RetirementInputs) { in.SalaryGrowthRate = 1 }, entity.ErrInvalidInputs},
		{"return below -100%", func(in *entity.RetirementInputs) { in.AssumedReturnRate = -1.5 }, entity.ErrInvalidInputs},
		{"NaN savings", func(in *entity.RetirementInputs) { in.CurrentSavings = math.NaN() }, entity.ErrInvalidInputs},
		{"infinite savings", func(in *entity.RetirementInputs) { in.CurrentSavings = math.Inf(1) }, entity.ErrInvalidInputs},
		{"NaN contribution", func(in *entity.RetirementInputs) { in.MonthlyContribution = math.NaN() }, entity.ErrInvalidInputs},
		{"savings above cap", func(in *entity.RetirementInputs) { in.CurrentSavings = MaxAmount * 10 }, entity.ErrInvalidInputs},
		{"contribution above cap", func(in *entity.RetirementInputs) { in.MonthlyContribution = 1e307 }, entity.ErrInvalidInputs},
		{"negative target income", func(in *entity.RetirementInputs) { in.TargetMonthlyIncome = -100 }, entity.ErrInvalidInputs},
		{"NaN return", func(in *entity.RetirementInputs) { in.AssumedReturnRate = math.NaN() }, entity.ErrInvalidInputs},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.ErrorIs(t, ValidateInputs(in), tc.want)
		})
	}
}

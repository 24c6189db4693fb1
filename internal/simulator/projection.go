// Package simulator projects retirement savings and classifies the result
// against the retirement sum benchmarks.
package simulator

import (
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
)

const (
	// MaxRetirementAge caps the "retire later" scenario.
	MaxRetirementAge = 75

	laterRetirementYears  = 2
	contributionIncrement = 1.2
)

// Project compounds savings year by year until retirement and returns the final balance.
// Each year the contribution is added first, then the return is applied, then the
// contribution grows with salary for the next year.
func Project(in entity.RetirementInputs) (float64, error) {
	years := in.Years()
	if years < 0 {
		return 0, fmt.Errorf("%w: current age %d, retirement age %d",
			entity.ErrInvalidRange, in.CurrentAge, in.RetirementAge)
	}

	balance := in.CurrentSavings
	annualContribution := in.MonthlyContribution * 12

	for year := 0; year < years; year++ {
		balance += annualContribution
		balance *= 1 + in.AssumedReturnRate
		annualContribution *= 1 + in.SalaryGrowthRate
	}

	return balance, nil
}

// Trajectory returns the balance at the start of every age from the current age to the
// retirement age inclusive. The last point equals Project(in).
func Trajectory(in entity.RetirementInputs) ([]entity.YearPoint, error) {
	years := in.Years()
	if years < 0 {
		return nil, fmt.Errorf("%w: current age %d, retirement age %d",
			entity.ErrInvalidRange, in.CurrentAge, in.RetirementAge)
	}

	points := make([]entity.YearPoint, 0, years+1)
	balance := in.CurrentSavings
	annualContribution := in.MonthlyContribution * 12

	for year := 0; year <= years; year++ {
		points = append(points, entity.YearPoint{
			Age:     in.CurrentAge + year,
			Year:    year,
			Balance: balance,
		})
		balance += annualContribution
		balance *= 1 + in.AssumedReturnRate
		annualContribution *= 1 + in.SalaryGrowthRate
	}

	return points, nil
}

// BuildScenarios derives the comparison scenarios from the base inputs: the base case,
// retiring two years later (omitted past MaxRetirementAge) and a 20% higher contribution.
func BuildScenarios(in entity.RetirementInputs) ([]entity.ScenarioResult, error) {
	scenarios := make([]entity.ScenarioResult, 0, 3)

	base, err := Project(in)
	if err != nil {
		return nil, fmt.Errorf("project base case: %w", err)
	}
	scenarios = append(scenarios, entity.ScenarioResult{
		Name:             "Base case",
		RetirementAge:    in.RetirementAge,
		ProjectedSavings: base,
		Notes:            "Projection using your current inputs.",
	})

	if in.RetirementAge+laterRetirementYears <= MaxRetirementAge {
		later := in
		later.RetirementAge = in.RetirementAge + laterRetirementYears

		projected, err := Project(later)
		if err != nil {
			return nil, fmt.Errorf("project later retirement: %w", err)
		}
		scenarios = append(scenarios, entity.ScenarioResult{
			Name:             "Retire 2 years later",
			RetirementAge:    later.RetirementAge,
			ProjectedSavings: projected,
			Notes:            "Shows effect of delaying retirement by 2 years.",
		})
	}

	higher := in
	higher.MonthlyContribution = in.MonthlyContribution * contributionIncrement

	projected, err := Project(higher)
	if err != nil {
		return nil, fmt.Errorf("project higher contribution: %w", err)
	}
	scenarios = append(scenarios, entity.ScenarioResult{
		Name:             "Increase contribution by 20%",
		RetirementAge:    higher.RetirementAge,
		ProjectedSavings: projected,
		Notes:            "Shows effect of increasing your monthly contribution.",
	})

	return scenarios, nil
}

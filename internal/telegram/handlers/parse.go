package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
)

// Defaults applied when /simulate omits the rates
const (
	DefaultSalaryGrowthRate  = 0.02
	DefaultAssumedReturnRate = 0.04
)

// ParseSimulateArgs reads "<age> <retirement age> <savings> <monthly> [growth%] [return%]".
// Amounts may carry an "S$" or "$" prefix and thousands separators. Rates are
// percentages, so "2.5" and "2.5%" both mean 0.025.
func ParseSimulateArgs(args string) (entity.RetirementInputs, error) {
	fields := strings.Fields(args)
	if len(fields) < 4 || len(fields) > 6 {
		return entity.RetirementInputs{}, fmt.Errorf("%w: expected 4 to 6 values, got %d", entity.ErrInvalidParameter, len(fields))
	}

	currentAge, err := parseAge(fields[0], "age")
	if err != nil {
		return entity.RetirementInputs{}, err
	}
	retirementAge, err := parseAge(fields[1], "retirement age")
	if err != nil {
		return entity.RetirementInputs{}, err
	}
	savings, err := parseAmount(fields[2], "savings")
	if err != nil {
		return entity.RetirementInputs{}, err
	}
	monthly, err := parseAmount(fields[3], "monthly contribution")
	if err != nil {
		return entity.RetirementInputs{}, err
	}

	in := entity.RetirementInputs{
		CurrentAge:          currentAge,
		RetirementAge:       retirementAge,
		CurrentSavings:      savings,
		MonthlyContribution: monthly,
		SalaryGrowthRate:    DefaultSalaryGrowthRate,
		AssumedReturnRate:   DefaultAssumedReturnRate,
	}

	if len(fields) > 4 {
		if in.SalaryGrowthRate, err = parsePercent(fields[4], "growth"); err != nil {
			return entity.RetirementInputs{}, err
		}
	}
	if len(fields) > 5 {
		if in.AssumedReturnRate, err = parsePercent(fields[5], "return"); err != nil {
			return entity.RetirementInputs{}, err
		}
	}

	return in, nil
}

func parseAge(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", entity.ErrInvalidParameter, name, s)
	}
	return v, nil
}

func parseAmount(s, name string) (float64, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(s, "S$"), "$")
	clean = strings.ReplaceAll(clean, ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", entity.ErrInvalidParameter, name, s)
	}
	return v, nil
}

func parsePercent(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a percentage, got %q", entity.ErrInvalidParameter, name, s)
	}
	return v / 100, nil
}

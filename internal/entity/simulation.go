package entity

import (
	"time"
)

// RetirementInputs are the parameters of one projection run.
// Rates are fractional, e.g. 0.035 means 3.5% per year.
type RetirementInputs struct {
	CurrentAge          int     `json:"current_age" yaml:"current_age"`
	RetirementAge       int     `json:"retirement_age" yaml:"retirement_age"`
	CurrentSavings      float64 `json:"current_savings" yaml:"current_savings"`
	MonthlyContribution float64 `json:"monthly_contribution" yaml:"monthly_contribution"`
	SalaryGrowthRate    float64 `json:"salary_growth_rate" yaml:"salary_growth_rate"`
	AssumedReturnRate   float64 `json:"assumed_return_rate" yaml:"assumed_return_rate"`
	// TargetMonthlyIncome is the optional desired income in retirement; 0 means not set.
	TargetMonthlyIncome float64 `json:"target_monthly_income,omitempty" yaml:"target_monthly_income,omitempty"`
}

// Years returns the number of compounding years until retirement.
func (in RetirementInputs) Years() int {
	return in.RetirementAge - in.CurrentAge
}

// ScenarioResult is the outcome of one scenario projection.
type ScenarioResult struct {
	Name             string  `json:"name"`
	RetirementAge    int     `json:"retirement_age"`
	ProjectedSavings float64 `json:"projected_savings"`
	Notes            string  `json:"notes"`
}

// Band is a classification bucket relative to the retirement sum benchmarks.
type Band string

// Bands in ascending order.
const (
	BandBelowBRS     Band = "Below BRS"
	BandBRSToFRS     Band = "Between BRS and FRS"
	BandFRSToERS     Band = "Between FRS and ERS"
	BandAtOrAboveERS Band = "At or above ERS"
)

// Classification places a projected balance against the benchmarks.
type Classification struct {
	Label         Band    `json:"label"`
	MultipleOfFRS string  `json:"multiple_of_frs"`
	Ratio         float64 `json:"ratio"`
}

// Benchmarks are the externally configured retirement sum thresholds.
type Benchmarks struct {
	BRS       float64 `json:"brs"`
	FRS       float64 `json:"frs"`
	ERS       float64 `json:"ers"`
	YearLabel string  `json:"year_label"`
}

// YearPoint is the balance at the start of a given age.
type YearPoint struct {
	Age     int     `json:"age"`
	Year    int     `json:"year"`
	Balance float64 `json:"balance"`
}

// SimulationRun is a stored simulation with all derived results.
type SimulationRun struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Inputs         RetirementInputs `json:"inputs"`
	Scenarios      []ScenarioResult `json:"scenarios"`
	Classification Classification   `json:"classification"`
	Trajectory     []YearPoint      `json:"trajectory"`
	Benchmarks     Benchmarks       `json:"benchmarks"`
}

// Base returns the base case scenario of the run.
func (r *SimulationRun) Base() ScenarioResult {
	if len(r.Scenarios) == 0 {
		return ScenarioResult{}
	}
	return r.Scenarios[0]
}

// Preset is a named set of example inputs.
type Preset struct {
	Name   string           `json:"name" yaml:"name"`
	Inputs RetirementInputs `json:"inputs" yaml:"inputs"`
}

// ReportFile is a rendered simulation report ready to be sent to a client.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

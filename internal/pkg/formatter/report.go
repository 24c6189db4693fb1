package formatter

import (
	"fmt"
	"strconv"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/money"
)

const (
	reportTitle = "Retirement savings simulation"
	disclaimer  = "This simulation uses simplified assumptions and is for educational purposes only. " +
		"It is not an official CPF projection or personalised financial advice. " +
		"Check your actual balances and use the official CPF calculators before making decisions."
)

// SimulationReport lays out a stored run. explanation may be empty.
func SimulationReport(run *entity.SimulationRun, explanation string) *Report {
	in := run.Inputs
	base := run.Base()
	b := run.Benchmarks

	inputRows := [][]string{
		{"Current age", strconv.Itoa(in.CurrentAge)},
		{"Planned retirement age", strconv.Itoa(in.RetirementAge)},
		{"Current savings", money.Format(in.CurrentSavings)},
		{"Monthly contribution", money.Format(in.MonthlyContribution)},
		{"Annual contribution growth", money.Percent(in.SalaryGrowthRate)},
		{"Assumed annual return", money.Percent(in.AssumedReturnRate)},
	}
	if in.TargetMonthlyIncome > 0 {
		inputRows = append(inputRows, []string{"Target monthly income", money.Format(in.TargetMonthlyIncome)})
	}

	sections := []Section{
		{
			Heading: "Inputs",
			Table:   &Table{Header: []string{"Parameter", "Value"}, Rows: inputRows},
		},
		{
			Heading: "Scenarios",
			Table:   scenarioTable(run.Scenarios),
		},
		{
			Heading: "Classification",
			Paragraphs: []string{
				fmt.Sprintf("At age %d the base case projects %s, which is %s (%s).",
					base.RetirementAge, money.Format(base.ProjectedSavings),
					run.Classification.Label, run.Classification.MultipleOfFRS),
			},
			Bullets: []string{
				"Basic Retirement Sum (BRS): " + money.Format(b.BRS),
				"Full Retirement Sum (FRS): " + money.Format(b.FRS),
				"Enhanced Retirement Sum (ERS): " + money.Format(b.ERS),
			},
		},
		{
			Heading: "Projected balance by age",
			Table:   trajectoryTable(run.Trajectory),
		},
	}

	if explanation != "" {
		sections = append(sections, Section{
			Heading:    "Explanation",
			Paragraphs: []string{explanation},
		})
	}

	sections = append(sections, Section{
		Heading:    "Important",
		Paragraphs: []string{disclaimer},
	})

	subtitle := "Generated " + run.CreatedAt.UTC().Format("2 Jan 2006 15:04 MST")
	if b.YearLabel != "" {
		subtitle += ", benchmarks for " + b.YearLabel
	}

	return &Report{
		Title:    reportTitle,
		Subtitle: subtitle,
		Sections: sections,
	}
}

func scenarioTable(scenarios []entity.ScenarioResult) *Table {
	t := &Table{Header: []string{"Scenario", "Retirement age", "Projected savings", "Notes"}}
	for _, s := range scenarios {
		t.Rows = append(t.Rows, []string{
			s.Name,
			strconv.Itoa(s.RetirementAge),
			money.Format(s.ProjectedSavings),
			s.Notes,
		})
	}
	return t
}

func trajectoryTable(points []entity.YearPoint) *Table {
	t := &Table{Header: []string{"Age", "Years from now", "Balance"}}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.Age),
			strconv.Itoa(p.Year),
			money.Format(p.Balance),
		})
	}
	return t
}

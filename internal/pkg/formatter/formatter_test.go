package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *entity.SimulationRun {
	return &entity.SimulationRun{
		ID:        "run-1",
		CreatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Inputs: entity.RetirementInputs{
			CurrentAge: 63, RetirementAge: 65, CurrentSavings: 100000,
			MonthlyContribution: 500, SalaryGrowthRate: 0.02, AssumedReturnRate: 0.035,
		},
		Scenarios: []entity.ScenarioResult{
			{Name: "Base case", RetirementAge: 65, ProjectedSavings: 119640, Notes: "Projection using your current inputs."},
			{Name: "Increase contribution by 20%", RetirementAge: 65, ProjectedSavings: 120900, Notes: "Shows effect of increasing your monthly contribution."},
		},
		Classification: entity.Classification{Label: entity.BandBRSToFRS, MultipleOfFRS: "0.56 × FRS", Ratio: 0.56},
		Trajectory: []entity.YearPoint{
			{Age: 63, Year: 0, Balance: 100000},
			{Age: 64, Year: 1, Balance: 109710},
			{Age: 65, Year: 2, Balance: 119640},
		},
		Benchmarks: entity.Benchmarks{BRS: 106500, FRS: 213000, ERS: 426000, YearLabel: "2025"},
	}
}

func TestMarkdownFormatter_SimulationReport(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(SimulationReport(sampleRun(), "Looks reasonable."))
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Retirement savings simulation\n")
	assert.Contains(t, md, "_Generated 1 Mar 2025 10:30 UTC, benchmarks for 2025_")
	assert.Contains(t, md, "| Current savings | S$100,000 |")
	assert.Contains(t, md, "| Assumed annual return | 3.5% |")
	assert.Contains(t, md, "| Base case | 65 | S$119,640 | Projection using your current inputs. |")
	assert.Contains(t, md, "which is Between BRS and FRS (0.56 × FRS)")
	assert.Contains(t, md, "- Full Retirement Sum (FRS): S$213,000")
	assert.Contains(t, md, "| 64 | 1 | S$109,710 |")
	assert.Contains(t, md, "## Explanation\n\nLooks reasonable.")
	assert.Contains(t, md, "## Important")
}

func TestMarkdownFormatter_NoExplanation(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(SimulationReport(sampleRun(), ""))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "## Explanation")
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	report := &Report{
		Title:    "t",
		Sections: []Section{{Heading: "h", Table: &Table{Header: []string{"a"}, Rows: [][]string{{"x|y"}}}}},
	}
	out, err := NewMarkdownFormatter().Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `| x\|y |`)
}

func TestPDFFormatter(t *testing.T) {
	f := NewPDFFormatter()
	out, err := f.Format(SimulationReport(sampleRun(), "Explanation text."))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", f.ContentType())
	assert.Equal(t, ".pdf", f.FileExtension())
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err)
		assert.NotEmpty(t, f.ContentType())
	}

	_, err := factory.Create("rtf")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

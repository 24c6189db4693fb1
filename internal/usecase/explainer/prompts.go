package explainer

import (
	"fmt"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/money"
)

const (
	TopicWithdrawals    = "withdrawals"
	TopicRetirementSums = "retirement_sums"
)

const systemPrompt = "You are an assistant that explains CPF-related policies for educational purposes only. " +
	"You must:\n" +
	"- Use simple, neutral language.\n" +
	"- Clearly state that your explanations are simplified.\n" +
	"- Encourage users to refer to official CPF and gov.sg pages and calculators.\n" +
	"- If you are unsure or lack information, say so explicitly.\n"

const (
	questionInstructions = "Provide a clear explanation, list 3–5 key points, and end with a reminder " +
		"to check official CPF sources and calculators."

	simulationInstructions = "Explain what these projections mean in simple terms. " +
		"Highlight:\n" +
		"- Whether the user appears roughly below/around/above typical retirement benchmarks.\n" +
		"- How delaying retirement or increasing contributions changes the picture.\n" +
		"- 3–5 key insights or trade-offs.\n" +
		"Be explicit that this is NOT an official CPF projection, and point the user to official calculators."

	noPolicyExcerpts = "No specific policy excerpts were retrieved. " +
		"Answer based on general knowledge and be explicit about uncertainty."
	noSimulationExcerpts = "No specific CPF documents were retrieved. " +
		"Explain in generic terms and be clear that this is illustrative."

	// FallbackMessage replaces the explanation when the generation service fails.
	FallbackMessage = "Sorry, the explanation service is unavailable right now. " +
		"Please try again later, and check official CPF sources and calculators in the meantime."
)

type profileField struct {
	label string
	value string
}

func profileFields(p entity.UserProfile) []profileField {
	var fields []profileField
	for _, f := range []profileField{
		{"Age band", p.AgeBand},
		{"Housing status", p.HousingStatus},
		{"Savings band", p.SavingsBand},
	} {
		if strings.TrimSpace(f.value) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// retrievalQuery appends the disclosed profile to the question.
// Answers such as "Prefer not to say" are left out.
func retrievalQuery(question string, p entity.UserProfile) string {
	var bits []string
	for _, f := range profileFields(p) {
		if strings.Contains(f.value, "Prefer not") {
			continue
		}
		bits = append(bits, f.label+": "+f.value)
	}

	if len(bits) == 0 {
		return question
	}
	return question + " | profile: " + strings.Join(bits, "; ")
}

// topicFor guesses a topic filter from keywords in the question; "" means no filter.
func topicFor(question string) string {
	lower := strings.ToLower(question)
	switch {
	case strings.Contains(lower, "withdraw") || strings.Contains(question, "55"):
		return TopicWithdrawals
	case strings.Contains(lower, "brs") || strings.Contains(lower, "frs") || strings.Contains(lower, "ers"):
		return TopicRetirementSums
	default:
		return ""
	}
}

func formatExcerpts(records []entity.CorpusRecord) string {
	parts := make([]string, len(records))
	for i, r := range records {
		title := r.Title
		if title == "" {
			title = "unknown"
		}
		parts[i] = fmt.Sprintf("[Source: %s - %s] %s", title, r.Source, r.Text)
	}
	return strings.Join(parts, "\n\n")
}

func questionContext(p entity.UserProfile, records []entity.CorpusRecord) string {
	var parts []string

	if fields := profileFields(p); len(fields) > 0 {
		lines := make([]string, len(fields))
		for i, f := range fields {
			lines[i] = "- " + f.label + ": " + f.value
		}
		parts = append(parts, "User profile:\n"+strings.Join(lines, "\n"))
	}

	if len(records) > 0 {
		parts = append(parts, "Relevant policy excerpts:\n"+formatExcerpts(records))
	} else {
		parts = append(parts, noPolicyExcerpts)
	}

	return strings.Join(parts, "\n\n")
}

func simulationQuery(c entity.Classification) string {
	return fmt.Sprintf("retirement planning; projected savings classified as %s %s", c.Label, c.MultipleOfFRS)
}

func simulationContext(
	in entity.RetirementInputs,
	scenarios []entity.ScenarioResult,
	c entity.Classification,
	records []entity.CorpusRecord,
) string {
	fields := []string{
		fmt.Sprintf("- current_age: %d", in.CurrentAge),
		fmt.Sprintf("- retirement_age: %d", in.RetirementAge),
		"- current_savings: " + money.Format(in.CurrentSavings),
		"- monthly_contribution: " + money.Format(in.MonthlyContribution),
		"- salary_growth_rate: " + money.Percent(in.SalaryGrowthRate),
		"- assumed_return_rate: " + money.Percent(in.AssumedReturnRate),
	}
	if in.TargetMonthlyIncome > 0 {
		fields = append(fields, "- target_retirement_income: "+money.Format(in.TargetMonthlyIncome)+" per month")
	}
	inputs := strings.Join(fields, "\n")

	lines := make([]string, len(scenarios))
	for i, s := range scenarios {
		lines[i] = fmt.Sprintf("- %s: retire at %d with projected savings of %s (%s)",
			s.Name, s.RetirementAge, money.Format(s.ProjectedSavings), s.Notes)
	}

	parts := []string{
		"User simulation inputs:\n" + inputs,
		"Scenarios:\n" + strings.Join(lines, "\n"),
		fmt.Sprintf("Base scenario classification: %s (%s).", c.Label, c.MultipleOfFRS),
	}

	if len(records) > 0 {
		parts = append(parts, "Relevant CPF information:\n"+formatExcerpts(records))
	} else {
		parts = append(parts, noSimulationExcerpts)
	}

	return strings.Join(parts, "\n\n")
}

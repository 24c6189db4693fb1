package render

import (
	"fmt"
	"strings"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/futig/cpf-explainer/internal/pkg/money"
)

const (
	MsgWelcome = `👋 Hi! I explain CPF retirement policy in plain language and run simple savings projections.

I can:
• Answer questions about CPF withdrawals and retirement sums
• Project your savings to retirement under three scenarios
• Compare the result with the Basic, Full and Enhanced Retirement Sums

Type /help to see the commands.`

	MsgHelp = `🤖 Commands:

/ask <question> - ask about CPF retirement policy
/simulate <age> <retirement age> <savings> <monthly> [growth%] [return%] - run a projection
/presets - list example profiles
/preset <n> - run example profile n
/help - show this message

Example:
/simulate 35 65 60000 900 2 4

Growth and return are yearly percentages. They default to 2% and 4%.`

	MsgNoPresets      = "No example profiles are configured."
	MsgAskUsage       = "Please add a question, for example:\n/ask When can I start withdrawing my CPF savings?"
	MsgPresetUsage    = "Please pick a profile number, for example /preset 1. Use /presets to see the list."
	MsgUnknownCommand = "❌ Unknown command. Type /help to see what I can do."
	MsgTextHint       = "Send /ask followed by your question, or /help for all commands."

	Disclaimer = "⚠️ Educational only. This is not financial advice."
)

// User-facing error messages
const (
	ErrGeneric           = "❌ Something went wrong. Please try again later."
	ErrCorpusUnavailable = "📚 The policy notes are not loaded yet. Please try again later."
	ErrServiceDown       = "🔌 The explanation service is unavailable. Please try again later."
	ErrTimeout           = "⏱ The request took too long. Please try again."
	ErrSimulationExpired = "This simulation is no longer available. Please run it again."
	ErrPresetNotFound    = "There is no such profile. Use /presets to see the list."
	ErrRateLimited       = "⚠️ Too many requests. Please wait a moment."
	ErrRateLimitedAgain  = "⚠️ Rate limit exceeded. Please wait about 30 seconds before trying again."
	ErrRateLimitedSevere = "🛑 You are sending requests too often. Please wait a minute."
	ErrPanic             = "❌ Something went wrong. Please try again or send /help."
)

// InvalidInput formats a validation message with the usage hint.
func InvalidInput(reason string) string {
	return fmt.Sprintf("❌ %s\n\nUsage: /simulate <age> <retirement age> <savings> <monthly> [growth%%] [return%%]", reason)
}

// InvalidQuestion formats a rejected /ask question.
func InvalidQuestion(reason string) string {
	return "❌ " + reason + "\n\nPlease shorten the question and try again."
}

// Explanation renders a generated answer with its sources.
func Explanation(e *entity.Explanation) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(e.Text))

	if len(e.Sources) > 0 {
		b.WriteString("\n\nSources:")
		seen := make(map[string]bool, len(e.Sources))
		for _, s := range e.Sources {
			key := s.Title + "|" + s.Source
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&b, "\n• %s (%s)", s.Title, s.Source)
		}
	}

	if !e.Grounded {
		b.WriteString("\n\nNo matching policy excerpts were found, so this answer is general.")
	}

	b.WriteString("\n\n")
	b.WriteString(Disclaimer)
	return b.String()
}

// Simulation renders the headline results of a run.
func Simulation(run *entity.SimulationRun) string {
	var b strings.Builder
	in := run.Inputs

	fmt.Fprintf(&b, "📈 Projection from age %d to %d (%d years)\n\n", in.CurrentAge, in.RetirementAge, in.Years())
	fmt.Fprintf(&b, "Savings today: %s\nMonthly contribution: %s\nSalary growth: %s a year\nReturn: %s a year\n\n",
		money.Format(in.CurrentSavings),
		money.Format(in.MonthlyContribution),
		money.Percent(in.SalaryGrowthRate),
		money.Percent(in.AssumedReturnRate),
	)
	if in.TargetMonthlyIncome > 0 {
		fmt.Fprintf(&b, "Target income: %s a month\n\n", money.Format(in.TargetMonthlyIncome))
	}

	b.WriteString("Scenarios:\n")
	for _, s := range run.Scenarios {
		fmt.Fprintf(&b, "• %s (retire at %d): %s\n", s.Name, s.RetirementAge, money.Format(s.ProjectedSavings))
	}

	bm := run.Benchmarks
	fmt.Fprintf(&b, "\nBase case: %s (%s)\n", run.Classification.Label, run.Classification.MultipleOfFRS)
	fmt.Fprintf(&b, "Benchmarks %s: BRS %s, FRS %s, ERS %s\n\n",
		bm.YearLabel, money.Format(bm.BRS), money.Format(bm.FRS), money.Format(bm.ERS))

	b.WriteString(Disclaimer)
	return b.String()
}

// Presets renders the numbered list of example profiles.
func Presets(presets []entity.Preset) string {
	if len(presets) == 0 {
		return MsgNoPresets
	}

	var b strings.Builder
	b.WriteString("Example profiles:\n")
	for i, p := range presets {
		in := p.Inputs
		fmt.Fprintf(&b, "\n%d. %s\n   age %d → %d, %s saved, %s a month",
			i+1, p.Name, in.CurrentAge, in.RetirementAge,
			money.Format(in.CurrentSavings), money.Format(in.MonthlyContribution))
	}
	b.WriteString("\n\nTap a button or send /preset <n>.")
	return b.String()
}

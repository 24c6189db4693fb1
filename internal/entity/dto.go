package entity

import "time"

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UserProfile is optional context supplied with a policy question.
type UserProfile struct {
	AgeBand       string `json:"age_band,omitempty"`
	HousingStatus string `json:"housing_status,omitempty"`
	SavingsBand   string `json:"savings_band,omitempty"`
}

type PolicyQuestionRequest struct {
	Question string      `json:"question"`
	Profile  UserProfile `json:"profile"`
}

type PolicyQuestionResponse struct {
	Answer   string      `json:"answer"`
	Grounded bool        `json:"grounded"`
	Fallback bool        `json:"fallback"`
	Sources  []SourceRef `json:"sources"`
}

type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
	Topic string `json:"topic,omitempty"`
}

type SearchResultItem struct {
	ChunkID    string  `json:"chunk_id"`
	DocID      string  `json:"doc_id"`
	Title      string  `json:"title"`
	Topic      string  `json:"topic"`
	Source     string  `json:"source"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

type SimulationResponse struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Inputs         RetirementInputs `json:"inputs"`
	Scenarios      []ScenarioResult `json:"scenarios"`
	Classification Classification   `json:"classification"`
	Trajectory     []YearPoint      `json:"trajectory"`
	Benchmarks     Benchmarks       `json:"benchmarks"`
	Explanation    *Explanation     `json:"explanation,omitempty"`
}

type SimulationSummary struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	RetirementAge    int       `json:"retirement_age"`
	ProjectedSavings float64   `json:"projected_savings"`
	Label            Band      `json:"label"`
}

type ListSimulationsResponse struct {
	Simulations []*SimulationSummary `json:"simulations"`
}

type ListPresetsResponse struct {
	Presets []Preset `json:"presets"`
}

// ParseResultFormat accepts "md" as shorthand for markdown; empty means markdown.
func ParseResultFormat(s string) (ResultFormat, bool) {
	switch s {
	case "", "md":
		return FormatMarkdown, true
	}
	f := ResultFormat(s)
	return f, f.IsValid()
}

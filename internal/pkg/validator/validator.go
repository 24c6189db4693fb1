package validator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/futig/cpf-explainer/internal/config"
	"github.com/futig/cpf-explainer/internal/entity"
)

const (
	MinAge = 18
	MaxAge = 100

	// MaxAmount caps savings and contributions so projections stay finite.
	MaxAmount = 1e12
)

// Validator checks request payloads before they reach the use cases.
type Validator struct {
	cfg config.RetrievalConfig
}

func NewValidator(cfg config.RetrievalConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateQuestion trims the question and checks it is present and not too long.
func (v *Validator) ValidateQuestion(req *entity.PolicyQuestionRequest) error {
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	if n := utf8.RuneCountInString(req.Question); n > v.cfg.MaxQuestionLength {
		return fmt.Errorf("%w: question is %d characters (max %d)", entity.ErrInvalidParameter, n, v.cfg.MaxQuestionLength)
	}
	return nil
}

// ValidateSearch fills k with the configured default when it is zero.
func (v *Validator) ValidateSearch(req *entity.SearchRequest) error {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return fmt.Errorf("%w: query", entity.ErrMissingField)
	}
	if req.K == 0 {
		req.K = v.cfg.TopK
	}
	if req.K < 0 || req.K > v.cfg.MaxK {
		return fmt.Errorf("%w: k must be between 1 and %d", entity.ErrInvalidParameter, v.cfg.MaxK)
	}
	return nil
}

// ValidateInputs rejects simulation inputs outside the supported ranges.
// A retirement age below the current age is entity.ErrInvalidRange.
func ValidateInputs(in entity.RetirementInputs) error {
	switch {
	case in.CurrentAge < MinAge || in.CurrentAge > MaxAge:
		return fmt.Errorf("%w: current_age must be between %d and %d", entity.ErrInvalidInputs, MinAge, MaxAge)
	case in.RetirementAge > MaxAge:
		return fmt.Errorf("%w: retirement_age must be at most %d", entity.ErrInvalidInputs, MaxAge)
	case in.RetirementAge < in.CurrentAge:
		return fmt.Errorf("%w: retirement_age %d, current_age %d", entity.ErrInvalidRange, in.RetirementAge, in.CurrentAge)
	}
	if err := checkAmount("current_savings", in.CurrentSavings); err != nil {
		return err
	}
	if err := checkAmount("monthly_contribution", in.MonthlyContribution); err != nil {
		return err
	}
	if err := checkAmount("target_monthly_income", in.TargetMonthlyIncome); err != nil {
		return err
	}

	switch {
	case !validRate(in.SalaryGrowthRate):
		return fmt.Errorf("%w: salary_growth_rate must be within [-1, 1)", entity.ErrInvalidInputs)
	case !validRate(in.AssumedReturnRate):
		return fmt.Errorf("%w: assumed_return_rate must be within [-1, 1)", entity.ErrInvalidInputs)
	}
	return nil
}

func checkAmount(name string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%w: %s must be a finite number", entity.ErrInvalidInputs, name)
	case v < 0:
		return fmt.Errorf("%w: %s must not be negative", entity.ErrInvalidInputs, name)
	case v > MaxAmount:
		return fmt.Errorf("%w: %s must be at most %.0f", entity.ErrInvalidInputs, name, float64(MaxAmount))
	}
	return nil
}

func validRate(r float64) bool {
	return r >= -1 && r < 1
}

package simulator

import (
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
)

// Classify places a projected balance into one of four bands. Bands are
// left-inclusive: [0, brs), [brs, frs), [frs, ers), [ers, +inf).
// Thresholds must satisfy brs <= frs <= ers; this is not checked.
func Classify(projected, brs, frs, ers float64) entity.Classification {
	var ratio float64
	if frs > 0 {
		ratio = projected / frs
	}

	var label entity.Band
	switch {
	case projected < brs:
		label = entity.BandBelowBRS
	case projected < frs:
		label = entity.BandBRSToFRS
	case projected < ers:
		label = entity.BandFRSToERS
	default:
		label = entity.BandAtOrAboveERS
	}

	return entity.Classification{
		Label:         label,
		MultipleOfFRS: fmt.Sprintf("%.2f × FRS", ratio),
		Ratio:         ratio,
	}
}

// ClassifyAgainst classifies projected using configured benchmarks.
func ClassifyAgainst(projected float64, b entity.Benchmarks) entity.Classification {
	return Classify(projected, b.BRS, b.FRS, b.ERS)
}

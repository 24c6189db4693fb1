package simulator

import (
	"slices"
	"testing"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBRS = 106500.0
	testFRS = 213000.0
	testERS = 426000.0
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		projected float64
		label     entity.Band
		multiple  string
	}{
		{"below brs", 100000, entity.BandBelowBRS, "0.47 × FRS"},
		{"at brs", 106500, entity.BandBRSToFRS, "0.50 × FRS"},
		{"between brs and frs", 150000, entity.BandBRSToFRS, "0.70 × FRS"},
		{"at frs", 213000, entity.BandFRSToERS, "1.00 × FRS"},
		{"just below ers", 425999, entity.BandFRSToERS, "2.00 × FRS"},
		{"at ers", 426000, entity.BandAtOrAboveERS, "2.00 × FRS"},
		{"above ers", 500000, entity.BandAtOrAboveERS, "2.35 × FRS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.projected, testBRS, testFRS, testERS)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.multiple, got.MultipleOfFRS)
		})
	}
}

func TestClassify_ZeroFRS(t *testing.T) {
	got := Classify(1000, 0, 0, 0)
	assert.Equal(t, entity.BandAtOrAboveERS, got.Label)
	assert.Equal(t, "0.00 × FRS", got.MultipleOfFRS)
	assert.Zero(t, got.Ratio)
}

func TestClassify_Monotonic(t *testing.T) {
	ascending := []entity.Band{entity.BandBelowBRS, entity.BandBRSToFRS, entity.BandFRSToERS, entity.BandAtOrAboveERS}
	rank := func(b entity.Band) int { return slices.Index(ascending, b) }

	prev := 0
	for projected := 0.0; projected <= 600000; projected += 2500 {
		r := rank(Classify(projected, testBRS, testFRS, testERS).Label)
		require.NotEqual(t, -1, r)
		assert.GreaterOrEqual(t, r, prev, "band regressed at %.0f", projected)
		prev = r
	}
}

func TestClassifyAgainst(t *testing.T) {
	b := entity.Benchmarks{BRS: testBRS, FRS: testFRS, ERS: testERS, YearLabel: "2025"}
	assert.Equal(t, Classify(300000, testBRS, testFRS, testERS), ClassifyAgainst(300000, b))
}

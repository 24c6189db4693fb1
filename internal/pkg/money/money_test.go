package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[float64]string{
		0:          "S$0",
		1320:       "S$1,320",
		213000:     "S$213,000",
		1234567.6:  "S$1,234,568",
		-2500.2:    "-S$2,500",
		106500.499: "S$106,500",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(in), "input %v", in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "4%", Percent(0.04))
	assert.Equal(t, "2.5%", Percent(0.025))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "-1.25%", Percent(-0.0125))
}

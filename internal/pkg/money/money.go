// Package money formats Singapore dollar amounts for prompts, reports and chat replies.
package money

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders v rounded to whole dollars with thousands separators, e.g. "S$1,234,567".
func Format(v float64) string {
	if v < 0 {
		return printer.Sprintf("-S$%.0f", -v)
	}
	return printer.Sprintf("S$%.0f", v)
}

// Percent renders a fractional rate as a percentage with up to two decimals, e.g. 0.025 -> "2.5%".
func Percent(rate float64) string {
	rounded := float64(int64(rate*10000+sign(rate)*0.5)) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

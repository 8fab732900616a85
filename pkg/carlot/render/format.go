package render

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var locale = language.AmericanEnglish

// FormatNumber rounds v to an integer and groups digits for en-US.
func FormatNumber(v float64) string {
	return message.NewPrinter(locale).Sprintf("%d", int64(math.Round(v)))
}

// FormatPrice renders v as whole US dollars, e.g. "$18,500".
func FormatPrice(v float64) string {
	n := math.Round(v)
	if n < 0 {
		return "-$" + FormatNumber(-n)
	}
	return "$" + FormatNumber(n)
}

// FormatMileage renders v as grouped miles, e.g. "42,000 mi".
func FormatMileage(v float64) string {
	return FormatNumber(v) + " mi"
}

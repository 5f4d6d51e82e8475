package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEuro formats an amount the French way: space-grouped thousands,
// decimal comma and a trailing euro sign. Whole amounts drop the cents.
func FormatEuro(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	if amount.IsInteger() {
		s = amount.StringFixed(0)
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	b.WriteString(" €")
	return b.String()
}

// FormatPercent formats a 0-100 rate, trimming trailing zeros.
func FormatPercent(rate decimal.Decimal) string {
	return strings.Replace(rate.Round(2).String(), ".", ",", 1) + " %"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

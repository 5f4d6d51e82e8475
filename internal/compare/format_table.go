package compare

import (
	"fmt"
	"strings"

	"github.com/fiscalite/taxsim/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing statuses
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FREELANCE STATUS COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Activity: %s, turnover %s (tax year %d)\n",
		compSet.Activity, output.FormatEuro(compSet.Turnover), compSet.TaxYear))
	sb.WriteString(fmt.Sprintf("Base Status: %s\n", compSet.BaseStatus))
	if compSet.Source != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.Source))
	}
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Status",
		numWidth, "Eligible",
		numWidth, "Charges",
		numWidth, "Charge Rate",
		numWidth, "Net Income"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true, compSet))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false, compSet))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Status))
			if !alt.Eligible {
				sb.WriteString(fmt.Sprintf("  Not available:  %s\n", alt.Reason))
				continue
			}
			sb.WriteString(fmt.Sprintf("  Net Income:     %s%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				tf.formatDecimal(alt.NetDiffFromBase),
				alt.NetPctFromBase.StringFixed(1)))
			if !alt.ChargesDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Charges:        %s%s\n",
					tf.deltaSymbol(alt.ChargesDiffFromBase),
					tf.formatDecimal(alt.ChargesDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool, compSet *ComparisonSet) string {
	name := string(result.Status)
	if isBase {
		name += " (base)"
	}
	if result.Status == compSet.Best {
		name += " *"
	}
	eligible := "yes"
	if !result.Eligible {
		eligible = "no"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, eligible,
		numWidth, tf.formatDecimal(result.TotalCharges),
		numWidth, output.FormatPercent(result.ChargeRatePercent),
		numWidth, tf.formatDecimal(result.NetIncome))
}

// formatDecimal formats a euro amount, abbreviating thousands and millions.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	if abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return sign + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M €"
	} else if abs.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return sign + abs.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K €"
	}
	return sign + abs.StringFixed(0) + " €"
}

// deltaSymbol returns "+" for a positive delta; negatives carry their own sign.
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the alternatives.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseStatus))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		switch {
		case !alt.Eligible:
			change = "n/a"
		case alt.NetDiffFromBase.IsPositive():
			change = "+" + tf.formatDecimal(alt.NetDiffFromBase)
		case alt.NetDiffFromBase.IsNegative():
			change = tf.formatDecimal(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Status, change))
	}

	return sb.String()
}

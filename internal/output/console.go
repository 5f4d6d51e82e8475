package output

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
)

// ConsoleFormatter renders every section, tables included.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	sections, err := Summarize(out)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	title := strings.ToUpper(Title(out))
	fmt.Fprintln(&buf, strings.Repeat("=", utf8.RuneCountInString(title)))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", utf8.RuneCountInString(title)))
	fmt.Fprintln(&buf)

	for _, s := range sections {
		fmt.Fprintln(&buf, strings.ToUpper(s.Title))
		fmt.Fprintln(&buf, strings.Repeat("-", utf8.RuneCountInString(s.Title)))
		labelWidth := lo.Max(lo.Map(s.Rows, func(r Row, _ int) int { return utf8.RuneCountInString(r.Label) }))
		for _, r := range s.Rows {
			fmt.Fprintf(&buf, "  %-*s  %s\n", labelWidth+1, r.Label+":", r.Value)
		}
		if s.Table != nil {
			if len(s.Rows) > 0 {
				fmt.Fprintln(&buf)
			}
			writeTable(&buf, s.Table)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "ASSUMPTIONS:")
	for _, a := range Assumptions(out) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

// writeTable left-aligns the first column and right-aligns the others.
func writeTable(buf *bytes.Buffer, t *Table) {
	widths := make([]int, len(t.Headers))
	for _, row := range append([][]string{t.Headers}, t.Rows...) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}
	line := func(cells []string) {
		buf.WriteString(" ")
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i == 0 {
				fmt.Fprintf(buf, " %-*s", widths[i], cell)
			} else {
				fmt.Fprintf(buf, "  %*s", widths[i], cell)
			}
		}
		buf.WriteString("\n")
	}
	line(t.Headers)
	total := len(widths)*2 - 1
	for _, w := range widths {
		total += w
	}
	fmt.Fprintf(buf, "  %s\n", strings.Repeat("-", total))
	for _, row := range t.Rows {
		line(row)
	}
}

// ConsoleLiteFormatter prints the headline figures only.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome cannot be nil")
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, Title(out))
	for _, line := range Headline(out) {
		fmt.Fprintf(&buf, "  %s\n", line)
	}
	return buf.Bytes(), nil
}

// Headline is a few lines summarizing an outcome.
func Headline(out *domain.SimulationOutcome) []string {
	switch {
	case out.IncomeTax != nil:
		r := out.IncomeTax
		return []string{
			fmt.Sprintf("Total tax: %s", FormatEuro(r.TotalTax)),
			fmt.Sprintf("Marginal rate: %s, average rate: %s", FormatPercent(r.MarginalRatePercent), FormatPercent(r.AverageRatePercent)),
		}
	case out.RealEstateGain != nil:
		r := out.RealEstateGain
		return []string{
			fmt.Sprintf("Total tax: %s (%s)", FormatEuro(r.TotalTax), r.Status),
			fmt.Sprintf("Net proceeds: %s", FormatEuro(r.NetProceeds)),
		}
	case out.SecuritiesGain != nil:
		c := out.SecuritiesGain.Regimes
		return []string{fmt.Sprintf("Best regime: %s, %s (saving %s)", c.ChosenRegime, FormatEuro(c.ChosenAmount), FormatEuro(c.Saving))}
	case out.Regime != nil:
		c := out.Regime
		return []string{fmt.Sprintf("Best regime: %s, %s (saving %s)", c.ChosenRegime, FormatEuro(c.ChosenAmount), FormatEuro(c.Saving))}
	case out.Acquisition != nil:
		r := out.Acquisition
		return []string{
			fmt.Sprintf("Total cost: %s", FormatEuro(r.TotalCost)),
			fmt.Sprintf("Monthly total: %s, debt ratio %s", FormatEuro(r.MonthlyTotal), FormatPercent(r.DebtRatioPercent)),
		}
	case out.Donation != nil:
		r := out.Donation
		return []string{fmt.Sprintf("Recommended: %s (saving %s)", r.Recommended, FormatEuro(r.Saving))}
	case out.Freelance != nil:
		r := out.Freelance
		best, _ := r.Outcome(r.Best)
		return []string{fmt.Sprintf("Best status: %s, net income %s", r.Best, FormatEuro(best.NetIncome))}
	}
	return nil
}

package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fiscalite/taxsim/internal/output"
)

// TableFormatter formats solver results as console text
type TableFormatter struct{}

// FormatTurnover renders turnover break-evens.
func (tf *TableFormatter) FormatTurnover(results []TurnoverResult) string {
	var sb strings.Builder
	sb.WriteString("TURNOVER BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%s -> %s (searched %s to %s)\n", r.From, r.To, output.FormatEuro(r.MinTurnover), output.FormatEuro(r.MaxTurnover)))
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		if !r.Found {
			sb.WriteString(fmt.Sprintf("No break-even: %s\n\n", r.ConvergenceInfo))
			continue
		}
		sb.WriteString(fmt.Sprintf("Break-even turnover: %s (%s leads above it)\n", output.FormatEuro(r.Turnover), r.LeaderAbove))
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", r.From, tf.describe(r.FromOutcome.Eligible, r.FromOutcome.NetIncome.String(), r.FromOutcome.Reason)))
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", r.To, tf.describe(r.ToOutcome.Eligible, r.ToOutcome.NetIncome.String(), r.ToOutcome.Reason)))
		sb.WriteString(fmt.Sprintf("Iterations: %d, %s\n\n", r.Iterations, r.ConvergenceInfo))
	}
	return sb.String()
}

func (tf *TableFormatter) describe(eligible bool, net, reason string) string {
	if !eligible {
		return "not available: " + reason
	}
	return "net income " + net + " €"
}

// FormatSalary renders a salary share optimization.
func (tf *TableFormatter) FormatSalary(r *SalaryResult) string {
	var sb strings.Builder
	sb.WriteString("COMPANY SALARY SHARE\n")
	sb.WriteString(strings.Repeat("=", 48) + "\n")
	sb.WriteString(fmt.Sprintf("%8s  %16s  %16s\n", "Salary", "Net income", "Charges"))
	sb.WriteString(strings.Repeat("-", 48) + "\n")
	for _, p := range r.Points {
		marker := ""
		if p.Percent.Equal(r.Percent) {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("%8s  %16s  %16s%s\n", output.FormatPercent(p.Percent), output.FormatEuro(p.NetIncome), output.FormatEuro(p.TotalCharges), marker))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Best salary share: %s, net income %s\n", output.FormatPercent(r.Percent), output.FormatEuro(r.NetIncome)))
	if r.Gain.IsPositive() {
		sb.WriteString(fmt.Sprintf("That is %s more than the requested share\n", output.FormatEuro(r.Gain)))
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any solver result.
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

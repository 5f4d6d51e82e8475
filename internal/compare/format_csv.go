package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Status",
		"Type",
		"Eligible",
		"Total Charges",
		"Charge Rate %",
		"Net Income",
		"Net Diff from Base",
		"Net % Change",
		"Charges Diff from Base",
		"Best",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base", compSet)); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative", compSet)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, statusType string, compSet *ComparisonSet) []string {
	return []string{
		string(result.Status),
		statusType,
		strconv.FormatBool(result.Eligible),
		result.TotalCharges.StringFixed(2),
		result.ChargeRatePercent.StringFixed(2),
		result.NetIncome.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.ChargesDiffFromBase.StringFixed(2),
		strconv.FormatBool(result.Status == compSet.Best),
	}
}

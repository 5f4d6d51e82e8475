package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fiscalite/taxsim/internal/domain"
)

// CSVFormatter writes one record per section row: section,label,value.
// Table rows follow as section,<header cells...>.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	sections, err := Summarize(out)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"section", "label", "value"}); err != nil {
		return nil, err
	}
	for _, s := range sections {
		for _, r := range s.Rows {
			if err := w.Write([]string{s.Title, r.Label, r.Value}); err != nil {
				return nil, err
			}
		}
		if s.Table == nil {
			continue
		}
		if err := w.Write(append([]string{s.Title}, s.Table.Headers...)); err != nil {
			return nil, err
		}
		for _, row := range s.Table.Rows {
			if err := w.Write(append([]string{s.Title}, row...)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

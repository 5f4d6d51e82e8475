package output

import (
	"encoding/json"
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
)

// JSONFormatter emits the outcome itself, indented.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome cannot be nil")
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcome: %w", err)
	}
	return append(data, '\n'), nil
}

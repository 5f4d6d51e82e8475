// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/fiscalite/taxsim/internal/domain"
)

// FormSelectedMsg opens the form of a simulator.
type FormSelectedMsg struct {
	Kind domain.SimulationKind
}

// FormSubmittedMsg asks the root model to run a request.
type FormSubmittedMsg struct {
	Request domain.SimulationRequest
}

// CalculationCompleteMsg carries the engine's answer.
type CalculationCompleteMsg struct {
	Outcome *domain.SimulationOutcome
	Err     error
}

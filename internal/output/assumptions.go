package output

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
)

// Assumptions lists the modeling assumptions printed under a result.
func Assumptions(out *domain.SimulationOutcome) []string {
	notes := []string{
		fmt.Sprintf("Rates and thresholds from the %d rate table", out.TaxYear),
		"Liabilities are rounded to the nearest euro",
	}
	switch out.Kind {
	case domain.KindIncomeTax:
		notes = append(notes, "Tax credits and reductions are not modeled")
	case domain.KindRealEstateGain:
		notes = append(notes, "Holding years are full years from purchase to sale")
	case domain.KindSecuritiesGain, domain.KindRegime:
		notes = append(notes, "The progressive option includes the whole household's capital income")
	case domain.KindAcquisition:
		notes = append(notes, "Fixed rate, constant monthly payment, insurance on the initial principal")
	case domain.KindDonation:
		notes = append(notes, "Each parent gives to each child with a full allowance; no prior gifts in the last 15 years")
	case domain.KindFreelance:
		notes = append(notes, "Company figures assume a single-shareholder company distributing all remaining profit")
	}
	return notes
}

package output

import (
	"fmt"
	"strconv"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Row is one labelled value of a report section.
type Row struct {
	Label string
	Value string
}

// Table is a grid rendered below a section's rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Section groups the rows of one part of a simulation result. Every
// formatter except JSON renders the same sections.
type Section struct {
	Title string
	Rows  []Row
	Table *Table
}

// Summarize turns an outcome into report sections.
func Summarize(out *domain.SimulationOutcome) ([]Section, error) {
	if out == nil {
		return nil, fmt.Errorf("outcome cannot be nil")
	}
	switch out.Kind {
	case domain.KindIncomeTax:
		if out.IncomeTax != nil {
			return incomeTaxSections(out.IncomeTax), nil
		}
	case domain.KindRealEstateGain:
		if out.RealEstateGain != nil {
			return realEstateSections(out.RealEstateGain), nil
		}
	case domain.KindSecuritiesGain:
		if out.SecuritiesGain != nil {
			return securitiesSections(out.SecuritiesGain), nil
		}
	case domain.KindRegime:
		if out.Regime != nil {
			return []Section{regimeSection(out.Regime)}, nil
		}
	case domain.KindAcquisition:
		if out.Acquisition != nil {
			return acquisitionSections(out.Acquisition), nil
		}
	case domain.KindDonation:
		if out.Donation != nil {
			return donationSections(out.Donation), nil
		}
	case domain.KindFreelance:
		if out.Freelance != nil {
			return freelanceSections(out.Freelance), nil
		}
	default:
		return nil, fmt.Errorf("unsupported simulator %q", out.Kind)
	}
	return nil, fmt.Errorf("outcome of kind %s has no result", out.Kind)
}

// Title is the report heading of an outcome.
func Title(out *domain.SimulationOutcome) string {
	titles := map[domain.SimulationKind]string{
		domain.KindIncomeTax:      "Income tax simulation",
		domain.KindRealEstateGain: "Real-estate capital gain",
		domain.KindSecuritiesGain: "Securities capital gain",
		domain.KindRegime:         "Flat tax or progressive scale",
		domain.KindAcquisition:    "Property purchase and financing",
		domain.KindDonation:       "Donation before sale",
		domain.KindFreelance:      "Freelance status comparison",
	}
	title, ok := titles[out.Kind]
	if !ok {
		title = string(out.Kind)
	}
	if out.Label != "" {
		title += " - " + out.Label
	}
	return fmt.Sprintf("%s (tax year %d)", title, out.TaxYear)
}

func bracketUpper(upper *decimal.Decimal) string {
	if upper == nil {
		return "and above"
	}
	return FormatEuro(*upper)
}

func incomeTaxSections(r *domain.IncomeTaxResult) []Section {
	q := r.Quotient
	main := Section{
		Title: "Income tax",
		Rows: []Row{
			{"Status", string(r.Status)},
			{"Salary deduction", FormatEuro(r.SalaryDeduction)},
			{"Net taxable income", FormatEuro(r.NetTaxableIncome)},
			{"Household shares", q.Shares.String()},
			{"Income per share", FormatEuro(r.IncomePerShare.Round(0))},
			{"Tax with all shares", FormatEuro(q.TaxAtAllShares.Round(0))},
			{"Tax with base shares", FormatEuro(q.TaxAtBaseShares.Round(0))},
			{"Quotient benefit cap", FormatEuro(q.BenefitCap)},
			{"Cap applied", yesNo(q.Capped)},
			{"Décote", FormatEuro(r.Decote)},
			{"High-income surcharge", FormatEuro(r.HighIncomeSurcharge)},
			{"Total tax", FormatEuro(r.TotalTax)},
			{"Marginal rate", FormatPercent(r.MarginalRatePercent)},
			{"Average rate", FormatPercent(r.AverageRatePercent)},
		},
	}
	brackets := Section{
		Title: "Brackets (one share)",
		Table: &Table{
			Headers: []string{"From", "To", "Rate", "Taxable", "Tax"},
			Rows: lo.Map(r.Brackets, func(b domain.BracketSlice, _ int) []string {
				return []string{
					FormatEuro(b.Lower),
					bracketUpper(b.Upper),
					FormatPercent(b.RatePercent),
					FormatEuro(b.TaxableAmount.Round(2)),
					FormatEuro(b.Tax.Round(2)),
				}
			}),
		},
	}
	return []Section{main, brackets}
}

func stageTable(b domain.AbatementBreakdown) *Table {
	rows := [][]string{}
	for _, t := range []struct {
		name string
		res  domain.AbatementResult
	}{{"income tax", b.IncomeTax}, {"social", b.SocialContributions}} {
		for _, st := range t.res.Stages {
			rows = append(rows, []string{
				t.name, st.Name, FormatPercent(st.Percent), FormatEuro(st.Amount.Round(2)), FormatEuro(st.BaseAfter.Round(2)),
			})
		}
	}
	return &Table{Headers: []string{"Treatment", "Stage", "Percent", "Amount", "Remaining"}, Rows: rows}
}

func abatementRows(b domain.AbatementBreakdown) []Row {
	return []Row{
		{"Raw gain", FormatEuro(b.RawGain)},
		{"Holding years", strconv.Itoa(b.HoldingYears)},
		{"Income-tax abatement", FormatPercent(b.IncomeTax.PercentApplied)},
		{"Income-tax taxable gain", FormatEuro(b.IncomeTax.AdjustedGain.Round(2))},
		{"Social abatement", FormatPercent(b.SocialContributions.PercentApplied)},
		{"Social taxable gain", FormatEuro(b.SocialContributions.AdjustedGain.Round(2))},
	}
}

func realEstateSections(r *domain.RealEstateGainResult) []Section {
	rows := []Row{
		{"Status", string(r.Status)},
		{"Acquisition costs", FormatEuro(r.AcquisitionCosts)},
		{"Deductible works", FormatEuro(r.DeductibleWorks)},
	}
	rows = append(rows, abatementRows(r.Abatements)...)
	rows = append(rows,
		Row{"Income tax", FormatEuro(r.IncomeTax)},
		Row{"Social contributions", FormatEuro(r.SocialContributions)},
		Row{"Surtax", FormatEuro(r.Surtax)},
		Row{"Total tax", FormatEuro(r.TotalTax)},
		Row{"Net proceeds", FormatEuro(r.NetProceeds)},
	)
	return []Section{
		{Title: "Capital gain", Rows: rows},
		{Title: "Abatements", Table: stageTable(r.Abatements)},
	}
}

func securitiesSections(r *domain.SecuritiesGainResult) []Section {
	rows := append([]Row{{"Status", string(r.Status)}}, abatementRows(r.Abatements)...)
	return []Section{
		{Title: "Capital gain", Rows: rows},
		regimeSection(&r.Regimes),
	}
}

func regimeSection(c *domain.RegimeComparison) Section {
	return Section{
		Title: "Regime comparison",
		Rows: []Row{
			{"Status", string(c.Status)},
			{"Flat income tax", FormatEuro(c.FlatIncomeTax)},
			{"Progressive income tax", FormatEuro(c.ProgressiveIncomeTax)},
			{"Social contributions", FormatEuro(c.SocialContributions)},
			{"Flat tax total", FormatEuro(c.FlatTaxAmount)},
			{"Progressive total", FormatEuro(c.ProgressiveAmount)},
			{"Chosen regime", string(c.ChosenRegime)},
			{"Amount due", FormatEuro(c.ChosenAmount)},
			{"Saving", FormatEuro(c.Saving)},
		},
	}
}

func acquisitionSections(r *domain.AcquisitionResult) []Section {
	fees := Section{
		Title: "Purchase costs",
		Rows: []Row{
			{"Total fees", FormatEuro(r.TotalFees)},
			{"Total cost", FormatEuro(r.TotalCost)},
		},
		Table: &Table{
			Headers: []string{"Fee", "Rate", "Amount", "Override"},
			Rows: lo.Map(r.Fees, func(f domain.FeeLine, _ int) []string {
				return []string{f.Name, FormatPercent(f.RatePercent), FormatEuro(f.Amount), yesNo(f.Overridden)}
			}),
		},
	}
	loan := Section{
		Title: "Loan",
		Rows: []Row{
			{"Principal", FormatEuro(r.Loan.Principal)},
			{"Annual rate", FormatPercent(r.Loan.AnnualRatePercent)},
			{"Term (years)", strconv.Itoa(r.Loan.TermYears)},
			{"Monthly payment", FormatEuro(r.Loan.MonthlyPayment)},
			{"Monthly insurance", FormatEuro(r.MonthlyInsurance)},
			{"Monthly total", FormatEuro(r.MonthlyTotal)},
			{"Total interest", FormatEuro(r.Loan.TotalInterest)},
			{"Total insurance", FormatEuro(r.TotalInsurance)},
			{"Debt ratio", FormatPercent(r.DebtRatioPercent)},
			{"Within debt ceiling", yesNo(r.WithinDebtCeiling)},
		},
	}
	sections := []Section{fees, loan}
	if len(r.Schedule) > 0 {
		sections = append(sections, Section{
			Title: "Amortization",
			Table: &Table{
				Headers: []string{"Year", "Interest", "Principal", "Remaining"},
				Rows: lo.Map(r.Schedule, func(y domain.AmortizationYear, _ int) []string {
					return []string{strconv.Itoa(y.Year), FormatEuro(y.InterestPaid), FormatEuro(y.PrincipalPaid), FormatEuro(y.RemainingBalance)}
				}),
			},
		})
	}
	return sections
}

func donationSections(r *domain.DonationResult) []Section {
	s := r.Split
	return []Section{
		{
			Title: "Ownership split",
			Rows: []Row{
				{"Full value", FormatEuro(s.FullValue)},
				{"Donor age", strconv.Itoa(s.DonorAge)},
				{"Usufruct", FormatPercent(s.UsufructPercent) + " / " + FormatEuro(s.UsufructValue.Round(2))},
				{"Bare ownership", FormatPercent(s.BarePercent) + " / " + FormatEuro(s.BareValue.Round(2))},
			},
		},
		{
			Title: "Gift tax",
			Rows: []Row{
				{"Donated value", FormatEuro(r.DonatedValue.Round(2))},
				{"Taxable per donor and child", FormatEuro(r.TaxablePerPair.Round(2))},
				{"Tax per donor and child", FormatEuro(r.GiftTaxPerPair)},
				{"Total gift tax", FormatEuro(r.GiftTaxTotal)},
			},
		},
		{
			Title: "Sale",
			Rows: []Row{
				{"Direct sale gain", FormatEuro(r.DirectSaleGain.Round(2))},
				{"Direct sale tax", FormatEuro(r.DirectSaleTax)},
				{"Bare owners' gain", FormatEuro(r.BareOwnersGain.Round(2))},
				{"Usufructuary's gain", FormatEuro(r.UsufructuaryGain.Round(2))},
				{"Tax after donation", FormatEuro(r.PostDonationTax)},
				{"Donation route cost", FormatEuro(r.DonationRouteCost)},
				{"Saving", FormatEuro(r.Saving)},
				{"Recommended", string(r.Recommended)},
			},
		},
	}
}

func freelanceSections(r *domain.FreelanceResult) []Section {
	return []Section{{
		Title: "Status comparison",
		Rows: []Row{
			{"Activity", r.Activity},
			{"Turnover", FormatEuro(r.Turnover)},
			{"Best status", string(r.Best)},
		},
		Table: &Table{
			Headers: []string{"Status", "Eligible", "Taxable", "Social", "Corporate", "Dividends", "Income tax", "Net"},
			Rows: lo.Map(r.Outcomes, func(o domain.StatusOutcome, _ int) []string {
				return []string{
					string(o.Status), yesNo(o.Eligible), FormatEuro(o.TaxableIncome), FormatEuro(o.SocialContributions),
					FormatEuro(o.CorporateTax), FormatEuro(o.DividendTax), FormatEuro(o.IncomeTax), FormatEuro(o.NetIncome),
				}
			}),
		},
	}}
}

package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/tui/components"
	"github.com/fiscalite/taxsim/internal/tui/tuistyles"
)

const maxTableRows = 10

// ResultsModel represents the results display scene
type ResultsModel struct {
	outcome *domain.SimulationOutcome
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetOutcome updates the outcome to display
func (m *ResultsModel) SetOutcome(out *domain.SimulationOutcome) {
	m.outcome = out
}

// Outcome is the outcome on display, nil before the first run.
func (m *ResultsModel) Outcome() *domain.SimulationOutcome { return m.outcome }

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.outcome == nil {
		return renderNoResultsState()
	}
	sections, err := output.Summarize(m.outcome)
	if err != nil {
		return tuistyles.ErrorStyle.Render(err.Error())
	}

	parts := []string{
		tuistyles.SectionTitleStyle.Render(output.Title(m.outcome)),
		"",
		components.MetricGrid(KeyMetrics(m.outcome), 3),
	}
	for _, s := range sections {
		parts = append(parts, renderSection(s))
	}
	parts = append(parts, "", renderResultsHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderNoResultsState() string {
	return `No results to display.

Fill in a simulator form first.

Press ESC to go back.`
}

// KeyMetrics picks the headline cards of an outcome.
func KeyMetrics(out *domain.SimulationOutcome) []*components.MetricCard {
	euro := tuistyles.FormatEuro
	switch {
	case out.IncomeTax != nil:
		r := out.IncomeTax
		return []*components.MetricCard{
			components.NewMetricCard("Total tax", euro(r.TotalTax)),
			components.NewMetricCard("Marginal rate", output.FormatPercent(r.MarginalRatePercent)),
			components.NewMetricCard("Average rate", output.FormatPercent(r.AverageRatePercent)).
				WithDescription(r.Quotient.Shares.String() + " shares"),
		}
	case out.RealEstateGain != nil:
		r := out.RealEstateGain
		return []*components.MetricCard{
			components.NewMetricCard("Total tax", euro(r.TotalTax)).WithDescription(string(r.Status)),
			components.NewMetricCard("Net proceeds", euro(r.NetProceeds)),
			components.NewMetricCard("Holding years", fmt.Sprintf("%d", r.Abatements.HoldingYears)),
		}
	case out.SecuritiesGain != nil:
		return regimeCards(&out.SecuritiesGain.Regimes)
	case out.Regime != nil:
		return regimeCards(out.Regime)
	case out.Acquisition != nil:
		r := out.Acquisition
		return []*components.MetricCard{
			components.NewMetricCard("Total cost", euro(r.TotalCost)),
			components.NewMetricCard("Monthly total", euro(r.MonthlyTotal)),
			components.NewMetricCard("Debt ratio", output.FormatPercent(r.DebtRatioPercent)).
				WithTrend(r.WithinDebtCeiling, ceilingLabel(r.WithinDebtCeiling)),
		}
	case out.Donation != nil:
		r := out.Donation
		return []*components.MetricCard{
			components.NewMetricCard("Recommended", string(r.Recommended)),
			savingCard(r.Saving),
			components.NewMetricCard("Gift tax", euro(r.GiftTaxTotal)),
		}
	case out.Freelance != nil:
		r := out.Freelance
		cards := []*components.MetricCard{}
		for _, o := range r.Outcomes {
			c := components.NewMetricCard(string(o.Status), euro(o.NetIncome))
			switch {
			case !o.Eligible:
				c = components.NewMetricCard(string(o.Status), "n/a").WithDescription(o.Reason)
			case o.Status == r.Best:
				c.WithTrend(true, "best")
			}
			cards = append(cards, c)
		}
		return cards
	}
	return nil
}

func regimeCards(c *domain.RegimeComparison) []*components.MetricCard {
	return []*components.MetricCard{
		components.NewMetricCard("Chosen regime", string(c.ChosenRegime)),
		components.NewMetricCard("Amount due", tuistyles.FormatEuro(c.ChosenAmount)),
		savingCard(c.Saving),
	}
}

func savingCard(saving decimal.Decimal) *components.MetricCard {
	c := components.NewMetricCard("Saving", tuistyles.FormatEuro(saving))
	if saving.IsPositive() {
		c.WithTrend(true, "vs the other option")
	}
	return c
}

func ceilingLabel(ok bool) string {
	if ok {
		return "within ceiling"
	}
	return "above ceiling"
}

func renderSection(s output.Section) string {
	var b strings.Builder
	b.WriteString(tuistyles.SectionTitleStyle.Render(s.Title))
	b.WriteString("\n")
	for _, r := range s.Rows {
		b.WriteString(tuistyles.MetricLabelStyle.Width(30).Render(r.Label))
		b.WriteString(r.Value)
		b.WriteString("\n")
	}
	if s.Table != nil {
		b.WriteString(renderTable(s.Table))
	}
	return b.String()
}

func renderTable(t *output.Table) string {
	widths := make([]int, len(t.Headers))
	rows := t.Rows
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	for _, row := range append([][]string{t.Headers}, rows...) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	line := func(cells []string) string {
		out := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				out = append(out, lipgloss.NewStyle().Width(widths[i]).Render(cell))
			}
		}
		return strings.Join(out, "  ")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(line(t.Headers)))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(line(row))
		b.WriteString("\n")
	}
	if len(t.Rows) > maxTableRows {
		b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("... and %d more rows", len(t.Rows)-maxTableRows)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderResultsHelp() string {
	return tuistyles.HelpDescStyle.Render("esc back to the form • h home • q quit")
}

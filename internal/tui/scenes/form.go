package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/tui/tuimsg"
	"github.com/fiscalite/taxsim/internal/tui/tuistyles"
)

// Field describes one input of a simulator form.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
}

// FormValues reads the submitted text of a form by field key.
type FormValues map[string]string

// Decimal parses a euro amount or rate; blank reads as zero.
func (v FormValues) Decimal(k string) (decimal.Decimal, error) {
	s := strings.TrimSpace(v[k])
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(k, "is not a number: %q", v[k])
	}
	return d, nil
}

// Int parses a whole number; blank reads as zero.
func (v FormValues) Int(k string) (int, error) {
	s := strings.TrimSpace(v[k])
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(k, "is not a whole number: %q", v[k])
	}
	return n, nil
}

// Bool reads y/yes/true/o/oui as true.
func (v FormValues) Bool(k string) bool {
	switch strings.ToLower(strings.TrimSpace(v[k])) {
	case "y", "yes", "true", "1", "o", "oui":
		return true
	}
	return false
}

// Household reads the shared household fields.
func (v FormValues) Household() (domain.HouseholdProfile, error) {
	status := domain.MaritalStatus(strings.ToLower(strings.TrimSpace(v["marital_status"])))
	if status == "" {
		status = domain.Single
	}
	deps, err := v.Int("dependent_count")
	if err != nil {
		return domain.HouseholdProfile{}, err
	}
	return domain.HouseholdProfile{
		MaritalStatus:  status,
		DependentCount: deps,
		HasDisability:  v.Bool("has_disability"),
		SingleParent:   v.Bool("single_parent"),
	}, nil
}

// BuildFunc turns form values into a request.
type BuildFunc func(v FormValues) (domain.SimulationRequest, error)

// FormModel is a vertical list of text inputs for one simulator.
type FormModel struct {
	Kind    domain.SimulationKind
	Title   string
	fields  []Field
	inputs  []textinput.Model
	focus   int
	build   BuildFunc
	taxYear int
	err     error
	width   int
	height  int
}

var (
	formNextKey   = key.NewBinding(key.WithKeys("tab", "down"))
	formPrevKey   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	formSubmitKey = key.NewBinding(key.WithKeys("enter"))
)

// NewFormModel creates a form; the first field has focus.
func NewFormModel(kind domain.SimulationKind, title string, fields []Field, build BuildFunc) *FormModel {
	m := &FormModel{Kind: kind, Title: title, fields: fields, build: build}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 20
		ti.Width = 20
		ti.SetValue(f.Default)
		if i == 0 {
			ti.Focus()
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

// SetTaxYear sets the year stamped on submitted requests, 0 for the latest.
func (m *FormModel) SetTaxYear(year int) { m.taxYear = year }

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the index of the focused field.
func (m *FormModel) Focused() int { return m.focus }

// SetValue replaces the text of a field.
func (m *FormModel) SetValue(fieldKey, value string) {
	for i, f := range m.fields {
		if f.Key == fieldKey {
			m.inputs[i].SetValue(value)
			return
		}
	}
}

// Values returns the current text of every field.
func (m *FormModel) Values() FormValues {
	v := FormValues{}
	for i, f := range m.fields {
		v[f.Key] = m.inputs[i].Value()
	}
	return v
}

// Request builds the request from the current values.
func (m *FormModel) Request() (domain.SimulationRequest, error) {
	req, err := m.build(m.Values())
	if err != nil {
		return domain.SimulationRequest{}, err
	}
	req.Simulator = m.Kind
	req.TaxYear = m.taxYear
	return req, nil
}

// Err is the last submission error.
func (m *FormModel) Err() error { return m.err }

// Init starts the cursor blink.
func (m *FormModel) Init() tea.Cmd { return textinput.Blink }

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, formNextKey):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, formPrevKey):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, formSubmitKey):
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) submit() tea.Cmd {
	req, err := m.Request()
	m.err = err
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return tuimsg.FormSubmittedMsg{Request: req}
	}
}

// View renders the form scene
func (m *FormModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.SectionTitleStyle.Render(m.Title))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := tuistyles.FieldLabelStyle.Render(f.Label)
		if i == m.focus {
			label = tuistyles.FocusedFieldLabelStyle.Render(f.Label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(tuistyles.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.HelpDescStyle.Render(fmt.Sprintf("%s next • %s previous • %s on the last field runs • %s back",
		tuistyles.HelpKeyStyle.Render("tab"), tuistyles.HelpKeyStyle.Render("shift+tab"),
		tuistyles.HelpKeyStyle.Render("enter"), tuistyles.HelpKeyStyle.Render("esc"))))
	return tuistyles.BorderStyle.Render(b.String())
}

var householdFields = []Field{
	{Key: "marital_status", Label: "Marital status", Placeholder: "single or married", Default: "single"},
	{Key: "dependent_count", Label: "Dependent children", Placeholder: "0", Default: "0"},
	{Key: "single_parent", Label: "Single parent (y/n)", Placeholder: "n"},
	{Key: "has_disability", Label: "Disability (y/n)", Placeholder: "n"},
}

func withHousehold(fields ...Field) []Field {
	return append(append([]Field{}, householdFields...), fields...)
}

// NewIncomeTaxForm builds the income-tax form.
func NewIncomeTaxForm() *FormModel {
	fields := withHousehold(
		Field{Key: "salary_income", Label: "Salary income", Placeholder: "euros"},
		Field{Key: "other_income", Label: "Other income", Placeholder: "euros"},
		Field{Key: "deductible_charges", Label: "Deductible charges", Placeholder: "euros"},
	)
	return NewFormModel(domain.KindIncomeTax, "Income tax", fields, func(v FormValues) (domain.SimulationRequest, error) {
		h, err := v.Household()
		if err != nil {
			return domain.SimulationRequest{}, err
		}
		in := &domain.IncomeTaxInput{Household: h}
		if in.SalaryIncome, err = v.Decimal("salary_income"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.OtherIncome, err = v.Decimal("other_income"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.DeductibleCharges, err = v.Decimal("deductible_charges"); err != nil {
			return domain.SimulationRequest{}, err
		}
		return domain.SimulationRequest{IncomeTax: in}, nil
	})
}

// NewRealEstateForm builds the real-estate capital gain form.
func NewRealEstateForm() *FormModel {
	fields := []Field{
		{Key: "acquisition_value", Label: "Purchase price", Placeholder: "euros"},
		{Key: "disposal_value", Label: "Sale price", Placeholder: "euros"},
		{Key: "holding_years", Label: "Years held", Placeholder: "0"},
		{Key: "acquisition_costs", Label: "Purchase costs", Placeholder: "euros, blank for flat"},
		{Key: "deductible_works", Label: "Works", Placeholder: "euros, blank for flat"},
		{Key: "main_residence", Label: "Main residence (y/n)", Placeholder: "n"},
	}
	return NewFormModel(domain.KindRealEstateGain, "Real-estate capital gain", fields, func(v FormValues) (domain.SimulationRequest, error) {
		var g domain.GainInput
		var err error
		if g.AcquisitionValue, err = v.Decimal("acquisition_value"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if g.DisposalValue, err = v.Decimal("disposal_value"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if g.HoldingYears, err = v.Int("holding_years"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if g.AcquisitionCosts, err = v.Decimal("acquisition_costs"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if g.DeductibleWorks, err = v.Decimal("deductible_works"); err != nil {
			return domain.SimulationRequest{}, err
		}
		in := &domain.RealEstateGainInput{
			Gain:                 g,
			FlatAcquisitionCosts: strings.TrimSpace(v["acquisition_costs"]) == "",
			FlatWorks:            strings.TrimSpace(v["deductible_works"]) == "",
			MainResidence:        v.Bool("main_residence"),
		}
		return domain.SimulationRequest{RealEstateGain: in}, nil
	})
}

// NewRegimeForm builds the flat-tax versus progressive-scale form.
func NewRegimeForm() *FormModel {
	fields := withHousehold(
		Field{Key: "gain", Label: "Capital income", Placeholder: "euros"},
		Field{Key: "other_income", Label: "Other taxable income", Placeholder: "euros"},
	)
	return NewFormModel(domain.KindRegime, "Flat tax or progressive scale", fields, func(v FormValues) (domain.SimulationRequest, error) {
		h, err := v.Household()
		if err != nil {
			return domain.SimulationRequest{}, err
		}
		in := &domain.RegimeInput{Household: h}
		if in.Gain, err = v.Decimal("gain"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.OtherIncome, err = v.Decimal("other_income"); err != nil {
			return domain.SimulationRequest{}, err
		}
		return domain.SimulationRequest{Regime: in}, nil
	})
}

// NewFreelanceForm builds the freelance status comparison form.
func NewFreelanceForm() *FormModel {
	fields := withHousehold(
		Field{Key: "activity", Label: "Activity", Placeholder: "services_bnc, services_bic, sales", Default: domain.ActivityServicesBNC},
		Field{Key: "turnover", Label: "Turnover", Placeholder: "euros"},
		Field{Key: "expenses", Label: "Expenses", Placeholder: "euros"},
		Field{Key: "salary_percent", Label: "Company salary share %", Placeholder: "0-100", Default: "50"},
		Field{Key: "other_income", Label: "Other household income", Placeholder: "euros"},
	)
	return NewFormModel(domain.KindFreelance, "Freelance status comparison", fields, func(v FormValues) (domain.SimulationRequest, error) {
		h, err := v.Household()
		if err != nil {
			return domain.SimulationRequest{}, err
		}
		in := &domain.FreelanceInput{Activity: strings.TrimSpace(v["activity"]), Household: h}
		if in.Turnover, err = v.Decimal("turnover"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.Expenses, err = v.Decimal("expenses"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.SalaryPercent, err = v.Decimal("salary_percent"); err != nil {
			return domain.SimulationRequest{}, err
		}
		if in.OtherIncome, err = v.Decimal("other_income"); err != nil {
			return domain.SimulationRequest{}, err
		}
		return domain.SimulationRequest{Freelance: in}, nil
	})
}

// NewForm returns the form of a simulator, or nil when the TUI has none.
func NewForm(kind domain.SimulationKind) *FormModel {
	switch kind {
	case domain.KindIncomeTax:
		return NewIncomeTaxForm()
	case domain.KindRealEstateGain:
		return NewRealEstateForm()
	case domain.KindRegime:
		return NewRegimeForm()
	case domain.KindFreelance:
		return NewFreelanceForm()
	}
	return nil
}

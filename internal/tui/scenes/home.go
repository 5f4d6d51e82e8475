package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/tui/tuimsg"
	"github.com/fiscalite/taxsim/internal/tui/tuistyles"
)

// MenuItem is one simulator offered on the home screen.
type MenuItem struct {
	Kind        domain.SimulationKind
	Title       string
	Description string
}

// DefaultMenu lists the simulators that have a form.
var DefaultMenu = []MenuItem{
	{domain.KindIncomeTax, "Income tax", "Household quotient, décote and surcharge"},
	{domain.KindRealEstateGain, "Real-estate capital gain", "Holding abatements and surtax on a property sale"},
	{domain.KindRegime, "Flat tax or progressive scale", "Which option costs less on capital income"},
	{domain.KindFreelance, "Freelance status", "Micro, individual or company"},
}

var (
	menuUpKey     = key.NewBinding(key.WithKeys("up", "k"))
	menuDownKey   = key.NewBinding(key.WithKeys("down", "j"))
	menuSelectKey = key.NewBinding(key.WithKeys("enter", " "))
)

// HomeModel is the simulator menu.
type HomeModel struct {
	items   []MenuItem
	cursor int
	width  int
	height int
}

// NewHomeModel creates the menu over DefaultMenu.
func NewHomeModel() *HomeModel {
	return &HomeModel{items: DefaultMenu}
}

// SetSize updates the scene dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected is the item under the cursor.
func (m *HomeModel) Selected() MenuItem { return m.items[m.cursor] }

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, menuUpKey):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, menuDownKey):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, menuSelectKey):
		kind := m.items[m.cursor].Kind
		return m, func() tea.Msg { return tuimsg.FormSelectedMsg{Kind: kind} }
	}
	return m, nil
}

// View renders the home scene
func (m *HomeModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.SectionTitleStyle.Render("Choose a simulator"))
	b.WriteString("\n\n")
	for i, item := range m.items {
		cursor := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.cursor {
			cursor = "> "
			style = tuistyles.SelectedItemStyle
		}
		b.WriteString(cursor + style.Render(item.Title) + "\n")
		b.WriteString("    " + tuistyles.SubtitleStyle.Render(item.Description) + "\n")
	}
	return tuistyles.BorderStyle.Render(b.String())
}

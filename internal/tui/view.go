package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneForm:
		if m.formModel != nil {
			content = m.formModel.View()
		}
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TaxSim - French tax simulator")
	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneForm && m.formModel != nil {
		breadcrumb += " / " + m.formModel.Title
	}
	if m.taxYear > 0 {
		breadcrumb += fmt.Sprintf(" (tax year %d)", m.taxYear)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = []string{
			formatShortcut("tab", "next field"),
			formatShortcut("enter", "run"),
			formatShortcut("esc", "back"),
			formatShortcut("ctrl+c", "quit"),
		}
	} else {
		shortcuts = []string{
			formatShortcut("h", "home"),
			formatShortcut("esc", "back"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	rows := [][2]string{
		{"↑/↓ enter", "pick a simulator on the home screen"},
		{"tab shift+tab", "move between form fields"},
		{"enter", "next field, runs the simulation on the last one"},
		{"esc", "back to the form or the home screen"},
		{"h", "home (outside forms)"},
		{"q ctrl+c", "quit (q outside forms)"},
	}
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Amounts are euros; a comma or a dot separates cents. y/n fields accept y, yes, o or oui."))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(HelpKeyStyle.Width(16).Render(r[0]))
		b.WriteString(HelpDescStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return BorderStyle.Render(b.String())
}

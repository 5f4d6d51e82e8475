package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fiscalite/taxsim/internal/tui/scenes"
	"github.com/fiscalite/taxsim/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		if m.formModel != nil {
			m.formModel.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.FormSelectedMsg:
		form := scenes.NewForm(msg.Kind)
		if form == nil {
			return m, nil
		}
		form.SetTaxYear(m.taxYear)
		form.SetSize(m.width, m.height)
		m.formModel = form
		m.previousScene = m.currentScene
		m.currentScene = SceneForm
		return m, form.Init()

	case tuimsg.FormSubmittedMsg:
		m.loading = true
		m.loadingMessage = "Calculating " + string(msg.Request.Simulator) + "..."
		return m, runSimulationCmd(m.engine, msg.Request)

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetOutcome(msg.Outcome)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if msg.String() == "esc" {
		return m.back(), nil
	}

	// Letter shortcuts would swallow typed text in the form.
	if m.currentScene != SceneForm {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
			return m, nil
		case "h":
			m.previousScene = m.currentScene
			m.currentScene = SceneHome
			return m, nil
		}
	}

	return m.updateCurrentScene(msg)
}

// back leaves results for their form and everything else for home
func (m Model) back() Model {
	switch m.currentScene {
	case SceneResults:
		if m.formModel != nil {
			m.currentScene = SceneForm
			return m
		}
		m.currentScene = SceneHome
	case SceneHelp:
		m.currentScene = m.previousScene
	default:
		m.currentScene = SceneHome
	}
	return m
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneForm:
		if m.formModel != nil {
			m.formModel, cmd = m.formModel.Update(msg)
		}
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}

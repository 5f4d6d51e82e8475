package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/tui/scenes"
	"github.com/fiscalite/taxsim/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine  *calculation.CalculationEngine
	taxYear int

	homeModel    *scenes.HomeModel
	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates the application model. taxYear 0 uses the latest table.
func NewModel(engine *calculation.CalculationEngine, taxYear int) Model {
	return Model{
		currentScene: SceneHome,
		engine:       engine,
		taxYear:      taxYear,
		homeModel:    scenes.NewHomeModel(),
		resultsModel: scenes.NewResultsModel(),
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentScene is the scene on display.
func (m Model) CurrentScene() Scene { return m.currentScene }

// Err is the error on display, if any.
func (m Model) Err() error { return m.err }

// runSimulationCmd runs a request off the update loop
func runSimulationCmd(engine *calculation.CalculationEngine, req domain.SimulationRequest) tea.Cmd {
	return func() tea.Msg {
		out, err := engine.Run(context.Background(), req)
		return tuimsg.CalculationCompleteMsg{Outcome: out, Err: err}
	}
}

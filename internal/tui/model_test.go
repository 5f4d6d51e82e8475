package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/tui/tuimsg"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine, err := calculation.NewCalculationEngine()
	require.NoError(t, err)
	return NewModel(engine, 2025)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Home", SceneHome.String())
	assert.Equal(t, "Form", SceneForm.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}

func TestFormToResultsFlow(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tuimsg.FormSelectedMsg{Kind: domain.KindRegime})
	assert.Equal(t, SceneForm, m.CurrentScene())
	m.formModel.SetValue("gain", "10000")

	req, err := m.formModel.Request()
	require.NoError(t, err)
	assert.Equal(t, 2025, req.TaxYear)

	m, cmd := update(t, m, tuimsg.FormSubmittedMsg{Request: req})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Calculating")

	m, _ = update(t, m, cmd())
	assert.Equal(t, SceneResults, m.CurrentScene())
	assert.Contains(t, m.View(), "1 720 €")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.CurrentScene())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneHome, m.CurrentScene())
}

func TestQDoesNotQuitInsideForm(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tuimsg.FormSelectedMsg{Kind: domain.KindIncomeTax})
	m.formModel.SetValue("marital_status", "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, SceneForm, m.CurrentScene())
	assert.Equal(t, "q", m.formModel.Values()["marital_status"])
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCalculationErrorIsShownAndDismissed(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tuimsg.FormSelectedMsg{Kind: domain.KindRealEstateGain})
	req, err := m.formModel.Request()
	require.NoError(t, err)

	m, cmd := update(t, m, tuimsg.FormSubmittedMsg{Request: req})
	m, _ = update(t, m, cmd())
	require.Error(t, m.Err())
	assert.True(t, errors.Is(m.Err(), domain.ErrValidation))
	assert.Contains(t, m.View(), "Error:")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NoError(t, m.Err())
	assert.Equal(t, SceneForm, m.CurrentScene())
}

func TestHelpAndWindowSize(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "move between form fields")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneHome, m.CurrentScene())
}

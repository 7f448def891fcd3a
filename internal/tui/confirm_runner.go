package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel wraps Confirm as a standalone tea.Model.
type confirmModel struct {
	dialog Confirm
	result bool
	done   bool
}

func (m confirmModel) Init() tea.Cmd {
	return m.dialog.Init()
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(ConfirmResultMsg); ok {
		m.result = result.Confirmed
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return m.dialog.View()
}

// RunConfirm shows a yes/no dialog on the terminal and returns the
// operator's answer.
func RunConfirm(message string, def bool) (bool, error) {
	model, err := tea.NewProgram(confirmModel{dialog: NewConfirm(message, def)}).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation dialog failed: %w", err)
	}
	cm, ok := model.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected dialog model type %T", model)
	}
	return cm.result, nil
}

// DialogPrompter implements ports.Prompter using interactive dialogs.
type DialogPrompter struct{}

// Confirm shows a yes/no dialog and returns the answer.
func (DialogPrompter) Confirm(question string, def bool) (bool, error) {
	return RunConfirm(question, def)
}

// Ask collects a free-form answer. Dialog prompting only supports
// yes/no questions, so Ask is unsupported.
func (DialogPrompter) Ask(_ string) (string, error) {
	return "", fmt.Errorf("free-form prompts are not supported by the dialog prompter")
}

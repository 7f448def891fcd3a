package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func confirmResult(t *testing.T, cmd tea.Cmd) ConfirmResultMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ConfirmResultMsg)
	require.True(t, ok, "expected a ConfirmResultMsg")
	return msg
}

func TestConfirm_DefaultFocus(t *testing.T) {
	assert.True(t, NewConfirm("Proceed?", true).Focused())
	assert.False(t, NewConfirm("Proceed?", false).Focused())
}

func TestConfirm_ArrowKeysMoveFocus(t *testing.T) {
	c := NewConfirm("Proceed?", true)

	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.False(t, c.Focused())

	c, cmd = c.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
	assert.True(t, c.Focused())
}

func TestConfirm_EnterSelectsFocusedButton(t *testing.T) {
	c := NewConfirm("Proceed?", false)

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, confirmResult(t, cmd).Confirmed)

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyLeft})
	_, cmd = c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, confirmResult(t, cmd).Confirmed)
}

func TestConfirm_ShortcutKeys(t *testing.T) {
	c := NewConfirm("Proceed?", false)

	_, cmd := c.Update(keyRune('y'))
	assert.True(t, confirmResult(t, cmd).Confirmed)

	_, cmd = c.Update(keyRune('n'))
	assert.False(t, confirmResult(t, cmd).Confirmed)

	_, cmd = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, confirmResult(t, cmd).Confirmed)
}

func TestConfirm_IgnoresOtherMessages(t *testing.T) {
	c := NewConfirm("Proceed?", true)

	c, cmd := c.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.True(t, c.Focused())
}

func TestConfirm_ViewShowsMessageAndButtons(t *testing.T) {
	view := NewConfirm("Install Docker for containerized workloads?", false).View()

	assert.Contains(t, view, "Install Docker")
	assert.Contains(t, view, "Yes")
	assert.Contains(t, view, "No")
}

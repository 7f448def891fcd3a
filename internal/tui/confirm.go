package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmResultMsg is sent when the user confirms or cancels.
type ConfirmResultMsg struct {
	Confirmed bool
}

// Confirm is a yes/no confirmation dialog.
type Confirm struct {
	message  string
	yesLabel string
	noLabel  string
	focused  bool // true = yes, false = no
	width    int
	keys     KeyMap
	styles   Styles
}

// NewConfirm creates a new confirmation dialog. The default answer
// determines which button starts focused.
func NewConfirm(message string, def bool) Confirm {
	return Confirm{
		message:  message,
		yesLabel: "Yes",
		noLabel:  "No",
		focused:  def,
		width:    48,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
	}
}

// Message returns the confirmation message.
func (c Confirm) Message() string {
	return c.message
}

// Focused returns true if yes is focused, false if no is focused.
func (c Confirm) Focused() bool {
	return c.focused
}

// WithWidth sets the dialog width.
func (c Confirm) WithWidth(width int) Confirm {
	c.width = width
	return c
}

// Init implements tea.Model.
func (c Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch {
	case key.Matches(keyMsg, c.keys.Left):
		c.focused = true
	case key.Matches(keyMsg, c.keys.Right):
		c.focused = false
	case key.Matches(keyMsg, c.keys.Select):
		return c, c.confirmCmd(c.focused)
	case key.Matches(keyMsg, c.keys.Accept):
		return c, c.confirmCmd(true)
	case key.Matches(keyMsg, c.keys.Reject):
		return c, c.confirmCmd(false)
	case key.Matches(keyMsg, c.keys.Cancel):
		return c, c.confirmCmd(false)
	}
	return c, nil
}

func (c Confirm) confirmCmd(confirmed bool) tea.Cmd {
	return func() tea.Msg {
		return ConfirmResultMsg{Confirmed: confirmed}
	}
}

// View renders the confirmation dialog.
func (c Confirm) View() string {
	message := c.styles.Subtitle.Width(c.width).Render(c.message)

	yesStyle := c.styles.Button
	noStyle := c.styles.Button
	if c.focused {
		yesStyle = c.styles.ButtonActive
	} else {
		noStyle = c.styles.ButtonActive
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render(c.yesLabel), "  ", noStyle.Render(c.noLabel))
	buttonRow := lipgloss.NewStyle().Width(c.width).Align(lipgloss.Center).Render(buttons)

	return lipgloss.JoinVertical(lipgloss.Left, message, "", buttonRow)
}

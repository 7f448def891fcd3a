package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/groundwork-sh/groundwork/internal/validation"
)

// wizardField identifies the active input in the site wizard.
type wizardField int

const (
	fieldDomain wizardField = iota
	fieldPort
)

// SiteWizardResult holds the values collected by the site wizard.
type SiteWizardResult struct {
	Domain    string
	Port      int
	Cancelled bool
}

// SiteWizard collects a domain name and an upstream port interactively.
type SiteWizard struct {
	field    wizardField
	domain   textinput.Model
	port     textinput.Model
	result   SiteWizardResult
	fieldErr string
	done     bool
	keys     KeyMap
	styles   Styles
}

// NewSiteWizard creates a site wizard. A non-empty domain or port
// pre-fills the corresponding input.
func NewSiteWizard(domain, port string) SiteWizard {
	di := textinput.New()
	di.Placeholder = "example.com"
	di.SetValue(domain)
	di.Focus()
	di.CharLimit = 253
	di.Width = 40

	pi := textinput.New()
	pi.Placeholder = "3000"
	pi.SetValue(port)
	pi.CharLimit = 5
	pi.Width = 8

	return SiteWizard{
		field:  fieldDomain,
		domain: di,
		port:   pi,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
}

// Result returns the collected values once the wizard is done.
func (w SiteWizard) Result() SiteWizardResult {
	return w.result
}

// Done reports whether the wizard has finished.
func (w SiteWizard) Done() bool {
	return w.done
}

// Init implements tea.Model.
func (w SiteWizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (w SiteWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, w.keys.Quit), key.Matches(keyMsg, w.keys.Cancel):
			w.result.Cancelled = true
			w.done = true
			return w, tea.Quit
		case key.Matches(keyMsg, w.keys.Select):
			return w.advance()
		}
	}

	var cmd tea.Cmd
	switch w.field {
	case fieldDomain:
		w.domain, cmd = w.domain.Update(msg)
	case fieldPort:
		w.port, cmd = w.port.Update(msg)
	}
	return w, cmd
}

// advance validates the active field and moves to the next one.
func (w SiteWizard) advance() (tea.Model, tea.Cmd) {
	switch w.field {
	case fieldDomain:
		if err := validation.ValidateDomain(w.domain.Value()); err != nil {
			w.fieldErr = err.Error()
			return w, nil
		}
		w.result.Domain = w.domain.Value()
		w.fieldErr = ""
		w.field = fieldPort
		w.domain.Blur()
		return w, w.port.Focus()
	case fieldPort:
		port, err := validation.ParsePort(w.port.Value())
		if err != nil {
			w.fieldErr = err.Error()
			return w, nil
		}
		w.result.Port = port
		w.fieldErr = ""
		w.done = true
		return w, tea.Quit
	}
	return w, nil
}

// View renders the wizard.
func (w SiteWizard) View() string {
	title := w.styles.Title.Render("Register a site")

	var active string
	switch w.field {
	case fieldDomain:
		active = fmt.Sprintf("Domain name:\n%s", w.domain.View())
	case fieldPort:
		active = fmt.Sprintf("Upstream port for %s:\n%s", w.result.Domain, w.port.View())
	}

	lines := []string{title, active}
	if w.fieldErr != "" {
		lines = append(lines, w.styles.Error.Render(w.fieldErr))
	}
	lines = append(lines, "", w.styles.Help.Render("enter continue, esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RunSiteWizard runs the site wizard on the terminal and returns the
// collected values.
func RunSiteWizard(domain, port string) (SiteWizardResult, error) {
	model, err := tea.NewProgram(NewSiteWizard(domain, port)).Run()
	if err != nil {
		return SiteWizardResult{}, fmt.Errorf("site wizard failed: %w", err)
	}
	wizard, ok := model.(SiteWizard)
	if !ok {
		return SiteWizardResult{}, fmt.Errorf("unexpected wizard model type %T", model)
	}
	return wizard.Result(), nil
}

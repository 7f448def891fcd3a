// Package prompt provides interactive input adapters.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

// LinePrompter reads answers line by line from an input stream. It is the
// plain fallback used when stdout is not a terminal or --yes is not set.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and writing
// prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question. Empty input returns def.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def, nil
	}
	return answer == "y" || answer == "yes", nil
}

// Ask prompts for a line of input and returns it trimmed.
func (p *LinePrompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AutoApprove answers yes to every confirmation without prompting.
// Free-form questions return the empty string.
type AutoApprove struct{}

// Confirm always returns true.
func (AutoApprove) Confirm(_ string, _ bool) (bool, error) {
	return true, nil
}

// Ask returns an empty string.
func (AutoApprove) Ask(_ string) (string, error) {
	return "", nil
}

// Ensure implementations satisfy ports.Prompter.
var (
	_ ports.Prompter = (*LinePrompter)(nil)
	_ ports.Prompter = AutoApprove{}
)

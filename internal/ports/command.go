// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"fmt"
	"strings"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// String returns the full command line.
func (c CommandCall) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}

// MockCommandRunner is a scripted CommandRunner for tests. Results are
// registered per command line; unregistered invocations return an error.
type MockCommandRunner struct {
	results map[string]CommandResult
	calls   []CommandCall
}

// NewMockCommandRunner creates a new MockCommandRunner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		results: make(map[string]CommandResult),
	}
}

// AddResult registers a result for the given command and arguments.
func (m *MockCommandRunner) AddResult(command string, args []string, result CommandResult) {
	m.results[CommandCall{Command: command, Args: args}.String()] = result
}

// Run returns the registered result for the command line.
func (m *MockCommandRunner) Run(_ context.Context, command string, args ...string) (CommandResult, error) {
	call := CommandCall{Command: command, Args: args}
	m.calls = append(m.calls, call)

	result, ok := m.results[call.String()]
	if !ok {
		return CommandResult{}, fmt.Errorf("no result registered for %q", call.String())
	}
	return result, nil
}

// Calls returns all recorded invocations in order.
func (m *MockCommandRunner) Calls() []CommandCall {
	return m.calls
}

// Ensure MockCommandRunner implements CommandRunner.
var _ CommandRunner = (*MockCommandRunner)(nil)

package ports

// Prompter requests interactive input from the operator. All prompts are
// synchronous; implementations block until an answer is available.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer.
	// def is returned when the operator just presses enter.
	Confirm(question string, def bool) (bool, error)

	// Ask prompts for a free-form line of input.
	Ask(question string) (string, error)
}

// ScriptedPrompter is a Prompter for tests that replays canned answers.
type ScriptedPrompter struct {
	confirms  []bool
	answers   []string
	Questions []string
}

// NewScriptedPrompter creates a prompter that returns the given confirm
// answers and text answers in order.
func NewScriptedPrompter(confirms []bool, answers []string) *ScriptedPrompter {
	return &ScriptedPrompter{confirms: confirms, answers: answers}
}

// Confirm returns the next scripted confirmation, or the default when the
// script is exhausted.
func (p *ScriptedPrompter) Confirm(question string, def bool) (bool, error) {
	p.Questions = append(p.Questions, question)
	if len(p.confirms) == 0 {
		return def, nil
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

// Ask returns the next scripted answer, or an empty string when exhausted.
func (p *ScriptedPrompter) Ask(question string) (string, error) {
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Ensure ScriptedPrompter implements Prompter.
var _ Prompter = (*ScriptedPrompter)(nil)

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{name: "yes", input: "y\n", def: false, want: true},
		{name: "yes word", input: "yes\n", def: false, want: true},
		{name: "no", input: "n\n", def: true, want: false},
		{name: "empty uses default true", input: "\n", def: true, want: true},
		{name: "empty uses default false", input: "\n", def: false, want: false},
		{name: "whitespace uses default", input: "   \n", def: true, want: true},
		{name: "uppercase", input: "Y\n", def: false, want: true},
		{name: "garbage is no", input: "maybe\n", def: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Proceed?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinePrompter_ConfirmHint(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("\n"), &out)

	_, err := p.Confirm("Proceed?", false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[y/N]")

	out.Reset()
	p = NewLinePrompter(strings.NewReader("\n"), &out)
	_, err = p.Confirm("Proceed?", true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Y/n]")
}

func TestLinePrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  example.com  \n"), &out)

	got, err := p.Ask("Domain")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)
	assert.Contains(t, out.String(), "Domain: ")
}

func TestLinePrompter_ClosedInput(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader(""), &out)

	_, err := p.Confirm("Proceed?", true)
	assert.Error(t, err)
}

func TestAutoApprove(t *testing.T) {
	got, err := AutoApprove{}.Confirm("Proceed?", false)
	require.NoError(t, err)
	assert.True(t, got)

	answer, err := AutoApprove{}.Ask("Domain")
	require.NoError(t, err)
	assert.Empty(t, answer)
}

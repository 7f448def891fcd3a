package step

import (
	"errors"
	"regexp"
	"strings"
)

// StepID names a step as provider:action:resource, e.g. "apt:install:nginx"
// or "ufw:allow:443/tcp". The provider segment groups steps by the tool
// they drive; the rest identifies what that tool acts on.
type StepID struct {
	value string
}

// Errors for StepID validation.
var (
	ErrEmptyStepID   = errors.New("step ID cannot be empty")
	ErrInvalidStepID = errors.New("step ID format invalid: must be alphanumeric with colons, hyphens, underscores, dots, pluses, or slashes")
)

// stepIDPattern constrains IDs to colon-separated segments. Each segment
// starts alphanumeric; dots, slashes, and pluses cover resources like
// port ranges ("3000-3010/tcp") and package names ("g++").
var stepIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.+/-]*(?::[a-zA-Z0-9][a-zA-Z0-9_.+/-]*)*$`)

// NewStepID creates a StepID, rejecting anything outside the
// provider:action:resource shape.
func NewStepID(value string) (StepID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StepID{}, ErrEmptyStepID
	}

	if !stepIDPattern.MatchString(trimmed) {
		return StepID{}, ErrInvalidStepID
	}

	return StepID{value: trimmed}, nil
}

// MustNewStepID creates a StepID from a literal and panics on a bad one.
// Reserve it for IDs fixed at compile time; anything built from input
// goes through NewStepID.
func MustNewStepID(value string) StepID {
	id, err := NewStepID(value)
	if err != nil {
		panic("invalid step ID: " + value + ": " + err.Error())
	}
	return id
}

// String returns the string representation.
func (id StepID) String() string {
	return id.value
}

// Equals checks equality with another StepID.
func (id StepID) Equals(other StepID) bool {
	return id.value == other.value
}

// Provider extracts the provider name (first segment).
func (id StepID) Provider() string {
	parts := strings.SplitN(id.value, ":", 2)
	return parts[0]
}

// IsZero returns true if this is a zero-value StepID.
func (id StepID) IsZero() bool {
	return id.value == ""
}

package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigRead    = "CONFIG_READ"
	ErrCodeConfigParse   = "CONFIG_PARSE"
	ErrCodeConfigEnv     = "CONFIG_ENV"
	ErrCodeConfigInvalid = "CONFIG_INVALID"
	ErrCodeUsage         = "USAGE"
	ErrCodePrivilege     = "PRIVILEGE"
	ErrCodeStepFailed    = "STEP_FAILED"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_PARSE")
	Message    string // User-friendly error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// NewUsageError creates a usage error for missing or malformed input.
// Usage errors are detected before any mutation and leave no side effects.
func NewUsageError(message, suggestion string) *UserError {
	return &UserError{
		Code:       ErrCodeUsage,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewStepFailedError creates an error for a provisioning step that failed
// mid-run. Unlike usage errors, the host may have been partially changed.
func NewStepFailedError(message, suggestion string) *UserError {
	return &UserError{
		Code:       ErrCodeStepFailed,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewPrivilegeError creates an error for insufficient host privileges.
func NewPrivilegeError(operation string) *UserError {
	return &UserError{
		Code:       ErrCodePrivilege,
		Message:    operation + " must be run as root",
		Suggestion: "re-run with sudo",
	}
}

// Package validation provides input validation utilities to prevent
// command injection and malformed configuration inputs.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidDomain      = errors.New("invalid domain name")
	ErrInvalidPort        = errors.New("invalid port")
	ErrCommandInjection   = errors.New("potential command injection detected")
)

// Compiled regex patterns for validation.
var (
	// packageNameRegex matches valid dpkg/npm package names: alphanumeric,
	// hyphens, underscores, dots, plus. Examples: "nginx", "python3.11", "g++".
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// domainRegex matches syntactically plausible hostnames: dot-separated
	// labels of letters, digits, and hyphens, no leading or trailing hyphen.
	// Examples: "example.com", "app.example.co.uk".
	domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)

	// shellMetaChars contains shell metacharacters that could enable injection.
	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r", "\\", " "}
)

// ValidatePackageName validates an apt or npm package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > 256 {
		return fmt.Errorf("%w: name too long (max 256 characters)", ErrInvalidPackageName)
	}

	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidPackageName, name)
	}

	if containsShellMeta(name) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, name)
	}

	return nil
}

// ValidateDomain validates a fully qualified domain name for a site.
func ValidateDomain(domain string) error {
	if domain == "" {
		return ErrEmptyInput
	}

	if len(domain) > 253 {
		return fmt.Errorf("%w: domain too long", ErrInvalidDomain)
	}

	if containsShellMeta(domain) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, domain)
	}

	if !domainRegex.MatchString(domain) {
		return fmt.Errorf("%w: %q is not a plausible hostname", ErrInvalidDomain, domain)
	}

	for _, label := range strings.Split(domain, ".") {
		if len(label) > 63 {
			return fmt.Errorf("%w: label %q too long", ErrInvalidDomain, label)
		}
	}

	return nil
}

// ValidatePort validates a TCP port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d is outside 1-65535", ErrInvalidPort, port)
	}
	return nil
}

// ParsePort parses and validates a TCP port given as a string.
func ParsePort(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, ErrEmptyInput
	}
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, s)
	}
	if err := ValidatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

// ValidatePortSpec validates a ufw TCP port spec: a single port such as
// "22" or a low:high range such as "3000:3010".
func ValidatePortSpec(spec string) error {
	if spec == "" {
		return ErrEmptyInput
	}

	parts := strings.Split(spec, ":")
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q has more than one range separator", ErrInvalidPort, spec)
	}

	ports := make([]int, 0, 2)
	for _, part := range parts {
		port, err := ParsePort(part)
		if err != nil {
			return err
		}
		ports = append(ports, port)
	}

	if len(ports) == 2 && ports[0] >= ports[1] {
		return fmt.Errorf("%w: range %q is not ascending", ErrInvalidPort, spec)
	}
	return nil
}

// containsShellMeta checks for shell metacharacters.
func containsShellMeta(s string) bool {
	for _, meta := range shellMetaChars {
		if strings.Contains(s, meta) {
			return true
		}
	}
	return false
}

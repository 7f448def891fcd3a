// Package fail2ban provides intrusion-prevention steps: install fail2ban,
// write a jail configuration protecting SSH, and enable the service.
package fail2ban

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
)

// jailLocalPath is where local jail overrides live; fail2ban reads it on
// top of the packaged jail.conf.
const jailLocalPath = "/etc/fail2ban/jail.local"

// JailStep writes the local jail configuration.
type JailStep struct {
	id    step.StepID
	fs    ports.FileSystem
	after []step.StepID
}

// NewJailStep creates a new JailStep.
func NewJailStep(fs ports.FileSystem, after ...step.StepID) *JailStep {
	return &JailStep{
		id:    step.MustNewStepID("fail2ban:jail:sshd"),
		fs:    fs,
		after: after,
	}
}

// ID returns the step identifier.
func (s *JailStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *JailStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if a local jail config already exists. An existing
// file is left alone: the operator may have tuned it.
func (s *JailStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.Exists(jailLocalPath) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *JailStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "file", jailLocalPath, "sshd jail"), nil
}

// Apply renders and writes the jail configuration.
func (s *JailStep) Apply(_ step.RunContext) error {
	content, err := renderJail()
	if err != nil {
		return fmt.Errorf("failed to render jail config: %w", err)
	}
	if err := s.fs.WriteFile(jailLocalPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jailLocalPath, err)
	}
	return nil
}

// Policy returns the failure policy.
func (s *JailStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// renderJail builds the jail.local contents: ban settings in DEFAULT and
// an enabled sshd jail.
func renderJail() ([]byte, error) {
	// go-ini treats DEFAULT as its unnamed section and omits the header
	// unless told otherwise; fail2ban's parser rejects keys outside a
	// section, so the [DEFAULT] header must be written out.
	ini.DefaultHeader = true

	cfg := ini.Empty()

	def, err := cfg.NewSection("DEFAULT")
	if err != nil {
		return nil, err
	}
	def.Key("bantime").SetValue("1h")
	def.Key("findtime").SetValue("10m")
	def.Key("maxretry").SetValue("5")

	sshd, err := cfg.NewSection("sshd")
	if err != nil {
		return nil, err
	}
	sshd.Key("enabled").SetValue("true")
	sshd.Key("port").SetValue("ssh")

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure JailStep implements step.Step.
var _ step.Step = (*JailStep)(nil)

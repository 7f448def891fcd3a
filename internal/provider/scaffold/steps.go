// Package scaffold provides steps that lay out the project directory:
// a root for application directories, a sample app with a pm2 process
// file, and the operator documentation.
package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/groundwork-sh/groundwork/internal/domain/step"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/templates"
)

// DirStep creates a directory tree.
type DirStep struct {
	path  string
	id    step.StepID
	fs    ports.FileSystem
	after []step.StepID
}

// NewDirStep creates a new DirStep.
func NewDirStep(path string, fs ports.FileSystem, after ...step.StepID) *DirStep {
	return &DirStep{
		path:  path,
		id:    step.MustNewStepID("scaffold:dir:" + filepath.Base(path)),
		fs:    fs,
		after: after,
	}
}

// ID returns the step identifier.
func (s *DirStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *DirStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the directory already exists.
func (s *DirStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.IsDir(s.path) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DirStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "directory", s.path, ""), nil
}

// Apply creates the directory and any missing parents.
func (s *DirStep) Apply(_ step.RunContext) error {
	if err := s.fs.MkdirAll(s.path, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	return nil
}

// Policy returns the failure policy.
func (s *DirStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// FileStep writes one scaffold file. Existing files are never touched:
// the operator may have edited them.
type FileStep struct {
	path    string
	content string
	id      step.StepID
	fs      ports.FileSystem
	after   []step.StepID
}

// NewFileStep creates a new FileStep.
func NewFileStep(path, content string, fs ports.FileSystem, after ...step.StepID) *FileStep {
	return &FileStep{
		path:    path,
		content: content,
		id:      step.MustNewStepID("scaffold:file:" + filepath.Base(path)),
		fs:      fs,
		after:   after,
	}
}

// ID returns the step identifier.
func (s *FileStep) ID() step.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *FileStep) DependsOn() []step.StepID {
	return s.after
}

// Check determines if the file already exists.
func (s *FileStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.path) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *FileStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "file", s.path, ""), nil
}

// Apply writes the file.
func (s *FileStep) Apply(_ step.RunContext) error {
	if err := s.fs.WriteFile(s.path, []byte(s.content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Policy returns the failure policy.
func (s *FileStep) Policy() step.FailurePolicy {
	return step.PolicyFatal
}

// Ensure steps implement step.Step.
var (
	_ step.Step = (*DirStep)(nil)
	_ step.Step = (*FileStep)(nil)
)

// Provider builds the scaffold steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new scaffold Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "scaffold"
}

// Steps returns directory, sample app, and documentation steps for the
// given project layout.
func (p *Provider) Steps(data templates.ScaffoldData, after ...step.StepID) ([]step.Step, error) {
	appDir := filepath.Join(data.ProjectRoot, data.AppName)

	root := NewDirStep(data.ProjectRoot, p.fs, after...)
	app := NewDirStep(appDir, p.fs, root.ID())

	server, err := templates.RenderSampleApp(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render sample app: %w", err)
	}
	ecosystem, err := templates.RenderEcosystem(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render pm2 config: %w", err)
	}
	readme, err := templates.RenderReadme(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render readme: %w", err)
	}

	return []step.Step{
		root,
		app,
		NewFileStep(filepath.Join(appDir, "server.js"), server, p.fs, app.ID()),
		NewFileStep(filepath.Join(appDir, "ecosystem.config.js"), ecosystem, p.fs, app.ID()),
		NewFileStep(filepath.Join(data.ProjectRoot, "README.md"), readme, p.fs, root.ID()),
		NewFileStep(filepath.Join(data.ProjectRoot, "SERVER_GUIDE.md"), templates.ServerGuide(), p.fs, root.ID()),
		NewFileStep(filepath.Join(data.ProjectRoot, "DEPLOY_CHECKLIST.md"), templates.DeployChecklist(), p.fs, root.ID()),
	}, nil
}

// Package config loads groundwork configuration from groundwork.yaml and
// GROUNDWORK_* environment variables. The file is optional; every field
// has a working default for a fresh Ubuntu host.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/validation"
)

// DefaultPath is where provision looks for a config file by default.
const DefaultPath = "/etc/groundwork/groundwork.yaml"

// Config is the full groundwork configuration.
type Config struct {
	// ProjectRoot is where application directories are scaffolded.
	ProjectRoot string `yaml:"project_root" env:"GROUNDWORK_PROJECT_ROOT"`

	// SampleApp configures the scaffolded sample application.
	SampleApp SampleApp `yaml:"sample_app"`

	// Node configures the language runtime install.
	Node Node `yaml:"node"`

	// ExtraPackages are additional apt packages installed with the base set.
	ExtraPackages []string `yaml:"extra_packages" env:"GROUNDWORK_EXTRA_PACKAGES" envSeparator:","`

	// Firewall configures ufw allow rules.
	Firewall Firewall `yaml:"firewall"`

	// AssumeYes answers yes to every confirmation prompt.
	AssumeYes bool `yaml:"assume_yes" env:"GROUNDWORK_ASSUME_YES"`
}

// SampleApp configures the scaffolded sample application.
type SampleApp struct {
	Name string `yaml:"name" env:"GROUNDWORK_SAMPLE_APP"`
	Port int    `yaml:"port" env:"GROUNDWORK_SAMPLE_PORT"`
}

// Node configures the language runtime install.
type Node struct {
	// Major is the NodeSource release channel, e.g. "22".
	Major string `yaml:"major" env:"GROUNDWORK_NODE_MAJOR"`
}

// Firewall configures ufw allow rules.
type Firewall struct {
	// AllowTCP lists ufw port specs allowed inbound, e.g. "22" or "3000:3010".
	AllowTCP []string `yaml:"allow_tcp" env:"GROUNDWORK_FIREWALL_ALLOW" envSeparator:","`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ProjectRoot: "/var/www/apps",
		SampleApp: SampleApp{
			Name: "hello",
			Port: 3000,
		},
		Node: Node{
			Major: "22",
		},
		Firewall: Firewall{
			AllowTCP: []string{"22", "80", "443", "3000:3010"},
		},
	}
}

// Load reads the config file at path (falling back to defaults when the
// file does not exist) and applies environment overrides. A leading ~ in
// path is expanded so --config ~/groundwork.yaml works.
func Load(fs ports.FileSystem, path string) (*Config, error) {
	cfg := Default()

	path = ports.ExpandPath(path)
	data, err := fs.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &UserError{
				Code:       ErrCodeConfigParse,
				Message:    "configuration file is not valid YAML",
				Context:    path,
				Suggestion: "check indentation and quoting in " + path,
				Underlying: err,
			}
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	default:
		return nil, &UserError{
			Code:       ErrCodeConfigRead,
			Message:    "configuration file could not be read",
			Context:    path,
			Underlying: err,
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, &UserError{
			Code:       ErrCodeConfigEnv,
			Message:    "invalid GROUNDWORK_* environment variable",
			Underlying: err,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values that would produce broken
// host state.
func (c *Config) Validate() error {
	if c.ProjectRoot == "" {
		return &UserError{
			Code:    ErrCodeConfigInvalid,
			Message: "project_root cannot be empty",
		}
	}

	if err := validation.ValidatePort(c.SampleApp.Port); err != nil {
		return &UserError{
			Code:       ErrCodeConfigInvalid,
			Message:    fmt.Sprintf("sample_app.port %d is not a valid port", c.SampleApp.Port),
			Underlying: err,
		}
	}

	for _, pkg := range c.ExtraPackages {
		if err := validation.ValidatePackageName(pkg); err != nil {
			return &UserError{
				Code:       ErrCodeConfigInvalid,
				Message:    fmt.Sprintf("extra package %q is not a valid package name", pkg),
				Underlying: err,
			}
		}
	}

	for _, spec := range c.Firewall.AllowTCP {
		if err := validation.ValidatePortSpec(spec); err != nil {
			return &UserError{
				Code:       ErrCodeConfigInvalid,
				Message:    fmt.Sprintf("firewall.allow_tcp entry %q is not a valid port spec", spec),
				Underlying: err,
			}
		}
	}

	return nil
}

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(ports.NewMockFileSystem(), DefaultPath)
	require.NoError(t, err)

	assert.Equal(t, "/var/www/apps", cfg.ProjectRoot)
	assert.Equal(t, "hello", cfg.SampleApp.Name)
	assert.Equal(t, 3000, cfg.SampleApp.Port)
	assert.Equal(t, "22", cfg.Node.Major)
	assert.Contains(t, cfg.Firewall.AllowTCP, "22")
	assert.Contains(t, cfg.Firewall.AllowTCP, "443")
	assert.False(t, cfg.AssumeYes)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile(DefaultPath, []byte(`
project_root: /srv/apps
sample_app:
  name: demo
  port: 4000
node:
  major: "20"
extra_packages:
  - htop
  - jq
`), 0o644))

	cfg, err := Load(fs, DefaultPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/apps", cfg.ProjectRoot)
	assert.Equal(t, "demo", cfg.SampleApp.Name)
	assert.Equal(t, 4000, cfg.SampleApp.Port)
	assert.Equal(t, "20", cfg.Node.Major)
	assert.Equal(t, []string{"htop", "jq"}, cfg.ExtraPackages)
}

func TestLoad_ExpandsHomeRelativePath(t *testing.T) {
	t.Setenv("HOME", "/home/deploy")
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/home/deploy/groundwork.yaml", []byte("project_root: /srv/apps\n"), 0o644))

	cfg, err := Load(fs, "~/groundwork.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/srv/apps", cfg.ProjectRoot)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile(DefaultPath, []byte("project_root: /srv/apps\n"), 0o644))
	t.Setenv("GROUNDWORK_PROJECT_ROOT", "/data/apps")
	t.Setenv("GROUNDWORK_FIREWALL_ALLOW", "22,8080")

	cfg, err := Load(fs, DefaultPath)
	require.NoError(t, err)

	assert.Equal(t, "/data/apps", cfg.ProjectRoot)
	assert.Equal(t, []string{"22", "8080"}, cfg.Firewall.AllowTCP)
}

func TestLoad_InvalidYAML(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile(DefaultPath, []byte("project_root: [unclosed\n"), 0o644))

	_, err := Load(fs, DefaultPath)
	require.Error(t, err)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, ErrCodeConfigParse, userErr.Code)
	assert.NotEmpty(t, userErr.Suggestion)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty project root",
			mutate:  func(c *Config) { c.ProjectRoot = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.SampleApp.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "extra package with shell metacharacters",
			mutate:  func(c *Config) { c.ExtraPackages = []string{"htop; rm -rf /"} },
			wantErr: true,
		},
		{
			name:    "firewall spec with shell metacharacters",
			mutate:  func(c *Config) { c.Firewall.AllowTCP = []string{"22; reboot"} },
			wantErr: true,
		},
		{
			name:    "firewall range not ascending",
			mutate:  func(c *Config) { c.Firewall.AllowTCP = []string{"3010:3000"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package hoststate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
ID=ubuntu
ID_LIKE=debian
`

func TestDetector_Detect(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte(ubuntuOSRelease), 0o644))

	runner := ports.NewMockCommandRunner()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${Version}\t${db:Status-Status}", "nginx"},
		ports.CommandResult{ExitCode: 0, Stdout: "1.24.0-2ubuntu7\tinstalled"})
	runner.AddResult("dpkg-query", []string{"-W", "-f=${Version}\t${db:Status-Status}", "ufw"},
		ports.CommandResult{ExitCode: 1, Stderr: "no packages found matching ufw"})

	state, err := NewDetector(runner, fs, 0).Detect(context.Background(), []string{"nginx", "ufw"})
	require.NoError(t, err)

	assert.Equal(t, "ubuntu", state.OSID)
	assert.Equal(t, "24.04", state.OSVersion)
	assert.Equal(t, "Ubuntu 24.04.1 LTS", state.OSName)
	assert.True(t, state.SupportedOS())
	assert.True(t, state.RootAccess)
	assert.Equal(t, "1.24.0-2ubuntu7", state.PackageVersion("nginx"))
	assert.False(t, state.HasPackage("ufw"))
}

func TestDetector_UnprivilegedUser(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte(ubuntuOSRelease), 0o644))

	state, err := NewDetector(ports.NewMockCommandRunner(), fs, 1000).
		Detect(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, state.RootAccess)
}

func TestDetector_NonUbuntuHost(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte("ID=debian\nPRETTY_NAME=\"Debian 12\"\n"), 0o644))

	state, err := NewDetector(ports.NewMockCommandRunner(), fs, 0).
		Detect(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, state.SupportedOS())
	assert.Equal(t, "Debian 12", state.OSName)
}

func TestDetector_MissingOSRelease(t *testing.T) {
	_, err := NewDetector(ports.NewMockCommandRunner(), ports.NewMockFileSystem(), 0).
		Detect(context.Background(), nil)

	assert.Error(t, err)
}

func TestDetector_HalfInstalledPackageIsAbsent(t *testing.T) {
	fs := ports.NewMockFileSystem()
	require.NoError(t, fs.WriteFile("/etc/os-release", []byte(ubuntuOSRelease), 0o644))

	runner := ports.NewMockCommandRunner()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${Version}\t${db:Status-Status}", "nginx"},
		ports.CommandResult{ExitCode: 0, Stdout: "1.24.0-2ubuntu7\tconfig-files"})

	state, err := NewDetector(runner, fs, 0).Detect(context.Background(), []string{"nginx"})
	require.NoError(t, err)

	assert.False(t, state.HasPackage("nginx"))
}

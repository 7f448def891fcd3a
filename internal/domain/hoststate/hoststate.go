// Package hoststate observes facts about the host at run start: OS
// identity and the presence and version of each target package. The
// snapshot is read-only; it changes only by re-running detection.
package hoststate

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

// osReleasePath is the standard location of the OS identification file.
const osReleasePath = "/etc/os-release"

// HostState is a snapshot of observed host facts.
type HostState struct {
	OSID       string // e.g. "ubuntu"
	OSVersion  string // e.g. "24.04"
	OSName     string // e.g. "Ubuntu 24.04.1 LTS"
	Packages   map[string]string
	RootAccess bool
}

// SupportedOS reports whether the host runs the OS this tool targets.
func (s *HostState) SupportedOS() bool {
	return s.OSID == "ubuntu"
}

// PackageVersion returns the installed version of a dpkg package, or ""
// when the package is absent.
func (s *HostState) PackageVersion(name string) string {
	return s.Packages[name]
}

// HasPackage reports whether a dpkg package is installed.
func (s *HostState) HasPackage(name string) bool {
	_, ok := s.Packages[name]
	return ok
}

// Detector gathers HostState from the live host.
type Detector struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
	euid   int
}

// NewDetector creates a Detector. euid is the effective user ID of the
// current process; 0 means root.
func NewDetector(runner ports.CommandRunner, fs ports.FileSystem, euid int) *Detector {
	return &Detector{runner: runner, fs: fs, euid: euid}
}

// Detect reads OS identity and installed package versions. packages lists
// the dpkg package names of interest; absent packages are simply missing
// from the snapshot.
func (d *Detector) Detect(ctx context.Context, packages []string) (*HostState, error) {
	state := &HostState{
		Packages:   make(map[string]string),
		RootAccess: d.euid == 0,
	}

	if err := d.detectOS(state); err != nil {
		return nil, fmt.Errorf("failed to identify OS: %w", err)
	}

	for _, pkg := range packages {
		version, installed := d.packageVersion(ctx, pkg)
		if installed {
			state.Packages[pkg] = version
		}
	}

	return state, nil
}

// detectOS parses /etc/os-release. The file is shell-style KEY=value
// pairs, which the ini parser handles as a sectionless config.
func (d *Detector) detectOS(state *HostState) error {
	data, err := d.fs.ReadFile(osReleasePath)
	if err != nil {
		return err
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", osReleasePath, err)
	}

	section := cfg.Section("")
	state.OSID = strings.Trim(section.Key("ID").String(), `"`)
	state.OSVersion = strings.Trim(section.Key("VERSION_ID").String(), `"`)
	state.OSName = strings.Trim(section.Key("PRETTY_NAME").String(), `"`)
	return nil
}

// packageVersion queries dpkg for an installed package version.
func (d *Detector) packageVersion(ctx context.Context, name string) (string, bool) {
	result, err := d.runner.Run(ctx, "dpkg-query", "-W", "-f=${Version}\t${db:Status-Status}", name)
	if err != nil || !result.Success() {
		return "", false
	}

	parts := strings.SplitN(strings.TrimSpace(result.Stdout), "\t", 2)
	if len(parts) != 2 || parts[1] != "installed" {
		return "", false
	}
	return parts[0], true
}

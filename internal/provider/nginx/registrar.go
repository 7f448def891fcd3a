package nginx

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/groundwork-sh/groundwork/internal/domain/site"
	"github.com/groundwork-sh/groundwork/internal/ports"
	"github.com/groundwork-sh/groundwork/internal/templates"
)

// Default nginx site directories on Debian/Ubuntu.
const (
	DefaultAvailableDir = "/etc/nginx/sites-available"
	DefaultEnabledDir   = "/etc/nginx/sites-enabled"
)

// Registrar writes, enables, and activates reverse-proxy site configs.
//
// Registration is deliberately not transactional: a config that fails
// validation stays written and enabled until the operator fixes it, and a
// second registration for the same domain overwrites the first entirely.
type Registrar struct {
	runner       ports.CommandRunner
	fs           ports.FileSystem
	prober       site.Prober
	availableDir string
	enabledDir   string
}

// NewRegistrar creates a Registrar using the standard nginx directories.
func NewRegistrar(runner ports.CommandRunner, fs ports.FileSystem, prober site.Prober) *Registrar {
	return &Registrar{
		runner:       runner,
		fs:           fs,
		prober:       prober,
		availableDir: DefaultAvailableDir,
		enabledDir:   DefaultEnabledDir,
	}
}

// WithDirs overrides the sites-available and sites-enabled locations.
func (r *Registrar) WithDirs(availableDir, enabledDir string) *Registrar {
	r.availableDir = availableDir
	r.enabledDir = enabledDir
	return r
}

// Registration describes the outcome of registering a site.
type Registration struct {
	Site      site.Site
	SiteFile  string
	PortBound bool // advisory: whether something listens on the backend port
}

// Register renders the site config, writes it to sites-available,
// enables it, validates the nginx config set, and reloads nginx.
//
// A validation or reload failure aborts at that point but reverts
// nothing already applied.
func (r *Registrar) Register(ctx context.Context, s site.Site) (*Registration, error) {
	reg := &Registration{
		Site:      s,
		SiteFile:  filepath.Join(r.availableDir, s.Domain()),
		PortBound: r.prober.Listening(ctx, s.Port()),
	}

	content, err := templates.RenderSite(templates.SiteData{
		Domain: s.Domain(),
		Port:   s.Port(),
	})
	if err != nil {
		return reg, fmt.Errorf("failed to render site config: %w", err)
	}

	// Last write wins: an existing config for the domain is replaced
	// wholesale, with no merge and no confirmation.
	if err := r.fs.WriteFile(reg.SiteFile, []byte(content), 0o644); err != nil {
		return reg, fmt.Errorf("failed to write %s: %w", reg.SiteFile, err)
	}

	if err := r.enable(s.Domain()); err != nil {
		return reg, err
	}

	if err := r.Validate(ctx); err != nil {
		// The broken config stays enabled; the operator sees the
		// validator's own error and decides.
		return reg, err
	}

	if err := r.Reload(ctx); err != nil {
		return reg, err
	}

	return reg, nil
}

// enable links the site into sites-enabled. Re-creating an identical link
// is a no-op; a stale entry at the link path is replaced.
func (r *Registrar) enable(domain string) error {
	target := filepath.Join(r.availableDir, domain)
	link := filepath.Join(r.enabledDir, domain)

	if isLink, current := r.fs.IsSymlink(link); isLink && current == target {
		return nil
	}
	if r.fs.Exists(link) {
		if err := r.fs.Remove(link); err != nil {
			return fmt.Errorf("failed to replace %s: %w", link, err)
		}
	}
	if err := r.fs.CreateSymlink(target, link); err != nil {
		return fmt.Errorf("failed to enable site: %w", err)
	}
	return nil
}

// Validate asks nginx to check the full configuration set.
func (r *Registrar) Validate(ctx context.Context) error {
	result, err := r.runner.Run(ctx, "nginx", "-t")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nginx configuration test failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Reload reloads the nginx service.
func (r *Registrar) Reload(ctx context.Context) error {
	result, err := r.runner.Run(ctx, "systemctl", "reload", "nginx")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("nginx reload failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// IssueCertificate requests and installs a TLS certificate for the domain
// via certbot's nginx integration. Certbot rewrites the site file in place.
func (r *Registrar) IssueCertificate(ctx context.Context, domain string) error {
	result, err := r.runner.Run(ctx, "certbot", "--nginx", "-d", domain)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("certbot failed for %s: %s", domain, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// SiteEntry describes one registered site on disk.
type SiteEntry struct {
	Domain  string
	Port    int
	Enabled bool
}

var proxyPassPattern = regexp.MustCompile(`proxy_pass\s+http://localhost:(\d+)`)

// List enumerates sites-available, reporting each site's backend port and
// whether it is enabled. Files that are not groundwork-style proxy
// configs (e.g. the distribution default) report port 0.
func (r *Registrar) List() ([]SiteEntry, error) {
	names, err := r.fs.ListDir(r.availableDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.availableDir, err)
	}

	entries := make([]SiteEntry, 0, len(names))
	for _, name := range names {
		entry := SiteEntry{Domain: name}

		if data, err := r.fs.ReadFile(filepath.Join(r.availableDir, name)); err == nil {
			if m := proxyPassPattern.FindSubmatch(data); m != nil {
				entry.Port, _ = strconv.Atoi(string(m[1]))
			}
		}

		link := filepath.Join(r.enabledDir, name)
		if isLink, target := r.fs.IsSymlink(link); isLink {
			entry.Enabled = target == filepath.Join(r.availableDir, name)
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Domain < entries[j].Domain })
	return entries, nil
}

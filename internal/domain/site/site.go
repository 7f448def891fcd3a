// Package site models a reverse-proxy site: a domain routed to a local
// backend port.
package site

import (
	"fmt"

	"github.com/groundwork-sh/groundwork/internal/validation"
)

// Site describes one reverse-proxy site. It exists on disk only as the
// rendered nginx config file; removing that file destroys the site.
type Site struct {
	domain string
	port   int
}

// New validates the inputs and creates a Site.
func New(domain string, port int) (Site, error) {
	if err := validation.ValidateDomain(domain); err != nil {
		return Site{}, fmt.Errorf("domain: %w", err)
	}
	if err := validation.ValidatePort(port); err != nil {
		return Site{}, fmt.Errorf("port: %w", err)
	}
	return Site{domain: domain, port: port}, nil
}

// Domain returns the site's fully qualified domain name.
func (s Site) Domain() string {
	return s.domain
}

// Port returns the local backend port traffic is proxied to.
func (s Site) Port() int {
	return s.port
}

// Upstream returns the proxy target URL.
func (s Site) Upstream() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

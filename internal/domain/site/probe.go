package site

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Prober checks whether anything is listening on a local port. The result
// is advisory: registration proceeds either way.
type Prober interface {
	Listening(ctx context.Context, port int) bool
}

// DialProber probes by attempting a TCP connection on the loopback
// interface.
type DialProber struct {
	timeout time.Duration
}

// NewDialProber creates a DialProber with a short connect timeout.
func NewDialProber() *DialProber {
	return &DialProber{timeout: 2 * time.Second}
}

// Listening reports whether a TCP connection to 127.0.0.1:port succeeds.
func (p *DialProber) Listening(ctx context.Context, port int) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// StaticProber is a Prober for tests with a fixed answer per port.
type StaticProber struct {
	Bound map[int]bool
}

// Listening returns the configured answer for port.
func (p *StaticProber) Listening(_ context.Context, port int) bool {
	return p.Bound[port]
}

// Ensure implementations satisfy Prober.
var (
	_ Prober = (*DialProber)(nil)
	_ Prober = (*StaticProber)(nil)
)

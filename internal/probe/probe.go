// Package probe answers "is this URL reachable right now" with a single
// human-readable sentence. It is a one-shot diagnostic with no retry and no
// relation to the PMS client.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds how long a single check may take.
const DefaultTimeout = 5 * time.Second

// Probe checks URL reachability with a fixed timeout.
type Probe struct {
	timeout time.Duration
}

// New creates a Probe. A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{timeout: timeout}
}

// Check issues one synchronous GET to url and classifies the outcome. It
// never returns an error: every failure category becomes a descriptive
// sentence.
func (p *Probe) Check(url string) string {
	transport := &http.Transport{DisableKeepAlives: true}
	defer transport.CloseIdleConnections()

	conn := resty.New().
		SetTransport(transport).
		SetTimeout(p.timeout)

	resp, err := conn.R().Get(url)
	if err != nil {
		switch {
		case isTimeout(err):
			return fmt.Sprintf("URL %s check timed out.", url)
		case isConnectionError(err):
			return fmt.Sprintf("URL %s is unreachable.", url)
		default:
			return fmt.Sprintf("error checking URL %s: %v", url, err)
		}
	}

	if resp.StatusCode() == http.StatusOK {
		return fmt.Sprintf("URL %s is reachable.", url)
	}

	return fmt.Sprintf("URL %s returned status code %d.", url, resp.StatusCode())
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

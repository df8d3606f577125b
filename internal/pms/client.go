// Package pms implements a client for a 1C-Hotel style property-management
// REST API: bearer-token authentication, JSON bodies, and a bounded
// immediate-retry policy on every request.
package pms

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alex-user-go/hotelpms/internal/obs"
)

const (
	// DefaultAttempts is the number of tries a single request gets before
	// the client gives up.
	DefaultAttempts = 3
)

// Client talks to the property-management API. Base URL and API key are set
// once at construction and reused for every call.
type Client struct {
	baseURL  string
	apiKey   string
	attempts int
	delay    time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *obs.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithAttempts sets the maximum number of tries per request.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryDelay sets a wait between consecutive attempts. The default is
// zero: failed attempts are retried immediately.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithTimeout sets a per-attempt timeout on the underlying transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMetrics attaches a metrics sink for attempt/failure counters.
func WithMetrics(m *obs.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a new Client for the API at baseURL, authenticating with apiKey.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		attempts: DefaultAttempts,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metrics == nil {
		c.metrics = obs.NewMetrics(logger)
	}

	return c
}

// RoomAvailability fetches the current free/occupied state of all rooms.
func (c *Client) RoomAvailability(ctx context.Context) (map[string]any, error) {
	c.logger.Debug("fetching room availability")
	return c.do(ctx, http.MethodGet, "/rooms/availability", nil)
}

// RoomInfo fetches details for a single room.
func (c *Client) RoomInfo(ctx context.Context, roomID string) (map[string]any, error) {
	c.logger.Debug("fetching room info", "room_id", roomID)
	return c.do(ctx, http.MethodGet, "/rooms/"+roomID, nil)
}

// BookRoom books a room for the guest described by userData (name, contact
// fields and so on). Whether the room is actually free is enforced
// server-side; the client passes the payload through untouched.
func (c *Client) BookRoom(ctx context.Context, roomID string, userData map[string]any) (map[string]any, error) {
	c.logger.Debug("booking room", "room_id", roomID, "guest", userData["name"])
	return c.do(ctx, http.MethodPost, "/rooms/"+roomID+"/book", userData)
}

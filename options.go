package datamall

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/datamall-go/datamall/transport"
)

// Mode selects how a Client executes requests. It is fixed for the
// Client's lifetime.
type Mode int

const (
	// ModeBlocking runs every exchange on the calling goroutine.
	ModeBlocking Mode = iota
	// ModeAsync hands exchanges to a bounded goroutine pool; the caller
	// parks only while network I/O is in flight.
	ModeAsync
)

func (m Mode) String() string {
	switch m {
	case ModeBlocking:
		return "blocking"
	case ModeAsync:
		return "async"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "blocking" or "async". The empty string is blocking.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blocking", "sync":
		return ModeBlocking, nil
	case "async":
		return ModeAsync, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// HeaderAccountKey is the request header carrying the API key.
const HeaderAccountKey = "AccountKey"

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig holds client configuration.
type clientConfig struct {
	apiKey      string
	host        string
	version     string
	mode        Mode
	timeout     time.Duration
	pool        transport.PoolConfig
	maxInFlight int
	httpClient  *http.Client
	transport   transport.Transport
	userAgent   string
	logger      *slog.Logger
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	pool := transport.DefaultPoolConfig()
	return &clientConfig{
		host:        DefaultHost,
		version:     APIVersion,
		mode:        ModeBlocking,
		timeout:     pool.Timeout,
		pool:        pool,
		maxInFlight: transport.DefaultMaxInFlight,
		userAgent:   "datamall-go",
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

// WithAPIKey sets the account key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithHost sets the scheme and host (default: "https://datamall2.mytransport.sg").
func WithHost(host string) Option {
	return func(c *clientConfig) {
		c.host = strings.TrimSuffix(host, "/")
	}
}

// WithVersion sets the API path prefix (default: "/ltaodataservice").
func WithVersion(v string) Option {
	return func(c *clientConfig) {
		c.version = v
	}
}

// WithMode selects the blocking or async transport (default: blocking).
func WithMode(m Mode) Option {
	return func(c *clientConfig) {
		c.mode = m
	}
}

// WithTimeout sets the per-request timeout (default: 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithPool configures the connection pool created for the client.
func WithPool(cfg transport.PoolConfig) Option {
	return func(c *clientConfig) {
		c.pool = cfg
	}
}

// WithMaxInFlight bounds concurrent exchanges in async mode (default: 16).
func WithMaxInFlight(n int) Option {
	return func(c *clientConfig) {
		c.maxInFlight = n
	}
}

// WithHTTPClient sets a custom HTTP client instead of building a pool.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTransport sets a custom transport. Pool and HTTP client options are
// ignored when a transport is given, and Client.Mode reports the mode of a
// *transport.Async or *transport.Blocking rather than WithMode.
func WithTransport(t transport.Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the structured logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

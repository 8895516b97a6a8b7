package datamall

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/datamall-go/datamall/security"
	"github.com/datamall-go/datamall/transport"
)

// Client is a DataMall client.
// It is safe for concurrent use from multiple goroutines. Create one and
// reuse it: it owns the connection pool.
type Client struct {
	apiKey    string
	base      string // host + version, validated once
	mode      Mode
	userAgent string
	transport transport.Transport
	logger    *slog.Logger
}

// New creates a new DataMall client with the given options.
//
// Example:
//
//	client, err := datamall.New(
//	    datamall.WithAPIKey("your-account-key"),
//	    datamall.WithMode(datamall.ModeAsync),
//	)
func New(opts ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	t := config.transport
	if t == nil {
		httpClient := config.httpClient
		if httpClient == nil {
			pool := config.pool
			pool.Timeout = config.timeout
			httpClient = transport.NewPool(pool)
		}
		switch config.mode {
		case ModeAsync:
			t = transport.NewAsync(
				transport.WithAsyncClient(httpClient),
				transport.WithAsyncTimeout(config.timeout),
				transport.WithMaxInFlight(config.maxInFlight),
			)
		default:
			t = transport.NewBlocking(
				transport.WithBlockingClient(httpClient),
				transport.WithBlockingTimeout(config.timeout),
			)
		}
	}

	c := &Client{
		apiKey:    config.apiKey,
		base:      config.host + config.version,
		mode:      transportMode(t, config.mode),
		userAgent: config.userAgent,
		transport: t,
		logger:    config.logger,
	}

	c.logger.Info("datamall.client.created",
		"base", c.base,
		"transport", t.Name(),
		"key", security.Fingerprint(c.apiKey),
	)
	return c, nil
}

// MustNew creates a new DataMall client with the given options.
// Panics if the configuration is invalid.
// Use New() for error handling in production code.
func MustNew(opts ...Option) *Client {
	client, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// validateConfig validates the client configuration.
func validateConfig(config *clientConfig) error {
	if err := validateBase(config.host, config.version); err != nil {
		return err
	}
	if config.mode != ModeBlocking && config.mode != ModeAsync {
		return fmt.Errorf("unknown mode %s", config.mode)
	}
	if config.timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if config.maxInFlight < 0 {
		return fmt.Errorf("max in-flight cannot be negative")
	}
	return nil
}

// Mode returns the execution mode of the client's transport. For a custom
// transport that is neither blocking nor async it returns the configured
// mode.
func (c *Client) Mode() Mode {
	return c.mode
}

func transportMode(t transport.Transport, configured Mode) Mode {
	switch t.(type) {
	case *transport.Async:
		return ModeAsync
	case *transport.Blocking:
		return ModeBlocking
	default:
		return configured
	}
}

// Transport returns the underlying transport.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Endpoint resolves route against the client's host and version.
func (c *Client) Endpoint(route Route) (Endpoint, error) {
	if err := validateRoute(route); err != nil {
		return "", err
	}
	return Endpoint(c.base + string(route)), nil
}

// Get issues a GET for route with params and decodes the JSON body into dst,
// which must be a non-nil pointer. On any failure dst is left untouched and
// the returned error is an *Error.
//
// Example:
//
//	var stops datamall.Envelope[[]bus.Stop]
//	err := client.Get(ctx, bus.RouteStops, nil, &stops)
func (c *Client) Get(ctx context.Context, route Route, params url.Values, dst any) error {
	op := string(route)

	ep, err := c.Endpoint(route)
	if err != nil {
		return err
	}

	req := &transport.Request{
		Method: http.MethodGet,
		URL:    string(ep),
		Query:  params,
		Header: c.header(),
	}

	start := time.Now()
	resp, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		c.logger.Debug("datamall.request.failed",
			"route", op, "mode", c.mode.String(), "error", err, "elapsed", time.Since(start))
		return transportError(op, string(ep), err)
	}

	c.logger.Debug("datamall.request",
		"route", op, "mode", c.mode.String(), "status", resp.StatusCode,
		"bytes", len(resp.Body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := upstreamError(op, string(ep), resp.StatusCode, resp.Body)
		c.logger.Warn("datamall.upstream.error", "route", op, "status", resp.StatusCode, "error", err)
		return err
	}

	if err := decodeInto(resp.Body, dst); err != nil {
		return decodeError(op, string(ep), resp.Body, err)
	}
	return nil
}

// header builds the headers sent with every request.
func (c *Client) header() http.Header {
	h := make(http.Header, 3)
	h.Set(HeaderAccountKey, c.apiKey)
	h.Set("Accept", "application/json")
	if c.userAgent != "" {
		h.Set("User-Agent", c.userAgent)
	}
	return h
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return c.transport.Close()
}

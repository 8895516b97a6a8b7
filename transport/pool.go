package transport

import (
	"net"
	"net/http"
	"time"
)

// PoolConfig configures the connection pool a client owns.
type PoolConfig struct {
	// Total timeout for one exchange, including reading the body.
	// A context deadline can still shorten it.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	DialTimeout     time.Duration `yaml:"dial_timeout" validate:"gte=0"`
	KeepAlive       time.Duration `yaml:"keep_alive" validate:"gte=0"`
	TLSHandshake    time.Duration `yaml:"tls_handshake" validate:"gte=0"`
	ResponseHeader  time.Duration `yaml:"response_header" validate:"gte=0"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout" validate:"gte=0"`

	MaxIdleConns        int `yaml:"max_idle_conns" validate:"gte=0"`
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" validate:"gte=0"`
}

// DefaultPoolConfig returns the pool settings used when none are given.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      15 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
	}
}

// NewPool builds an *http.Client backed by its own connection pool.
// The returned client is safe for concurrent use.
func NewPool(cfg PoolConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

// closeIdle drops idle pooled connections if the client supports it.
func closeIdle(c *http.Client) {
	if c != nil {
		c.CloseIdleConnections()
	}
}

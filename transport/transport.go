// Package transport provides the HTTP exchange layer for DataMall clients.
//
// Two implementations of Transport are provided. Blocking performs the
// exchange on the calling goroutine. Async hands the exchange to a bounded
// pool of goroutines and lets the caller either wait for it or collect it
// later through a Pending handle. Both build requests and read responses
// through the same helpers, so for identical inputs they produce identical
// Responses and errors.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Transport defines the interface for issuing a single HTTP exchange.
type Transport interface {
	// Name returns the transport name (e.g., "blocking", "async").
	Name() string

	// RoundTrip sends the request and returns the full response.
	// A non-2xx status is not an error at this layer.
	RoundTrip(ctx context.Context, req *Request) (*Response, error)

	// Close releases any resources held by the transport.
	Close() error
}

// Request describes one outgoing call. It is built fresh for every call.
type Request struct {
	Method string      // Defaults to GET
	URL    string      // Absolute URL without query
	Query  url.Values  // Encoded into the URL query string
	Header http.Header // Sent as-is
}

// Response is the raw result of an exchange. The body is fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// ErrClosed is returned when a request is issued on a closed transport.
var ErrClosed = errors.New("transport: closed")

// newHTTPRequest builds the *http.Request shared by every transport.
func newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	return httpReq, nil
}

// exchange runs one request to completion and reads the whole body.
func exchange(ctx context.Context, client *http.Client, timeout time.Duration, req *Request) (*Response, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

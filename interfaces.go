package datamall

import (
	"context"
	"io"
	"net/url"
)

// Querier is the operation every domain service depends on: issue a GET to a
// route with query parameters and decode the JSON response into dst.
// Implement this interface for testing with mocks.
type Querier interface {
	Get(ctx context.Context, route Route, params url.Values, dst any) error
}

// QueryCloser is a Querier that owns resources.
type QueryCloser interface {
	Querier
	io.Closer
}

// Ensure Client implements all interfaces.
var (
	_ Querier     = (*Client)(nil)
	_ QueryCloser = (*Client)(nil)
)

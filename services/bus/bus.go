// Package bus provides a client for DataMall's bus endpoints: arrivals,
// services, routes and stops.
package bus

import (
	"context"

	"github.com/datamall-go/datamall"
)

// Routes of the bus endpoints.
const (
	RouteArrival  datamall.Route = "/v3/BusArrival"
	RouteServices datamall.Route = "/BusServices"
	RouteRoutes   datamall.Route = "/BusRoutes"
	RouteStops    datamall.Route = "/BusStops"
)

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{RouteArrival, RouteServices, RouteRoutes, RouteStops}

// BusClient defines the interface for bus operations.
// Implement this interface for testing with mocks.
type BusClient interface {
	Arrival(ctx context.Context, busStopCode, serviceNo string) (*Arrival, error)
	Services(ctx context.Context, skip int) ([]Service, error)
	Routes(ctx context.Context, skip int) ([]RouteStop, error)
	Stops(ctx context.Context, skip int) ([]Stop, error)
}

// Client is a bus service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new bus client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

// Ensure Client implements BusClient.
var _ BusClient = (*Client)(nil)

type arrivalParams struct {
	BusStopCode string `validate:"required,numeric,len=5"`
	ServiceNo   string `validate:"omitempty,max=5,alphanum"`
}

// Arrival returns real-time arrival information for the services calling at
// a bus stop. serviceNo is optional and narrows the result to one service.
// An empty Services slice means nothing is running at that time.
//
// Example:
//
//	a, err := buses.Arrival(ctx, "83139", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range a.Services {
//	    fmt.Println(s.ServiceNo, s.NextBus.EstimatedArrival)
//	}
func (c *Client) Arrival(ctx context.Context, busStopCode, serviceNo string) (*Arrival, error) {
	p := arrivalParams{BusStopCode: busStopCode, ServiceNo: serviceNo}
	if err := datamall.ValidateParams(string(RouteArrival), p); err != nil {
		return nil, err
	}

	var a Arrival
	params := datamall.Params("BusStopCode", busStopCode, "ServiceNo", serviceNo)
	if err := c.client.Get(ctx, RouteArrival, params, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Services returns service information for all buses in operation: first and
// last stop, peak and off-peak dispatch frequency.
func (c *Client) Services(ctx context.Context, skip int) ([]Service, error) {
	var env datamall.Envelope[[]Service]
	if err := c.client.Get(ctx, RouteServices, datamall.SkipParams(skip), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// Routes returns the stops along each service route with first/last bus
// timings.
func (c *Client) Routes(ctx context.Context, skip int) ([]RouteStop, error) {
	var env datamall.Envelope[[]RouteStop]
	if err := c.client.Get(ctx, RouteRoutes, datamall.SkipParams(skip), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// Stops returns every bus stop currently serviced, with coordinates.
func (c *Client) Stops(ctx context.Context, skip int) ([]Stop, error) {
	var env datamall.Envelope[[]Stop]
	if err := c.client.Get(ctx, RouteStops, datamall.SkipParams(skip), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// Package taxi provides a client for DataMall's taxi availability and taxi
// stand endpoints.
package taxi

import (
	"context"

	"github.com/datamall-go/datamall"
)

// Routes of the taxi endpoints.
const (
	RouteAvailability datamall.Route = "/Taxi-Availability"
	RouteStands       datamall.Route = "/TaxiStands"
)

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{RouteAvailability, RouteStands}

// TaxiClient defines the interface for taxi operations.
type TaxiClient interface {
	Availability(ctx context.Context, skip int) ([]Position, error)
	Stands(ctx context.Context, skip int) ([]Stand, error)
}

// Client is a taxi service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new taxi client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

var _ TaxiClient = (*Client)(nil)

// Position is the location of a taxi available for hire.
type Position struct {
	Longitude float64 `json:"Longitude" validate:"required"`
	Latitude  float64 `json:"Latitude" validate:"required"`
}

// Stand is a taxi stand or stop.
type Stand struct {
	TaxiCode  string  `json:"TaxiCode" validate:"required"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	Bfa       string  `json:"Bfa"`       // barrier-free access, "Yes"/"No"
	Ownership string  `json:"Ownership"` // LTA, CCS, Private
	Type      string  `json:"Type"`      // Stand or Stop
	Name      string  `json:"Name"`
}

// Availability returns coordinates of taxis currently available for hire.
// Hired and busy taxis are excluded. Updated every minute.
func (c *Client) Availability(ctx context.Context, skip int) ([]Position, error) {
	var env datamall.Envelope[[]Position]
	if err := c.client.Get(ctx, RouteAvailability, datamall.SkipParams(skip), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// Stands returns taxi stands and stops.
func (c *Client) Stands(ctx context.Context, skip int) ([]Stand, error) {
	var env datamall.Envelope[[]Stand]
	if err := c.client.Get(ctx, RouteStands, datamall.SkipParams(skip), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

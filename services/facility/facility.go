// Package facility provides a client for DataMall's station facility
// maintenance endpoint.
package facility

import (
	"context"

	"github.com/datamall-go/datamall"
)

// RouteMaintenance lists lifts under maintenance.
const RouteMaintenance datamall.Route = "/v2/FacilitiesMaintenance"

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{RouteMaintenance}

// FacilityClient defines the interface for facility operations.
type FacilityClient interface {
	Maintenance(ctx context.Context, stationCode string) ([]Lift, error)
}

// Client is a facility service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new facility client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

var _ FacilityClient = (*Client)(nil)

// Lift is a lift that is under maintenance.
type Lift struct {
	Line        string `json:"Line"`
	StationCode string `json:"StationCode"`
	StationName string `json:"StationName"`
	LiftID      string `json:"LiftID" validate:"required"`
	LiftDesc    string `json:"LiftDesc"`
}

type maintenanceParams struct {
	StationCode string `validate:"omitempty,alphanum,max=5"`
}

// Maintenance returns lifts under maintenance at MRT and LRT stations. An
// empty stationCode returns every station.
func (c *Client) Maintenance(ctx context.Context, stationCode string) ([]Lift, error) {
	if err := datamall.ValidateParams(string(RouteMaintenance), maintenanceParams{StationCode: stationCode}); err != nil {
		return nil, err
	}
	var env datamall.Envelope[[]Lift]
	if err := c.client.Get(ctx, RouteMaintenance, datamall.Params("StationCode", stationCode), &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

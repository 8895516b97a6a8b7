// Package train provides a client for DataMall's train service alerts.
package train

import (
	"context"

	"github.com/datamall-go/datamall"
)

// RouteServiceAlerts is the train service alert endpoint.
const RouteServiceAlerts datamall.Route = "/TrainServiceAlerts"

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{RouteServiceAlerts}

// Alert status values.
const (
	StatusNormal     = 1
	StatusDisruption = 2
)

// TrainClient defines the interface for train operations.
type TrainClient interface {
	ServiceAlerts(ctx context.Context) (*ServiceAlert, error)
}

// Client is a train service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new train client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

var _ TrainClient = (*Client)(nil)

// ServiceAlert is the current state of the rail network.
type ServiceAlert struct {
	Status           int               `json:"Status" validate:"required"`
	AffectedSegments []AffectedSegment `json:"AffectedSegments"`
	Message          []Message         `json:"Message"`
}

// Disrupted reports whether any line is disrupted.
func (a ServiceAlert) Disrupted() bool {
	return a.Status == StatusDisruption
}

// AffectedSegment describes one disrupted stretch of a line.
type AffectedSegment struct {
	Line                string `json:"Line"`
	Direction           string `json:"Direction"`
	Stations            string `json:"Stations"`
	FreePublicBus       string `json:"FreePublicBus"`
	FreeMRTShuttle      string `json:"FreeMRTShuttle"`
	MRTShuttleDirection string `json:"MRTShuttleDirection"`
}

// Message is a public announcement attached to an alert.
type Message struct {
	Content     string `json:"Content"`
	CreatedDate string `json:"CreatedDate"`
}

// ServiceAlerts returns line disruptions with affected stations, free bus
// and shuttle arrangements.
func (c *Client) ServiceAlerts(ctx context.Context) (*ServiceAlert, error) {
	var env datamall.Envelope[ServiceAlert]
	if err := c.client.Get(ctx, RouteServiceAlerts, nil, &env); err != nil {
		return nil, err
	}
	return &env.Value, nil
}

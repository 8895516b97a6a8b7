// Package geo provides a client for DataMall's whole-island geospatial
// layer downloads.
package geo

import (
	"context"

	"github.com/datamall-go/datamall"
)

// RouteWholeIsland returns a download link for one geospatial layer.
const RouteWholeIsland datamall.Route = "/GeospatialWholeIsland"

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{RouteWholeIsland}

// Layer identifiers. The service accepts others; these are the common ones.
const (
	LayerArrowMarking         = "ArrowMarking"
	LayerBollard              = "Bollard"
	LayerBusStopLocation      = "BusStopLocation"
	LayerCoveredLinkWay       = "CoveredLinkWay"
	LayerCyclingPath          = "CyclingPath"
	LayerERPGantry            = "ERPGantry"
	LayerFootpath             = "Footpath"
	LayerLampPost             = "LampPost"
	LayerParkingStandardsZone = "ParkingStandardsZone"
	LayerRoadCrossing         = "RoadCrossing"
	LayerRoadHump             = "RoadHump"
	LayerSchoolZone           = "SchoolZone"
	LayerSilverZone           = "SilverZone"
	LayerTaxiStand            = "TaxiStand"
	LayerTrafficLight         = "TrafficLight"
	LayerTrafficSign          = "TrafficSign"
	LayerTrainStation         = "TrainStation"
	LayerTrainStationExit     = "TrainStationExit"
)

// GeoClient defines the interface for geospatial operations.
type GeoClient interface {
	WholeIsland(ctx context.Context, layerID string) ([]string, error)
}

// Client is a geospatial service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new geospatial client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

var _ GeoClient = (*Client)(nil)

type layerParams struct {
	ID string `validate:"required,max=64,printascii,excludesall=?#&/%"`
}

// WholeIsland returns download links to the zipped SHP files of layerID.
// Links expire after five minutes.
//
// Example:
//
//	links, err := geoClient.WholeIsland(ctx, geo.LayerTrainStation)
func (c *Client) WholeIsland(ctx context.Context, layerID string) ([]string, error) {
	if err := datamall.ValidateParams(string(RouteWholeIsland), layerParams{ID: layerID}); err != nil {
		return nil, err
	}

	var env datamall.Envelope[[]struct {
		Link string `json:"Link" validate:"required"`
	}]
	if err := c.client.Get(ctx, RouteWholeIsland, datamall.Params("ID", layerID), &env); err != nil {
		return nil, err
	}
	links := make([]string, 0, len(env.Value))
	for _, v := range env.Value {
		links = append(links, v.Link)
	}
	return links, nil
}

// Package traffic provides a client for DataMall's road traffic endpoints:
// ERP rates, car park availability, travel times, faulty traffic lights,
// road openings and works, camera images, incidents, speed bands, VMS
// messages and bicycle parking.
package traffic

import (
	"context"
	"net/url"
	"strconv"

	"github.com/datamall-go/datamall"
)

// Routes of the traffic endpoints.
const (
	RouteERPRates            datamall.Route = "/ERPRates"
	RouteCarParkAvailability datamall.Route = "/CarParkAvailabilityv2"
	RouteEstTravelTimes      datamall.Route = "/EstTravelTimes"
	RouteFaultyTrafficLights datamall.Route = "/FaultyTrafficLights"
	RouteRoadOpenings        datamall.Route = "/RoadOpenings"
	RouteRoadWorks           datamall.Route = "/RoadWorks"
	RouteTrafficImages       datamall.Route = "/Traffic-Imagesv2"
	RouteTrafficIncidents    datamall.Route = "/TrafficIncidents"
	RouteTrafficSpeedBands   datamall.Route = "/v4/TrafficSpeedBands"
	RouteVMS                 datamall.Route = "/VMS"
	RouteBicycleParking      datamall.Route = "/BicycleParkingv2"
)

// AllRoutes lists every route this package calls.
var AllRoutes = []datamall.Route{
	RouteERPRates,
	RouteCarParkAvailability,
	RouteEstTravelTimes,
	RouteFaultyTrafficLights,
	RouteRoadOpenings,
	RouteRoadWorks,
	RouteTrafficImages,
	RouteTrafficIncidents,
	RouteTrafficSpeedBands,
	RouteVMS,
	RouteBicycleParking,
}

// DefaultBicycleParkingDist is the search radius in km the service uses when
// none is given.
const DefaultBicycleParkingDist = 0.5

// TrafficClient defines the interface for traffic operations.
type TrafficClient interface {
	ERPRates(ctx context.Context, skip int) ([]ERPRate, error)
	CarParkAvailability(ctx context.Context, skip int) ([]CarPark, error)
	EstTravelTimes(ctx context.Context, skip int) ([]TravelTime, error)
	FaultyTrafficLights(ctx context.Context, skip int) ([]FaultyTrafficLight, error)
	RoadOpenings(ctx context.Context, skip int) ([]RoadEvent, error)
	RoadWorks(ctx context.Context, skip int) ([]RoadEvent, error)
	TrafficImages(ctx context.Context, skip int) ([]TrafficImage, error)
	TrafficIncidents(ctx context.Context, skip int) ([]Incident, error)
	TrafficSpeedBands(ctx context.Context, skip int) ([]SpeedBand, error)
	VMS(ctx context.Context, skip int) ([]VMSMessage, error)
	BicycleParking(ctx context.Context, lat, long, dist float64) ([]BicycleParking, error)
}

// Client is a traffic service client.
type Client struct {
	client datamall.Querier
}

// NewClient creates a new traffic client.
func NewClient(c datamall.Querier) *Client {
	return &Client{client: c}
}

var _ TrafficClient = (*Client)(nil)

func list[T any](ctx context.Context, q datamall.Querier, route datamall.Route, params url.Values) ([]T, error) {
	var env datamall.Envelope[[]T]
	if err := q.Get(ctx, route, params, &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}

// ERPRates returns Electronic Road Pricing rates by vehicle type, zone and time.
func (c *Client) ERPRates(ctx context.Context, skip int) ([]ERPRate, error) {
	return list[ERPRate](ctx, c.client, RouteERPRates, datamall.SkipParams(skip))
}

// CarParkAvailability returns available lots at HDB, LTA and URA car parks.
// Updated every minute.
func (c *Client) CarParkAvailability(ctx context.Context, skip int) ([]CarPark, error) {
	return list[CarPark](ctx, c.client, RouteCarParkAvailability, datamall.SkipParams(skip))
}

// EstTravelTimes returns estimated expressway travel times. Updated every
// five minutes.
func (c *Client) EstTravelTimes(ctx context.Context, skip int) ([]TravelTime, error) {
	return list[TravelTime](ctx, c.client, RouteEstTravelTimes, datamall.SkipParams(skip))
}

// FaultyTrafficLights returns traffic lights currently faulty or under
// maintenance.
func (c *Client) FaultyTrafficLights(ctx context.Context, skip int) ([]FaultyTrafficLight, error) {
	return list[FaultyTrafficLight](ctx, c.client, RouteFaultyTrafficLights, datamall.SkipParams(skip))
}

// RoadOpenings returns planned road openings.
func (c *Client) RoadOpenings(ctx context.Context, skip int) ([]RoadEvent, error) {
	return list[RoadEvent](ctx, c.client, RouteRoadOpenings, datamall.SkipParams(skip))
}

// RoadWorks returns approved road works.
func (c *Client) RoadWorks(ctx context.Context, skip int) ([]RoadEvent, error) {
	return list[RoadEvent](ctx, c.client, RouteRoadWorks, datamall.SkipParams(skip))
}

// TrafficImages returns links to current traffic camera images. Links expire
// after five minutes.
func (c *Client) TrafficImages(ctx context.Context, skip int) ([]TrafficImage, error) {
	return list[TrafficImage](ctx, c.client, RouteTrafficImages, datamall.SkipParams(skip))
}

// TrafficIncidents returns current road incidents.
func (c *Client) TrafficIncidents(ctx context.Context, skip int) ([]Incident, error) {
	return list[Incident](ctx, c.client, RouteTrafficIncidents, datamall.SkipParams(skip))
}

// TrafficSpeedBands returns speed bands for major roads.
func (c *Client) TrafficSpeedBands(ctx context.Context, skip int) ([]SpeedBand, error) {
	return list[SpeedBand](ctx, c.client, RouteTrafficSpeedBands, datamall.SkipParams(skip))
}

// VMS returns messages shown on variable message signs.
func (c *Client) VMS(ctx context.Context, skip int) ([]VMSMessage, error) {
	return list[VMSMessage](ctx, c.client, RouteVMS, datamall.SkipParams(skip))
}

type bicycleParams struct {
	Lat  float64 `validate:"latitude"`
	Long float64 `validate:"longitude"`
	Dist float64 `validate:"gte=0,lte=50"`
}

// BicycleParking returns bicycle racks within dist km of (lat, long).
// A zero dist uses DefaultBicycleParkingDist.
func (c *Client) BicycleParking(ctx context.Context, lat, long, dist float64) ([]BicycleParking, error) {
	if err := datamall.ValidateParams(string(RouteBicycleParking), bicycleParams{Lat: lat, Long: long, Dist: dist}); err != nil {
		return nil, err
	}
	if dist == 0 {
		dist = DefaultBicycleParkingDist
	}
	params := datamall.Params(
		"Lat", strconv.FormatFloat(lat, 'f', -1, 64),
		"Long", strconv.FormatFloat(long, 'f', -1, 64),
		"Dist", strconv.FormatFloat(dist, 'f', -1, 64),
	)
	return list[BicycleParking](ctx, c.client, RouteBicycleParking, params)
}

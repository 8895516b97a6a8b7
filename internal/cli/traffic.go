package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/services/traffic"
)

func trafficCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "traffic",
		Short: "Road traffic, car parks, ERP and bicycle parking",
	}

	c.AddCommand(
		pagedCmd(o, "erp", "ERP rates", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).ERPRates(ctx, skip)
		}),
		pagedCmd(o, "carparks", "Car park availability", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).CarParkAvailability(ctx, skip)
		}),
		pagedCmd(o, "travel-times", "Estimated expressway travel times", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).EstTravelTimes(ctx, skip)
		}),
		pagedCmd(o, "faulty-lights", "Faulty traffic lights", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).FaultyTrafficLights(ctx, skip)
		}),
		pagedCmd(o, "road-openings", "Planned road openings", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).RoadOpenings(ctx, skip)
		}),
		pagedCmd(o, "road-works", "Approved road works", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).RoadWorks(ctx, skip)
		}),
		pagedCmd(o, "images", "Traffic camera image links", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).TrafficImages(ctx, skip)
		}),
		pagedCmd(o, "incidents", "Current road incidents", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).TrafficIncidents(ctx, skip)
		}),
		pagedCmd(o, "speed-bands", "Speed bands of major roads", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).TrafficSpeedBands(ctx, skip)
		}),
		pagedCmd(o, "vms", "Variable message sign texts", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return traffic.NewClient(q).VMS(ctx, skip)
		}),
		bicycleCmd(o),
	)
	return c
}

func bicycleCmd(o *rootOptions) *cobra.Command {
	var lat, long, dist float64

	c := &cobra.Command{
		Use:   "bicycle",
		Short: "Bicycle racks near a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return traffic.NewClient(q).BicycleParking(ctx, lat, long, dist)
			})
		},
	}

	c.Flags().Float64Var(&lat, "lat", 0, "Latitude (required)")
	c.Flags().Float64Var(&long, "long", 0, "Longitude (required)")
	c.Flags().Float64Var(&dist, "dist", traffic.DefaultBicycleParkingDist, "Search radius in km")
	_ = c.MarkFlagRequired("lat")
	_ = c.MarkFlagRequired("long")
	return c
}

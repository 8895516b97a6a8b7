package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/services/crowd"
	"github.com/datamall-go/datamall/services/facility"
	"github.com/datamall-go/datamall/services/geo"
	"github.com/datamall-go/datamall/services/taxi"
	"github.com/datamall-go/datamall/services/train"
)

func trainCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "train",
		Short: "Train service status",
	}
	c.AddCommand(&cobra.Command{
		Use:   "alerts",
		Short: "Show current train service alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return train.NewClient(q).ServiceAlerts(ctx)
			})
		},
	})
	return c
}

func taxiCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "taxi",
		Short: "Taxi availability and stands",
	}
	c.AddCommand(
		pagedCmd(o, "available", "Positions of taxis available for hire", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return taxi.NewClient(q).Availability(ctx, skip)
		}),
		pagedCmd(o, "stands", "Taxi stands and stops", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return taxi.NewClient(q).Stands(ctx, skip)
		}),
	)
	return c
}

func crowdCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "crowd",
		Short: "Passenger volumes and platform crowd density",
	}
	c.AddCommand(crowdVolumeCmd(o), crowdLineCmd(o, "realtime", "Current platform crowd level"), crowdLineCmd(o, "forecast", "Forecast platform crowd level"))
	return c
}

func crowdVolumeCmd(o *rootOptions) *cobra.Command {
	var (
		month string
		skip  int
	)

	c := &cobra.Command{
		Use:       "volume <bus|od-bus|train|od-train>",
		Short:     "Download links for monthly passenger volume files",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bus", "od-bus", "train", "od-train"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := crowd.ParseVolumeKind(args[0])
			if err != nil {
				return err
			}
			var m time.Time
			if month != "" {
				m, err = time.Parse(crowd.DateFormat, month)
				if err != nil {
					return fmt.Errorf("--month must be YYYYMM: %w", err)
				}
			}
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return crowd.NewClient(q).PassengerVolume(ctx, kind, m, skip)
			})
		},
	}
	c.Flags().StringVar(&month, "month", "", "Month as YYYYMM (default: latest)")
	c.Flags().IntVar(&skip, "skip", 0, "Records to skip when --month is not given")
	return c
}

func crowdLineCmd(o *rootOptions, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <train-line>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		ValidArgs: []string{
			crowd.LineCCL, crowd.LineCEL, crowd.LineCGL, crowd.LineDTL, crowd.LineEWL, crowd.LineNEL,
			crowd.LineNSL, crowd.LineBPL, crowd.LineSLRT, crowd.LinePLRT, crowd.LineTEL,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			line := args[0]
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				if use == "forecast" {
					return crowd.NewClient(q).Forecast(ctx, line)
				}
				return crowd.NewClient(q).RealTime(ctx, line)
			})
		},
	}
}

func facilityCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "facility",
		Short: "Station facility maintenance",
	}
	c.AddCommand(&cobra.Command{
		Use:   "lifts [station-code]",
		Short: "Lifts under maintenance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			station := ""
			if len(args) == 1 {
				station = args[0]
			}
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return facility.NewClient(q).Maintenance(ctx, station)
			})
		},
	})
	return c
}

func geoCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "geo",
		Short: "Geospatial layers",
	}
	c.AddCommand(&cobra.Command{
		Use:     "layer <id>",
		Short:   "Download links for a whole-island layer",
		Example: "  datamall geo layer " + geo.LayerTrainStationExit,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return geo.NewClient(q).WholeIsland(ctx, args[0])
			})
		},
	})
	return c
}

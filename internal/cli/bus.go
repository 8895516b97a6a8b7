package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/services/bus"
)

func busCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "bus",
		Short: "Bus arrivals, services, routes and stops",
	}

	c.AddCommand(
		busArrivalCmd(o),
		pagedCmd(o, "services", "List bus services", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return bus.NewClient(q).Services(ctx, skip)
		}),
		pagedCmd(o, "routes", "List the stops served by each bus service", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return bus.NewClient(q).Routes(ctx, skip)
		}),
		pagedCmd(o, "stops", "List bus stops", func(ctx context.Context, q datamall.Querier, skip int) (any, error) {
			return bus.NewClient(q).Stops(ctx, skip)
		}),
	)
	return c
}

func busArrivalCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "arrival <bus-stop-code> [service-no]",
		Short: "Show the next buses at a stop",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, service := args[0], ""
			if len(args) == 2 {
				service = args[1]
			}
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return bus.NewClient(q).Arrival(ctx, stop, service)
			})
		},
	}
}

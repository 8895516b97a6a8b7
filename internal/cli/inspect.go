package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/security"
	"github.com/datamall-go/datamall/services/bus"
	"github.com/datamall-go/datamall/services/crowd"
	"github.com/datamall-go/datamall/services/facility"
	"github.com/datamall-go/datamall/services/geo"
	"github.com/datamall-go/datamall/services/taxi"
	"github.com/datamall-go/datamall/services/traffic"
	"github.com/datamall-go/datamall/services/train"
)

var serviceRoutes = map[string][]datamall.Route{
	"bus":      bus.AllRoutes,
	"train":    train.AllRoutes,
	"traffic":  traffic.AllRoutes,
	"taxi":     taxi.AllRoutes,
	"crowd":    crowd.AllRoutes,
	"facility": facility.AllRoutes,
	"geo":      geo.AllRoutes,
}

type routeEntry struct {
	Service  string `json:"service"`
	Route    string `json:"route"`
	Endpoint string `json:"endpoint"`
}

func routesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every endpoint the client calls, resolved against the configured host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(serviceRoutes))
			for name := range serviceRoutes {
				names = append(names, name)
			}
			sort.Strings(names)

			var out []routeEntry
			for _, name := range names {
				for _, r := range serviceRoutes[name] {
					ep, err := datamall.ResolveEndpoint(cfg.Host, cfg.Version, r)
					if err != nil {
						return err
					}
					out = append(out, routeEntry{Service: name, Route: string(r), Endpoint: ep.String()})
				}
			}
			return emit(cmd.OutOrStdout(), out, o.output, o.query)
		},
	}
}

func configCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			cfg.APIKey = security.Mask(cfg.APIKey)

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/datamall-go/datamall"
)

// Exit codes by failure kind.
const (
	exitOK        = 0
	exitUsage     = 1
	exitResolve   = 2
	exitUpstream  = 3
	exitTransport = 4
	exitDecode    = 5
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	stop()
	os.Exit(exitCode(err))
}

type rootOptions struct {
	config  string
	debug   bool
	async   bool
	timeout time.Duration
	output  string
	query   string

	// newQuerier is replaced in tests.
	newQuerier func(cmd *cobra.Command, o *rootOptions) (datamall.QueryCloser, error)
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{newQuerier: newClient}

	cmd := &cobra.Command{
		Use:           "datamall",
		Short:         "Query the LTA DataMall transit APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&o.config, "config", "c", "", "YAML config file (optional; DATAMALL_* env vars override it)")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "log requests to stderr")
	cmd.PersistentFlags().BoolVar(&o.async, "async", false, "use the async transport")
	cmd.PersistentFlags().DurationVar(&o.timeout, "timeout", 0, "per-request timeout (overrides config)")
	cmd.PersistentFlags().StringVarP(&o.output, "output", "o", "json", "Output format: json|compact")
	cmd.PersistentFlags().StringVarP(&o.query, "query", "q", "", "JSONPath applied to the result, e.g. $.Services[*].ServiceNo")

	cmd.AddCommand(
		busCmd(o),
		trainCmd(o),
		trafficCmd(o),
		taxiCmd(o),
		crowdCmd(o),
		facilityCmd(o),
		geoCmd(o),
		routesCmd(o),
		configCmd(o),
	)
	return cmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	if !o.debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *rootOptions) loadConfig() (datamall.Config, error) {
	cfg, err := datamall.LoadConfig(o.config)
	if err != nil {
		return datamall.Config{}, err
	}
	if o.async {
		cfg.Mode = datamall.ModeAsync.String()
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	return cfg, nil
}

func newClient(cmd *cobra.Command, o *rootOptions) (datamall.QueryCloser, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := append(cfg.Options(), datamall.WithLogger(o.logger(cmd.ErrOrStderr())))
	return datamall.New(opts...)
}

// call runs fn against a fresh client and prints its result.
func (o *rootOptions) call(cmd *cobra.Command, fn func(ctx context.Context, q datamall.Querier) (any, error)) error {
	q, err := o.newQuerier(cmd, o)
	if err != nil {
		return err
	}
	defer q.Close()

	v, err := fn(cmd.Context(), q)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), v, o.output, o.query)
}

// pagedCmd builds a command for a list endpoint that accepts --skip.
func pagedCmd(o *rootOptions, use, short string, fn func(ctx context.Context, q datamall.Querier, skip int) (any, error)) *cobra.Command {
	var skip int
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if skip < 0 {
				return fmt.Errorf("--skip cannot be negative")
			}
			return o.call(cmd, func(ctx context.Context, q datamall.Querier) (any, error) {
				return fn(ctx, q, skip)
			})
		},
	}
	c.Flags().IntVar(&skip, "skip", 0, "Records to skip; the service returns 500 per call")
	return c
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var e *datamall.Error
	if !errors.As(err, &e) {
		return exitUsage
	}
	switch e.Kind {
	case datamall.KindResolve:
		return exitResolve
	case datamall.KindUpstream:
		return exitUpstream
	case datamall.KindTransport:
		return exitTransport
	case datamall.KindDecode:
		return exitDecode
	default:
		return exitUsage
	}
}

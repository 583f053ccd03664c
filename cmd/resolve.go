package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/maplink/internal/config"
	"github.com/sells-group/maplink/internal/pacing"
	"github.com/sells-group/maplink/internal/pipeline"
	"github.com/sells-group/maplink/internal/resolve"
	"github.com/sells-group/maplink/internal/table"
)

var (
	resolveInput  string
	resolveOutput string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Add coordinates to every row of a property table",
	Long: `Reads the input table, resolves each row's map URL one at a time and
writes the output table once every row has been processed.

Rows with an empty map location are skipped. Rows whose URL cannot be
resolved, or whose resolved URL holds no @lat,lng pin, keep empty
coordinates. A missing required column aborts the run before any request
is made and before the output file is created.

Examples:
  # Defaults: locations.csv -> coordinates.csv
  maplink resolve

  # Spreadsheet in, spreadsheet out
  maplink resolve --input listings.xlsx --output listings-geo.xlsx`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := interruptContext(cmd.Context())
		defer stop()

		if resolveInput != "" {
			cfg.Input.Path = resolveInput
		}
		if resolveOutput != "" {
			cfg.Output.Path = resolveOutput
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := zap.L().With(zap.String("run_id", uuid.New().String()))
		opts := tableOptions(cfg)

		log.Info("reading input table", zap.String("path", cfg.Input.Path))
		tbl, err := table.Load(cfg.Input.Path, opts)
		if err != nil {
			return eris.Wrap(err, "resolve: load input")
		}

		pacer, err := pacing.FromConfig(cfg.Pacing.Mode, cfg.Pacing.Delay())
		if err != nil {
			return err
		}

		proc := pipeline.New(newResolver(cfg), pacer, log)
		sum, err := proc.Run(ctx, tbl)
		if err != nil {
			return eris.Wrap(err, "resolve: process rows")
		}

		log.Info("saving results", zap.String("path", cfg.Output.Path))
		if err := table.Write(cfg.Output.Path, tbl, opts); err != nil {
			return eris.Wrap(err, "resolve: write output")
		}

		log.Info("done", sum.Fields()...)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveInput, "input", "", "input table, .csv or .xlsx (default from config: locations.csv)")
	resolveCmd.Flags().StringVar(&resolveOutput, "output", "", "output table, .csv or .xlsx (default from config: coordinates.csv)")
	rootCmd.AddCommand(resolveCmd)
}

// interruptContext returns a context cancelled on SIGINT or SIGTERM, so a run
// stops between rows instead of being killed mid-request.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// newResolver builds the short URL resolver from configuration.
func newResolver(c *config.Config) *resolve.Resolver {
	return resolve.New(resolve.Options{
		UserAgent:    c.HTTP.UserAgent,
		Timeout:      c.HTTP.Timeout(),
		MaxRedirects: c.HTTP.MaxRedirects,
	})
}

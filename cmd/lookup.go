package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/maplink/internal/coords"
)

var lookupExtractOnly bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <map-url>...",
	Short: "Resolve individual map links and print their coordinates",
	Long: `Resolves each argument the same way the resolve command handles a row
and prints one tab-separated line per URL:

  <map-url>  <resolved-url>  <latitude>  <longitude>

Unresolvable URLs and URLs without a pin print empty fields.

Examples:
  maplink lookup https://maps.app.goo.gl/abc123
  maplink lookup --extract-only 'https://www.google.com/maps/@32.75,-97.33,15z'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		r := newResolver(cfg)

		for _, raw := range args {
			resolved := raw
			if !lookupExtractOnly {
				res := r.Resolve(ctx, raw)
				if !res.OK() {
					zap.L().Warn("lookup: failed to expand map url",
						zap.String("map_url", raw),
						zap.String("kind", string(res.Err.Kind)),
						zap.Error(res.Err),
					)
					fmt.Fprintf(out, "%s\t\t\t\n", raw)
					continue
				}
				resolved = res.URL
			}

			pair, _ := coords.Extract(resolved)
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", raw, resolved, pair.Latitude, pair.Longitude)
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupExtractOnly, "extract-only", false, "treat arguments as already-resolved URLs; no network requests")
	rootCmd.AddCommand(lookupCmd)
}

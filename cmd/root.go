package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/maplink/internal/config"
	"github.com/sells-group/maplink/internal/table"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "maplink",
	Short: "Resolve shortened map links into coordinates",
	Long:  "Reads a property table, expands each shortened map URL by following its redirects, extracts the @lat,lng pin from the final URL and writes the table back out with Latitude and Longitude columns.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// tableOptions maps configuration onto table read/write options.
func tableOptions(c *config.Config) table.Options {
	return table.Options{
		PropertyIDColumn: c.Input.PropertyIDColumn,
		MapURLColumn:     c.Input.MapURLColumn,
		LatitudeColumn:   c.Output.LatitudeColumn,
		LongitudeColumn:  c.Output.LongitudeColumn,
		Sheet:            c.Input.Sheet,
		NullValues:       c.Input.NullValues,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

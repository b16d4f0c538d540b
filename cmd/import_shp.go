package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geo-search/internal/shpimport"
)

var importShpOut string

var importShpCmd = &cobra.Command{
	Use:   "import-shp <file.shp>",
	Short: "Convert a shapefile into a .geojson file in the data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := importShpOut
		if out == "" {
			out = filepath.Join(cfg.Data.Dir, shpimport.OutputName(args[0]))
		}

		stats, err := shpimport.Convert(args[0], out)
		if err != nil {
			return eris.Wrap(err, "import shapefile")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✔  Wrote %s with %d features (%d skipped)\n", out, stats.Features, stats.Skipped)
		return nil
	},
}

func init() {
	importShpCmd.Flags().StringVar(&importShpOut, "out", "", "output path (default <data.dir>/<name>.geojson)")
	rootCmd.AddCommand(importShpCmd)
}

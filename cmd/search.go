package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchFormat string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Load the dataset and print the point features whose title matches query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchFormat != "json" && searchFormat != "geojson" {
			return eris.Errorf("unknown format %q (want json or geojson)", searchFormat)
		}
		if err := cfg.Validate("search"); err != nil {
			return err
		}

		app := newApp(cfg)
		if err := loadApp(cmd.Context(), app, cfg.Load); err != nil {
			return eris.Wrap(err, "load dataset")
		}

		var query string
		if len(args) > 0 {
			query = args[0]
		}
		res, ok := app.Search(query)
		if !ok {
			return eris.New("dataset not loaded")
		}
		zap.L().Debug("search complete",
			zap.String("query", res.Query),
			zap.Int("matches", len(res.Layers)),
		)

		var out any = res
		if searchFormat == "geojson" {
			out = res.Features()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "output format: json (render instructions) or geojson")
	rootCmd.AddCommand(searchCmd)
}

package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geo-search/internal/manifest"
)

var (
	manifestDir    string
	manifestPrefix string
	manifestOut    string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write manifest.json listing the .geojson files of the data directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := manifestDir
		if dir == "" {
			dir = cfg.Data.Dir
		}
		prefix := manifestPrefix
		if prefix == "" {
			prefix = cfg.Data.Prefix
		}
		out := manifestOut
		if out == "" {
			out = cfg.Data.Manifest
		}
		cfg.Data.Dir, cfg.Data.Prefix, cfg.Data.Manifest = dir, prefix, out
		if err := cfg.Validate("manifest"); err != nil {
			return err
		}

		path, files, err := manifest.Regenerate(dir, prefix, out)
		if err != nil {
			return eris.Wrap(err, "generate manifest")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✔  Wrote %s with %d files\n", path, len(files))
		return nil
	},
}

func init() {
	manifestCmd.Flags().StringVar(&manifestDir, "dir", "", "data directory to scan (default from config)")
	manifestCmd.Flags().StringVar(&manifestPrefix, "prefix", "", "prefix for each manifest entry (default from config)")
	manifestCmd.Flags().StringVar(&manifestOut, "out", "", "manifest file name inside the data directory (default from config)")
	rootCmd.AddCommand(manifestCmd)
}

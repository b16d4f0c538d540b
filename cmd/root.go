package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geo-search/internal/config"
)

var cfg *config.Config

// Persistent overrides applied on top of config.yaml and GEOSEARCH_* env.
var (
	flagLogLevel  string
	flagLogFormat string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "geosearch",
	Short: "GeoJSON manifest generator and map search",
	Long:  "Lists GeoJSON files into a manifest, loads and merges every listed file, and searches point features by title on an interactive map.",
	// Usage is for flag mistakes, not for load or I/O failures.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyOverrides(c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.L().Debug("config loaded",
			zap.String("command", cmd.Name()),
			zap.String("data_dir", cfg.Data.Dir),
			zap.String("base_url", cfg.Load.BaseURL),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func applyOverrides(c *config.Config) {
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		c.Log.Format = flagLogFormat
	}
	if flagDataDir != "" {
		c.Data.Dir = flagDataDir
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: json or console (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "GeoJSON data directory (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

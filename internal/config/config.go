package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Load    LoadConfig    `yaml:"load" mapstructure:"load"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Basemap BasemapConfig `yaml:"basemap" mapstructure:"basemap"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the GeoJSON data directory and its manifest.
type DataConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
	Manifest string `yaml:"manifest" mapstructure:"manifest"`
}

// LoadConfig configures the manifest + data file fetch pipeline.
type LoadConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	ManifestURL string  `yaml:"manifest_url" mapstructure:"manifest_url"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the per-load timeout. Zero means no timeout.
func (c LoadConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// MapConfig holds the initial map view.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng float64 `yaml:"center_lng" mapstructure:"center_lng"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
	MaxZoom   int     `yaml:"max_zoom" mapstructure:"max_zoom"`
	Width     int     `yaml:"width" mapstructure:"width"`
	Height    int     `yaml:"height" mapstructure:"height"`
}

// BasemapConfig holds the remote vector basemap style and access key.
type BasemapConfig struct {
	Style  string `yaml:"style" mapstructure:"style"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// SearchConfig configures keyword matching.
type SearchConfig struct {
	TitleField string `yaml:"title_field" mapstructure:"title_field"`
}

// ServerConfig configures the map page server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.prefix", "data/")
	v.SetDefault("data.manifest", "manifest.json")
	v.SetDefault("load.base_url", ".")
	v.SetDefault("load.manifest_url", "data/manifest.json")
	v.SetDefault("load.concurrency", 0)
	v.SetDefault("load.max_retries", 1)
	v.SetDefault("load.timeout_secs", 0)
	v.SetDefault("load.rate_limit", 20)
	v.SetDefault("load.user_agent", "geo-search/1.0")
	v.SetDefault("map.center_lat", 39.0)
	v.SetDefault("map.center_lng", -98.0)
	v.SetDefault("map.zoom", 5)
	v.SetDefault("map.max_zoom", 18)
	v.SetDefault("map.width", 1024)
	v.SetDefault("map.height", 768)
	v.SetDefault("basemap.style", "ArcGIS:Topographic")
	v.SetDefault("basemap.api_key", "")
	v.SetDefault("search.title_field", "Title")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// Validate checks the settings required by the given command mode
// ("manifest", "search", "serve").
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "manifest":
		if c.Data.Dir == "" {
			problems = append(problems, "data.dir is required")
		}
		if c.Data.Manifest == "" {
			problems = append(problems, "data.manifest is required")
		}
		return joinProblems(problems)
	case "search", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Load.ManifestURL == "" {
		problems = append(problems, "load.manifest_url is required")
	}
	if c.Load.Concurrency < 0 {
		problems = append(problems, "load.concurrency must be >= 0")
	}
	if c.Load.MaxRetries < 1 {
		problems = append(problems, "load.max_retries must be >= 1")
	}
	if c.Load.TimeoutSecs < 0 {
		problems = append(problems, "load.timeout_secs must be >= 0")
	}
	if c.Map.MaxZoom < 0 {
		problems = append(problems, "map.max_zoom must be >= 0")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > c.Map.MaxZoom {
		problems = append(problems, "map.zoom must be between 0 and map.max_zoom")
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		problems = append(problems, "map.width and map.height must be > 0")
	}
	if c.Search.TitleField == "" {
		problems = append(problems, "search.title_field is required")
	}
	if mode == "serve" && c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}

	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return eris.Errorf("config: %s", strings.Join(problems, "; "))
}

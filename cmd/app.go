package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/geo-search/internal/config"
	"github.com/sells-group/geo-search/internal/fetcher"
	"github.com/sells-group/geo-search/internal/mapapp"
	"github.com/sells-group/geo-search/internal/mapview"
)

// newFetcher routes manifest and data downloads by scheme.
func newFetcher(c config.LoadConfig) *fetcher.Router {
	return &fetcher.Router{
		HTTP: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  c.UserAgent,
			Timeout:    c.Timeout(),
			MaxRetries: c.MaxRetries,
			RateLimit:  rate.Limit(c.RateLimit),
		}),
		FTP:  fetcher.NewFTPFetcher(fetcher.FTPOptions{}),
		File: fetcher.NewFileFetcher(),
	}
}

func newLoader(c config.LoadConfig) *mapapp.Loader {
	return mapapp.NewLoader(newFetcher(c), mapapp.LoaderOptions{
		BaseURL:     c.BaseURL,
		ManifestURL: c.ManifestURL,
		Concurrency: c.Concurrency,
	})
}

func newApp(c *config.Config) *mapapp.App {
	return mapapp.New(mapapp.Options{
		View: mapview.Options{
			Center:  mapview.LatLng{Lat: c.Map.CenterLat, Lng: c.Map.CenterLng},
			Zoom:    c.Map.Zoom,
			MaxZoom: c.Map.MaxZoom,
			Size:    mapview.Size{Width: c.Map.Width, Height: c.Map.Height},
		},
		Basemap:    mapview.Basemap{Style: c.Basemap.Style, APIKey: c.Basemap.APIKey},
		TitleField: c.Search.TitleField,
	})
}

// loadApp loads the dataset into app, bounded by the configured timeout.
func loadApp(ctx context.Context, app *mapapp.App, c config.LoadConfig) error {
	if d := c.Timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	start := time.Now()
	if err := app.Load(ctx, newLoader(c)); err != nil {
		return err
	}
	zap.L().Info("dataset ready",
		zap.String("base_url", c.BaseURL),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

package mapapp

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/geo-search/internal/feature"
	"github.com/sells-group/geo-search/internal/fetcher"
	"github.com/sells-group/geo-search/internal/manifest"
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// BaseURL is what the manifest and its entries resolve against: an
	// http(s)/ftp URL or a local directory.
	BaseURL     string
	ManifestURL string
	// Concurrency caps simultaneous data file fetches. Zero means no cap.
	Concurrency int
}

// Loader fetches the manifest and every data file it lists, then merges
// them into one collection.
type Loader struct {
	fetcher fetcher.Fetcher
	opts    LoaderOptions
}

// NewLoader creates a Loader.
func NewLoader(f fetcher.Fetcher, opts LoaderOptions) *Loader {
	if opts.ManifestURL == "" {
		opts.ManifestURL = manifest.DefaultPrefix + manifest.DefaultFileName
	}
	return &Loader{fetcher: f, opts: opts}
}

// Load returns the merged collection in manifest order. Any failed fetch or
// decode aborts the whole load and cancels the fetches still running.
func (l *Loader) Load(ctx context.Context) (*feature.Collection, error) {
	entries, err := l.readManifest(ctx)
	if err != nil {
		return nil, err
	}

	collections := make([]*feature.Collection, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Concurrency > 0 {
		g.SetLimit(l.opts.Concurrency)
	}
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			c, err := l.fetchCollection(gctx, entry)
			if err != nil {
				return err
			}
			collections[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := feature.Merge(collections...)
	zap.L().Info("mapapp: dataset loaded",
		zap.Int("files", len(entries)),
		zap.Int("features", len(merged.Features)),
	)
	return merged, nil
}

func (l *Loader) readManifest(ctx context.Context) ([]string, error) {
	u, err := fetcher.Resolve(l.opts.BaseURL, l.opts.ManifestURL)
	if err != nil {
		return nil, eris.Wrap(err, "mapapp: resolve manifest")
	}
	body, err := l.fetcher.Download(ctx, u)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: fetch manifest %s", u)
	}
	defer body.Close() //nolint:errcheck

	entries, err := manifest.Read(ctx, body)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: parse manifest %s", u)
	}
	return entries, nil
}

func (l *Loader) fetchCollection(ctx context.Context, entry string) (*feature.Collection, error) {
	u, err := fetcher.Resolve(l.opts.BaseURL, entry)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: resolve %q", entry)
	}
	body, err := l.fetcher.Download(ctx, u)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: fetch %s", u)
	}
	data, err := fetcher.ReadAll(body)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: read %s", u)
	}
	c, err := feature.Decode(data)
	if err != nil {
		return nil, eris.Wrapf(err, "mapapp: parse %s", u)
	}
	zap.L().Debug("mapapp: fetched collection", zap.String("url", u), zap.Int("features", len(c.Features)))
	return c, nil
}

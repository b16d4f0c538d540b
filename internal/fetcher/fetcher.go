package fetcher

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetcher defines the interface for downloading manifest and data files.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Router dispatches downloads by URL scheme: http(s) to HTTP, ftp to FTP and
// file or scheme-less paths to the local filesystem.
type Router struct {
	HTTP Fetcher
	FTP  Fetcher
	File Fetcher
}

// Download implements Fetcher.
func (r *Router) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	f, err := r.route(rawURL)
	if err != nil {
		return nil, err
	}
	return f.Download(ctx, rawURL)
}

func (r *Router) route(rawURL string) (Fetcher, error) {
	var f Fetcher
	switch Scheme(rawURL) {
	case "http", "https":
		f = r.HTTP
	case "ftp":
		f = r.FTP
	case "", "file":
		f = r.File
	default:
		return nil, eris.Errorf("fetch: unsupported scheme in %q", rawURL)
	}
	if f == nil {
		return nil, eris.Errorf("fetch: no fetcher configured for %q", rawURL)
	}
	return f, nil
}

// Scheme returns the lower-cased URL scheme of rawURL, or "" for a plain
// filesystem path. Single-letter schemes are treated as Windows drive letters.
func Scheme(rawURL string) string {
	i := strings.Index(rawURL, "://")
	if i <= 1 {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

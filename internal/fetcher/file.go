package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FileFetcher reads local files. It accepts plain paths and file:// URLs.
type FileFetcher struct{}

// NewFileFetcher creates a FileFetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Download opens the file at rawURL.
func (f *FileFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "file: context cancelled")
	}

	p := rawURL
	if Scheme(rawURL) == "file" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, eris.Wrap(err, "file: parse url")
		}
		p = filepath.FromSlash(u.Path)
	}

	file, err := os.Open(p)
	if err != nil {
		return nil, eris.Wrapf(err, "file: open %s", p)
	}
	return file, nil
}

package fetcher

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	name string
	urls []string
}

func (s *stubFetcher) Download(_ context.Context, url string) (io.ReadCloser, error) {
	s.urls = append(s.urls, url)
	return io.NopCloser(strings.NewReader(s.name)), nil
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "http", Scheme("http://example.com/a"))
	assert.Equal(t, "https", Scheme("HTTPS://example.com/a"))
	assert.Equal(t, "ftp", Scheme("ftp://example.com/a"))
	assert.Equal(t, "file", Scheme("file:///tmp/a"))
	assert.Equal(t, "", Scheme("data/a.geojson"))
	assert.Equal(t, "", Scheme("/srv/data/a.geojson"))
	assert.Equal(t, "", Scheme(`C:\data\a.geojson`))
}

func TestRouter_DispatchesByScheme(t *testing.T) {
	h := &stubFetcher{name: "http"}
	f := &stubFetcher{name: "ftp"}
	l := &stubFetcher{name: "file"}
	r := &Router{HTTP: h, FTP: f, File: l}

	for url, want := range map[string]string{
		"https://maps.example.com/data/a.geojson": "http",
		"http://maps.example.com/data/a.geojson":  "http",
		"ftp://ftp.example.com/data/a.geojson":    "ftp",
		"file:///srv/data/a.geojson":              "file",
		"data/a.geojson":                          "file",
	} {
		body, err := r.Download(context.Background(), url)
		require.NoError(t, err, url)
		data, err := ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, want, string(data), url)
	}
	assert.Len(t, h.urls, 2)
	assert.Len(t, f.urls, 1)
	assert.Len(t, l.urls, 2)
}

func TestRouter_UnsupportedScheme(t *testing.T) {
	r := &Router{File: &stubFetcher{}}
	_, err := r.Download(context.Background(), "s3://bucket/a.geojson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestRouter_MissingFetcher(t *testing.T) {
	r := &Router{File: &stubFetcher{}}
	_, err := r.Download(context.Background(), "ftp://ftp.example.com/a.geojson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fetcher configured")
}

func TestFileFetcher_Download(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.geojson")
	require.NoError(t, writeTestFile(path, `{"type":"FeatureCollection"}`))

	f := NewFileFetcher()
	for _, url := range []string{path, "file://" + filepath.ToSlash(path)} {
		body, err := f.Download(context.Background(), url)
		require.NoError(t, err, url)
		data, err := ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"FeatureCollection"}`, string(data))
	}
}

func TestFileFetcher_Missing(t *testing.T) {
	_, err := NewFileFetcher().Download(context.Background(), filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file: open")
}

func TestFileFetcher_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileFetcher().Download(ctx, "data/a.geojson")
	require.Error(t, err)
}

// Package manifest lists the GeoJSON files of a data directory and reads the
// resulting manifest back.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geo-search/internal/fetcher"
)

const (
	// Extension is matched case-insensitively against file names.
	Extension = ".geojson"
	// DefaultPrefix is prepended to every listed file name.
	DefaultPrefix = "data/"
	// DefaultFileName is the manifest file written inside the data directory.
	DefaultFileName = "manifest.json"
)

// Generate returns prefix+name for every entry of dir whose name ends with
// Extension, in directory-listing order.
func Generate(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "manifest: read dir %s", dir)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(strings.ToLower(e.Name()), Extension) {
			files = append(files, prefix+e.Name())
		}
	}
	return files, nil
}

// Encode renders the manifest as a two-space indented JSON array.
func Encode(files []string) ([]byte, error) {
	if files == nil {
		files = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(files); err != nil {
		return nil, eris.Wrap(err, "manifest: encode")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write replaces dir/name with the encoded manifest and returns its path.
func Write(dir, name string, files []string) (string, error) {
	data, err := Encode(files)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "manifest: write %s", path)
	}
	zap.L().Info("manifest: written", zap.String("path", path), zap.Int("files", len(files)))
	return path, nil
}

// Regenerate lists dir and overwrites its manifest file in one step.
func Regenerate(dir, prefix, name string) (string, []string, error) {
	files, err := Generate(dir, prefix)
	if err != nil {
		return "", nil, err
	}
	path, err := Write(dir, name, files)
	if err != nil {
		return "", nil, err
	}
	return path, files, nil
}

// Read decodes a manifest JSON array of paths.
func Read(ctx context.Context, r io.Reader) ([]string, error) {
	ch, errCh := fetcher.DecodeJSONArray[string](ctx, r)

	var files []string
	for f := range ch {
		files = append(files, f)
	}
	for err := range errCh {
		if err != nil {
			return nil, eris.Wrap(err, "manifest: read")
		}
	}
	return files, nil
}

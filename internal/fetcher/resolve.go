package fetcher

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Resolve resolves ref against base. A URL base resolves like a browser
// relative link; any other base is a local directory. Absolute refs are
// returned unchanged.
func Resolve(base, ref string) (string, error) {
	if ref == "" {
		return "", eris.New("fetch: empty path")
	}
	if Scheme(ref) != "" {
		return ref, nil
	}

	switch Scheme(base) {
	case "":
		if filepath.IsAbs(ref) {
			return ref, nil
		}
		if base == "" {
			base = "."
		}
		return filepath.Join(base, filepath.FromSlash(ref)), nil
	case "file":
		u, err := url.Parse(base)
		if err != nil {
			return "", eris.Wrapf(err, "fetch: parse base %s", base)
		}
		return filepath.Join(filepath.FromSlash(u.Path), filepath.FromSlash(ref)), nil
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: parse base %s", base)
	}
	// Treat a base without a trailing slash as a directory, not a page.
	if !strings.HasSuffix(u.Path, "/") && path.Ext(u.Path) == "" {
		u.Path += "/"
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: parse path %s", ref)
	}
	return u.ResolveReference(r).String(), nil
}

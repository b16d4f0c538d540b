// Package shpimport converts ESRI shapefiles into GeoJSON feature
// collections that the manifest generator can list.
package shpimport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/geo-search/internal/feature"
	"github.com/sells-group/geo-search/internal/manifest"
)

// Stats summarizes one conversion.
type Stats struct {
	Features int
	Skipped  int
}

// Read converts every record of the shapefile at shpPath. DBF attributes
// become properties in field order; blank attributes are omitted.
func Read(shpPath string) (*feature.Collection, Stats, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, Stats{}, eris.Wrapf(err, "shpimport: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	c := &feature.Collection{Type: feature.CollectionType}
	var stats Stats
	for reader.Next() {
		_, shape := reader.Shape()

		g := toGeom(shape)
		if g == nil {
			stats.Skipped++
			continue
		}

		f := &feature.Feature{Geometry: g, GeometryType: geometryType(g)}
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				continue
			}
			prop, err := feature.NewProperty(name, val)
			if err != nil {
				return nil, stats, err
			}
			f.Properties = append(f.Properties, prop)
		}
		c.Features = append(c.Features, f)
	}
	if err := reader.Err(); err != nil {
		return nil, stats, eris.Wrapf(err, "shpimport: read shapefile %s", shpPath)
	}
	stats.Features = len(c.Features)

	if stats.Skipped > 0 {
		zap.L().Debug("shpimport: skipped shapefile records",
			zap.String("path", shpPath),
			zap.Int("skipped", stats.Skipped),
		)
	}
	return c, stats, nil
}

// OutputName returns the .geojson file name for a shapefile.
func OutputName(shpPath string) string {
	base := filepath.Base(shpPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + manifest.Extension
}

// Convert reads shpPath and writes the collection to outPath.
func Convert(shpPath, outPath string) (Stats, error) {
	c, stats, err := Read(shpPath)
	if err != nil {
		return stats, err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return stats, eris.Wrap(err, "shpimport: encode geojson")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return stats, eris.Wrapf(err, "shpimport: write %s", outPath)
	}
	zap.L().Info("shpimport: converted shapefile",
		zap.String("shapefile", shpPath),
		zap.String("output", outPath),
		zap.Int("features", stats.Features),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func geometryType(g geom.T) string {
	switch g.(type) {
	case *geom.MultiPoint:
		return feature.TypeMultiPoint
	case *geom.MultiLineString:
		return feature.TypeMultiLineString
	case *geom.MultiPolygon:
		return feature.TypeMultiPolygon
	}
	return feature.TypePoint
}

// Package feature decodes GeoJSON feature collections into go-geom geometries
// with property bags that keep their document order.
package feature

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// CollectionType is the GeoJSON type marker of a feature collection.
const CollectionType = "FeatureCollection"

// GeoJSON geometry type names.
const (
	TypePoint              = "Point"
	TypeMultiPoint         = "MultiPoint"
	TypeLineString         = "LineString"
	TypeMultiLineString    = "MultiLineString"
	TypePolygon            = "Polygon"
	TypeMultiPolygon       = "MultiPolygon"
	TypeGeometryCollection = "GeometryCollection"
)

// Feature pairs a geometry with an ordered property bag.
type Feature struct {
	// GeometryType is the GeoJSON geometry type, empty for a null geometry.
	GeometryType string
	// Geometry is nil when the geometry is null or could not be decoded.
	Geometry   geom.T
	Properties Properties
}

// Collection is an ordered sequence of features.
type Collection struct {
	Type     string
	Features []*Feature
}

// IsPoint reports whether the feature carries a Point or MultiPoint geometry.
func (f *Feature) IsPoint() bool {
	if f == nil || f.Geometry == nil {
		return false
	}
	switch f.Geometry.(type) {
	case *geom.Point, *geom.MultiPoint:
		return true
	}
	return false
}

// Coords returns the [x, y] pairs of a Point or MultiPoint geometry.
func (f *Feature) Coords() [][2]float64 {
	if !f.IsPoint() {
		return nil
	}
	flat := f.Geometry.FlatCoords()
	stride := f.Geometry.Stride()
	if stride < 2 {
		return nil
	}
	out := make([][2]float64, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		out = append(out, [2]float64{flat[i], flat[i+1]})
	}
	return out
}

type wireCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type wireFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// Decode parses a GeoJSON feature collection. A missing features array
// yields an empty collection; a null document is an error.
func Decode(data []byte) (*Collection, error) {
	if isNull(data) {
		return nil, eris.New("feature: decode collection: document is null or empty")
	}
	var wc wireCollection
	if err := json.Unmarshal(data, &wc); err != nil {
		return nil, eris.Wrap(err, "feature: decode collection")
	}

	c := &Collection{
		Type:     wc.Type,
		Features: make([]*Feature, 0, len(wc.Features)),
	}
	for i, raw := range wc.Features {
		f, err := decodeFeature(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "feature: decode feature %d", i)
		}
		c.Features = append(c.Features, f)
	}
	return c, nil
}

func decodeFeature(raw json.RawMessage) (*Feature, error) {
	var wf wireFeature
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, err
	}

	f := &Feature{Properties: ParseProperties(wf.Properties)}
	if isNull(wf.Geometry) {
		return f, nil
	}

	f.GeometryType = gjson.GetBytes(wf.Geometry, "type").String()
	var g geom.T
	if err := geojson.Unmarshal(wf.Geometry, &g); err != nil {
		zap.L().Debug("feature: skipping undecodable geometry",
			zap.String("type", f.GeometryType),
			zap.Error(err),
		)
		return f, nil
	}
	f.Geometry = g
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Merge concatenates the features of every collection in argument order.
func Merge(collections ...*Collection) *Collection {
	n := 0
	for _, c := range collections {
		if c != nil {
			n += len(c.Features)
		}
	}
	merged := &Collection{Type: CollectionType, Features: make([]*Feature, 0, n)}
	for _, c := range collections {
		if c == nil {
			continue
		}
		merged.Features = append(merged.Features, c.Features...)
	}
	return merged
}

// MarshalJSON encodes the feature as GeoJSON with properties in their
// original order.
func (f *Feature) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"Feature","geometry":`)
	if f.Geometry == nil {
		buf.WriteString("null")
	} else {
		g, err := geojson.Marshal(f.Geometry)
		if err != nil {
			return nil, eris.Wrap(err, "feature: encode geometry")
		}
		buf.Write(g)
	}
	buf.WriteString(`,"properties":`)
	props, err := f.Properties.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(props)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the collection as a GeoJSON FeatureCollection.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"FeatureCollection","features":[`)
	for i, f := range c.Features {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := f.MarshalJSON()
		if err != nil {
			return nil, eris.Wrapf(err, "feature: encode feature %d", i)
		}
		buf.Write(b)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

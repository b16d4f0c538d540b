package feature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-97.5, 35.4]},
     "properties": {"Title": "Oklahoma City", "link": "http://okc.example", "tags": ["a", "b"]}},
    {"type": "Feature", "geometry": {"type": "MultiPoint", "coordinates": [[-96.0, 36.1], [-95.9, 36.2]]},
     "properties": {"Title": "Tulsa"}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
     "properties": {"Title": "Route"}},
    {"type": "Feature", "geometry": null, "properties": null}
  ]
}`

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)

	assert.Equal(t, CollectionType, c.Type)
	require.Len(t, c.Features, 4)

	assert.Equal(t, TypePoint, c.Features[0].GeometryType)
	assert.IsType(t, &geom.Point{}, c.Features[0].Geometry)
	assert.Equal(t, TypeMultiPoint, c.Features[1].GeometryType)
	assert.IsType(t, &geom.MultiPoint{}, c.Features[1].Geometry)
	assert.Equal(t, TypeLineString, c.Features[2].GeometryType)

	assert.Empty(t, c.Features[3].GeometryType)
	assert.Nil(t, c.Features[3].Geometry)
	assert.Empty(t, c.Features[3].Properties)
}

func TestDecode_MissingFeatures(t *testing.T) {
	c, err := Decode([]byte(`{"type":"FeatureCollection"}`))
	require.NoError(t, err)
	assert.Empty(t, c.Features)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"type":"FeatureCollection","features":[`))
	assert.Error(t, err)
}

func TestDecode_UnknownGeometryKept(t *testing.T) {
	c, err := Decode([]byte(`{"features":[{"type":"Feature","geometry":{"type":"Circle","radius":3},"properties":{"Title":"x"}}]}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, "Circle", c.Features[0].GeometryType)
	assert.Nil(t, c.Features[0].Geometry)
	assert.False(t, c.Features[0].IsPoint())
}

func TestFeature_IsPointAndCoords(t *testing.T) {
	c, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)

	assert.True(t, c.Features[0].IsPoint())
	assert.Equal(t, [][2]float64{{-97.5, 35.4}}, c.Features[0].Coords())

	assert.True(t, c.Features[1].IsPoint())
	assert.Equal(t, [][2]float64{{-96.0, 36.1}, {-95.9, 36.2}}, c.Features[1].Coords())

	assert.False(t, c.Features[2].IsPoint())
	assert.Nil(t, c.Features[2].Coords())
	assert.False(t, c.Features[3].IsPoint())
}

func TestMerge_OrderAndCount(t *testing.T) {
	a, err := Decode([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":null,"properties":{"n":1}},
		{"type":"Feature","geometry":null,"properties":{"n":2}}]}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"type":"FeatureCollection"}`))
	require.NoError(t, err)
	c, err := Decode([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":null,"properties":{"n":3}}]}`))
	require.NoError(t, err)

	merged := Merge(a, b, nil, c)
	assert.Equal(t, CollectionType, merged.Type)
	require.Len(t, merged.Features, 3)
	for i, f := range merged.Features {
		n, ok := f.Properties.Get("n")
		require.True(t, ok)
		assert.Equal(t, float64(i+1), n.Num)
	}
}

func TestCollection_MarshalJSONRoundTrip(t *testing.T) {
	c, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)

	b, err := json.Marshal(c)
	require.NoError(t, err)

	again, err := Decode(b)
	require.NoError(t, err)
	require.Len(t, again.Features, len(c.Features))
	assert.Equal(t, TypePoint, again.Features[0].GeometryType)
	assert.Equal(t, c.Features[0].Coords(), again.Features[0].Coords())
	assert.Equal(t, "Oklahoma City", again.Features[0].Properties.Text("Title"))
	assert.Nil(t, again.Features[3].Geometry)
}

func TestDecode_NullDocument(t *testing.T) {
	for _, input := range []string{`null`, ` null `, ``} {
		c, err := Decode([]byte(input))
		require.Error(t, err, "input %q", input)
		assert.Nil(t, c)
	}
}

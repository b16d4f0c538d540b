package shpimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-search/internal/feature"
)

type pointRecord struct {
	x, y  float64
	name  string
	state string
}

func writePointShapefile(t *testing.T, records []pointRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lakes.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("Title", 32),
		shp.StringField("STATE", 8),
	}))
	for _, r := range records {
		row := w.Write(&shp.Point{X: r.x, Y: r.y})
		require.NoError(t, w.WriteAttribute(int(row), 0, r.name))
		require.NoError(t, w.WriteAttribute(int(row), 1, r.state))
	}
	w.Close()
	return path
}

func TestRead_Points(t *testing.T) {
	path := writePointShapefile(t, []pointRecord{
		{x: -97.58, y: 35.57, name: "Lake Hefner", state: "OK"},
		{x: -95.95, y: 36.15, name: "Keystone", state: ""},
	})

	c, stats, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Features)
	assert.Zero(t, stats.Skipped)
	require.Len(t, c.Features, 2)

	first := c.Features[0]
	assert.Equal(t, feature.TypePoint, first.GeometryType)
	assert.True(t, first.IsPoint())
	assert.Equal(t, [][2]float64{{-97.58, 35.57}}, first.Coords())
	require.Len(t, first.Properties, 2)
	assert.Equal(t, "Title", first.Properties[0].Name)
	assert.Equal(t, "Lake Hefner", first.Properties.Text("Title"))
	assert.Equal(t, "OK", first.Properties.Text("STATE"))

	// Blank attributes are omitted.
	second := c.Features[1]
	require.Len(t, second.Properties, 1)
	_, ok := second.Properties.Get("STATE")
	assert.False(t, ok)
}

func TestRead_MissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.shp"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shpimport: open shapefile")
}

func TestConvert_WritesLoadableGeoJSON(t *testing.T) {
	path := writePointShapefile(t, []pointRecord{
		{x: -97.58, y: 35.57, name: "Lake Hefner", state: "OK"},
	})
	out := filepath.Join(t.TempDir(), OutputName(path))

	stats, err := Convert(path, out)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Features)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	c, err := feature.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, feature.CollectionType, c.Type)
	require.Len(t, c.Features, 1)
	assert.Equal(t, [][2]float64{{-97.58, 35.57}}, c.Features[0].Coords())
	assert.Equal(t, "Lake Hefner", c.Features[0].Properties.Text("Title"))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "lakes.geojson", OutputName("/tmp/in/lakes.shp"))
	assert.Equal(t, "roads.geojson", OutputName("roads.SHP"))
}

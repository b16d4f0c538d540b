package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-search/internal/feature"
)

const lakesGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","geometry":{"type":"Point","coordinates":[-97.58,35.57]},"properties":{"Title":"Lake Hefner"}},
  {"type":"Feature","geometry":{"type":"Point","coordinates":[-96.2,36.15]},"properties":{"Title":"Keystone Lake"}}
]}`

// inTempWorkspace switches to a fresh directory holding data/lakes.geojson.
func inTempWorkspace(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "data", "lakes.geojson"), []byte(lakesGeoJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "data", "notes.txt"), []byte("skip"), 0o644))

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	t.Setenv("GEOSEARCH_LOG_LEVEL", "error")

	oldCfg := cfg
	t.Cleanup(func() { cfg = oldCfg })
	return tmpDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		manifestDir, manifestPrefix, manifestOut = "", "", ""
		searchFormat = "json"
		importShpOut = ""
		flagLogLevel, flagLogFormat, flagDataDir = "", "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestManifestCommand_WritesManifest(t *testing.T) {
	dir := inTempWorkspace(t)

	out, err := execute(t, "manifest")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote data/manifest.json with 1 files")

	b, err := os.ReadFile(filepath.Join(dir, "data", "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"data/lakes.geojson\"\n]", string(b))
}

func TestManifestCommand_MissingDir(t *testing.T) {
	inTempWorkspace(t)

	_, err := execute(t, "manifest", "--dir", "nope")
	assert.Error(t, err)
}

func TestSearchCommand_GeoJSON(t *testing.T) {
	inTempWorkspace(t)
	_, err := execute(t, "manifest")
	require.NoError(t, err)

	out, err := execute(t, "search", "HEFNER", "--format", "geojson")
	require.NoError(t, err)

	c, err := feature.Decode([]byte(out))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, "Lake Hefner", c.Features[0].Properties.Text("Title"))
}

func TestSearchCommand_RenderJSON(t *testing.T) {
	inTempWorkspace(t)
	_, err := execute(t, "manifest")
	require.NoError(t, err)

	out, err := execute(t, "search", "lake")
	require.NoError(t, err)

	var got struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Count)
}

func TestSearchCommand_LoadFailure(t *testing.T) {
	inTempWorkspace(t)

	_, err := execute(t, "search", "lake")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestSearchCommand_BadFormat(t *testing.T) {
	inTempWorkspace(t)

	_, err := execute(t, "search", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestImportShpCommand_ThenSearch(t *testing.T) {
	dir := inTempWorkspace(t)

	shpPath := filepath.Join(dir, "dams.shp")
	w, err := shp.Create(shpPath, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("Title", 32)}))
	row := w.Write(&shp.Point{X: -95.0, Y: 36.0})
	require.NoError(t, w.WriteAttribute(int(row), 0, "Pensacola Dam"))
	w.Close()

	out, err := execute(t, "import-shp", shpPath)
	require.NoError(t, err)
	assert.Contains(t, out, "data/dams.geojson with 1 features")

	_, err = execute(t, "manifest")
	require.NoError(t, err)

	out, err = execute(t, "search", "pensacola", "--format", "geojson")
	require.NoError(t, err)
	c, err := feature.Decode([]byte(out))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Equal(t, [][2]float64{{-95.0, 36.0}}, c.Features[0].Coords())
}

func TestManifestCommand_DataDirFlag(t *testing.T) {
	dir := inTempWorkspace(t)
	other := filepath.Join(dir, "other")
	require.NoError(t, os.Mkdir(other, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(other, "Rivers.GeoJSON"), []byte(lakesGeoJSON), 0o644))

	out, err := execute(t, "manifest", "--data-dir", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote other/manifest.json with 1 files")

	b, err := os.ReadFile(filepath.Join(other, "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"data/Rivers.GeoJSON\"\n]", string(b))
}

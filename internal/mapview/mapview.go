// Package mapview models the map viewport: its default view, the remote
// basemap and fitting the view to a bounding box.
package mapview

import (
	"math"

	"github.com/twpayne/go-geom"
)

const (
	tileSize = 256
	// maxLatitude is the Web-Mercator latitude limit.
	maxLatitude = 85.0511287798
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Options configures a new map view.
type Options struct {
	Center  LatLng
	Zoom    int
	MaxZoom int
	Size    Size
}

// DefaultOptions returns the initial view over the contiguous United States.
func DefaultOptions() Options {
	return Options{
		Center:  LatLng{Lat: 39, Lng: -98},
		Zoom:    5,
		MaxZoom: 18,
		Size:    Size{Width: 1024, Height: 768},
	}
}

// View is a snapshot of the map view. Bounds is nil until the view has been
// fitted to a bounding box.
type View struct {
	Center  LatLng     `json:"center"`
	Zoom    int        `json:"zoom"`
	MaxZoom int        `json:"max_zoom"`
	Bounds  *[2]LatLng `json:"bounds"`
}

// Map is the viewport state of one map.
type Map struct {
	center  LatLng
	zoom    int
	maxZoom int
	size    Size
	bounds  *geom.Bounds
}

// New creates a map view from opts.
func New(opts Options) *Map {
	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		opts.Size = DefaultOptions().Size
	}
	m := &Map{maxZoom: opts.MaxZoom, size: opts.Size}
	m.SetView(opts.Center, opts.Zoom)
	return m
}

// SetView moves the map to center at zoom, clamped to [0, MaxZoom].
func (m *Map) SetView(center LatLng, zoom int) {
	m.center = center
	m.zoom = clampZoom(zoom, m.maxZoom)
	m.bounds = nil
}

// FitBounds centers the view on b at the largest zoom that shows all of it.
// An empty or nil b leaves the view unchanged and reports false.
func (m *Map) FitBounds(b *geom.Bounds) bool {
	if b == nil || b.IsEmpty() {
		return false
	}
	m.center = boundsCenter(b)
	m.zoom = BoundsZoom(b, m.size, m.maxZoom)
	m.bounds = geom.NewBounds(geom.XY).Set(b.Min(0), b.Min(1), b.Max(0), b.Max(1))
	return true
}

// View returns a snapshot of the current view.
func (m *Map) View() View {
	return View{
		Center:  m.center,
		Zoom:    m.zoom,
		MaxZoom: m.maxZoom,
		Bounds:  Corners(m.bounds),
	}
}

// Corners returns the south-west and north-east corners of b, or nil when b
// is nil or empty.
func Corners(b *geom.Bounds) *[2]LatLng {
	if b == nil || b.IsEmpty() {
		return nil
	}
	return &[2]LatLng{
		{Lat: b.Min(1), Lng: b.Min(0)},
		{Lat: b.Max(1), Lng: b.Max(0)},
	}
}

// BoundsZoom returns the largest integer zoom at which the Web-Mercator
// projection of b fits into size, clamped to [0, maxZoom]. A zero-area box
// fits at maxZoom.
func BoundsZoom(b *geom.Bounds, size Size, maxZoom int) int {
	dx := (b.Max(0) - b.Min(0)) / 360
	dy := (mercatorY(b.Max(1)) - mercatorY(b.Min(1))) / (2 * math.Pi)

	zoom := float64(maxZoom)
	if dx > 0 {
		zoom = math.Min(zoom, math.Log2(float64(size.Width)/(tileSize*dx)))
	}
	if dy > 0 {
		zoom = math.Min(zoom, math.Log2(float64(size.Height)/(tileSize*dy)))
	}
	return clampZoom(int(math.Floor(zoom)), maxZoom)
}

func boundsCenter(b *geom.Bounds) LatLng {
	y := (mercatorY(b.Min(1)) + mercatorY(b.Max(1))) / 2
	return LatLng{
		Lat: inverseMercatorY(y),
		Lng: (b.Min(0) + b.Max(0)) / 2,
	}
}

func mercatorY(lat float64) float64 {
	lat = math.Max(-maxLatitude, math.Min(maxLatitude, lat))
	rad := lat * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + rad/2))
}

func inverseMercatorY(y float64) float64 {
	return (2*math.Atan(math.Exp(y)) - math.Pi/2) * 180 / math.Pi
}

func clampZoom(zoom, maxZoom int) int {
	if zoom < 0 {
		return 0
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

package mapapp

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geo-search/internal/feature"
)

// Marker is one rendered point with its popup markup.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
}

// Layer is the rendering of one feature: a single marker for a Point, one
// marker per member for a MultiPoint.
type Layer struct {
	Feature *feature.Feature `json:"-"`
	Markers []Marker         `json:"markers"`
}

// Group is a set of layers added to the cluster in one step.
type Group struct {
	Layers []*Layer
}

// Cluster is the mutable layer group shown on the map.
type Cluster struct {
	groups []*Group
}

// NewCluster returns an empty cluster.
func NewCluster() *Cluster {
	return &Cluster{}
}

// Clear removes every group.
func (c *Cluster) Clear() {
	c.groups = nil
}

// Add appends a group.
func (c *Cluster) Add(g *Group) {
	c.groups = append(c.groups, g)
}

// Layers returns every layer across all groups.
func (c *Cluster) Layers() []*Layer {
	var out []*Layer
	for _, g := range c.groups {
		out = append(out, g.Layers...)
	}
	return out
}

// Len returns the number of layers across all groups.
func (c *Cluster) Len() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.Layers)
	}
	return n
}

// Bounds returns the bounding box of every marker. It is empty when no
// markers are present.
func (c *Cluster) Bounds() *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, l := range c.Layers() {
		for _, m := range l.Markers {
			b.Extend(geom.NewPointFlat(geom.XY, []float64{m.Lng, m.Lat}))
		}
	}
	return b
}

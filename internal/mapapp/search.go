package mapapp

import (
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/geo-search/internal/feature"
)

// DefaultTitleField is the property matched against search queries.
const DefaultTitleField = "Title"

// NormalizeQuery trims and lower-cases a raw query.
func NormalizeQuery(q string) string {
	return lower(strings.TrimSpace(q))
}

func lower(s string) string {
	// Casers are stateful; build one per call.
	return cases.Lower(language.Und).String(s)
}

// Matches reports whether f is a Point or MultiPoint feature whose title
// contains the normalized query. An empty query matches every point feature.
func Matches(f *feature.Feature, query, titleField string) bool {
	if !f.IsPoint() {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(lower(title(f, titleField)), query)
}

// title returns the title property, treating falsy values as empty.
func title(f *feature.Feature, field string) string {
	v, ok := f.Properties.Get(field)
	if !ok {
		return ""
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return ""
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
	}
	return feature.Display(v)
}

// Filter returns the features of dataset matching the normalized query, in
// dataset order.
func Filter(dataset *feature.Collection, query, titleField string) []*feature.Feature {
	if dataset == nil {
		return nil
	}
	var out []*feature.Feature
	for _, f := range dataset.Features {
		if Matches(f, query, titleField) {
			out = append(out, f)
		}
	}
	return out
}

// Render turns matched features into marker layers with popups bound.
func Render(features []*feature.Feature) *Group {
	g := &Group{Layers: make([]*Layer, 0, len(features))}
	for _, f := range features {
		coords := f.Coords()
		l := &Layer{Feature: f, Markers: make([]Marker, 0, len(coords))}
		for _, c := range coords {
			l.Markers = append(l.Markers, Marker{Lat: c[1], Lng: c[0]})
		}
		bindPopup(l, FormatPopup(f.Properties))
		g.Layers = append(g.Layers, l)
	}
	return g
}

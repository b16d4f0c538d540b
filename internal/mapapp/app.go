// Package mapapp holds the map application: loading the merged dataset,
// keyword search over point features and the rendered marker cluster.
package mapapp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/geo-search/internal/feature"
	"github.com/sells-group/geo-search/internal/mapview"
)

// Options configures an App.
type Options struct {
	View       mapview.Options
	Basemap    mapview.Basemap
	TitleField string
}

// Result is the render instruction set produced by one search.
type Result struct {
	Query  string
	Layers []*Layer
	// Bounds is nil when nothing was rendered.
	Bounds *geom.Bounds
	View   mapview.View
}

// Features returns the matched features in render order.
func (r *Result) Features() *feature.Collection {
	c := &feature.Collection{Type: feature.CollectionType, Features: make([]*feature.Feature, 0, len(r.Layers))}
	for _, l := range r.Layers {
		c.Features = append(c.Features, l.Feature)
	}
	return c
}

// MarshalJSON encodes the render instructions sent to the map page.
func (r *Result) MarshalJSON() ([]byte, error) {
	layers := r.Layers
	if layers == nil {
		layers = []*Layer{}
	}
	return json.Marshal(struct {
		Query  string             `json:"query"`
		Count  int                `json:"count"`
		Layers []*Layer           `json:"layers"`
		Bounds *[2]mapview.LatLng `json:"bounds"`
		View   mapview.View       `json:"view"`
	}{
		Query:  r.Query,
		Count:  len(layers),
		Layers: layers,
		Bounds: mapview.Corners(r.Bounds),
		View:   r.View,
	})
}

// App is the application state. The dataset and cluster are set once by
// Load; afterwards only Search changes the cluster.
type App struct {
	mu         sync.Mutex
	view       *mapview.Map
	initial    mapview.View
	basemap    mapview.Basemap
	titleField string
	dataset    *feature.Collection
	cluster    *Cluster
}

// New initializes the map view and basemap. No data is loaded yet.
func New(opts Options) *App {
	if opts.TitleField == "" {
		opts.TitleField = DefaultTitleField
	}
	view := mapview.New(opts.View)
	return &App{
		view:       view,
		initial:    view.View(),
		basemap:    opts.Basemap,
		titleField: opts.TitleField,
	}
}

// Load runs the loader and installs the merged dataset with an empty cluster.
// On error the app stays unloaded and searches remain no-ops.
func (a *App) Load(ctx context.Context, l *Loader) error {
	dataset, err := l.Load(ctx)
	if err != nil {
		return err
	}
	a.install(dataset)
	return nil
}

func (a *App) install(dataset *feature.Collection) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dataset = dataset
	a.cluster = NewCluster()
	a.view.FitBounds(a.cluster.Bounds())
}

// Ready reports whether the dataset has been loaded.
func (a *App) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dataset != nil && a.cluster != nil
}

// Dataset returns the merged dataset, or nil before Load succeeds.
func (a *App) Dataset() *feature.Collection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dataset
}

// Basemap returns the configured basemap.
func (a *App) Basemap() mapview.Basemap {
	return a.basemap
}

// InitialView returns the view the map was created with.
func (a *App) InitialView() mapview.View {
	return a.initial
}

// View returns the current map view.
func (a *App) View() mapview.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view.View()
}

// ClusterLen returns the number of rendered layers.
func (a *App) ClusterLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cluster == nil {
		return 0
	}
	return a.cluster.Len()
}

// Search replaces the cluster with the point features matching query and fits
// the view to them. It reports false, changing nothing, before the dataset
// is loaded.
func (a *App) Search(query string) (*Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dataset == nil || a.cluster == nil {
		return nil, false
	}

	q := NormalizeQuery(query)
	a.cluster.Clear()
	group := Render(Filter(a.dataset, q, a.titleField))
	a.cluster.Add(group)

	res := &Result{Query: q, Layers: group.Layers}
	if b := a.cluster.Bounds(); !b.IsEmpty() {
		a.view.FitBounds(b)
		res.Bounds = b
	}
	res.View = a.view.View()
	return res, true
}

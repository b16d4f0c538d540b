package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/geo-search/internal/mapapp"
	"github.com/sells-group/geo-search/internal/mapview"
)

type configResponse struct {
	Center   mapview.LatLng `json:"center"`
	Zoom     int            `json:"zoom"`
	MaxZoom  int            `json:"max_zoom"`
	Basemap  basemapInfo    `json:"basemap"`
	Ready    bool           `json:"ready"`
	Features int            `json:"features"`
}

type basemapInfo struct {
	Style    string `json:"style"`
	StyleURL string `json:"style_url"`
}

type searchResponse struct {
	Ready  bool           `json:"ready"`
	Result *mapapp.Result `json:"result,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	v := s.app.InitialView()
	bm := s.app.Basemap()
	resp := configResponse{
		Center:  v.Center,
		Zoom:    v.Zoom,
		MaxZoom: v.MaxZoom,
		Basemap: basemapInfo{Style: bm.Style, StyleURL: bm.StyleURL()},
		Ready:   s.app.Ready(),
	}
	if ds := s.app.Dataset(); ds != nil {
		resp.Features = len(ds.Features)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearch answers with {"ready":false} until the dataset is loaded.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res, ok := s.app.Search(r.URL.Query().Get("q"))
	if !ok {
		writeJSON(w, http.StatusOK, searchResponse{Ready: false})
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Ready: true, Result: res})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

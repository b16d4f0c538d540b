package mapview

import "net/url"

// DefaultStyle is the vector basemap style used when none is configured.
const DefaultStyle = "ArcGIS:Topographic"

const styleEndpoint = "https://basemaps-api.arcgis.com/arcgis/rest/services/styles/"

// Basemap names a remote vector basemap style and the key used to fetch it.
// The key is never validated here; a bad key only blanks the tiles.
type Basemap struct {
	Style  string `json:"style"`
	APIKey string `json:"-"`
}

// StyleURL returns the style endpoint for the basemap with the key attached.
func (b Basemap) StyleURL() string {
	style := b.Style
	if style == "" {
		style = DefaultStyle
	}
	q := url.Values{}
	q.Set("type", "style")
	if b.APIKey != "" {
		q.Set("token", b.APIKey)
	}
	return styleEndpoint + url.PathEscape(style) + "?" + q.Encode()
}

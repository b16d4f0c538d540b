package mapapp

import (
	"strings"

	"github.com/sells-group/geo-search/internal/feature"
)

const popupSeparator = "<br>"

// FormatPopup renders a property bag as popup markup, one "name: value" line
// per property in document order. A "link" property (any case) becomes an
// external hyperlink and array values are joined with ", ".
//
// Values are interpolated without HTML escaping; data files are trusted.
func FormatPopup(props feature.Properties) string {
	lines := make([]string, 0, len(props))
	for _, p := range props {
		label := "<strong>" + p.Name + ":</strong> "
		switch {
		case strings.EqualFold(p.Name, "link"):
			v := feature.Display(p.Value)
			lines = append(lines, label+`<a href="`+v+`" target="_blank">`+v+`</a>`)
		case p.Value.IsArray():
			lines = append(lines, label+feature.JoinArray(p.Value, ", "))
		default:
			lines = append(lines, label+feature.Display(p.Value))
		}
	}
	return strings.Join(lines, popupSeparator)
}

// bindPopup attaches html to every marker of the layer.
func bindPopup(l *Layer, html string) {
	for i := range l.Markers {
		l.Markers[i].Popup = html
	}
}

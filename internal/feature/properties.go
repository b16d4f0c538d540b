package feature

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// Property is one name/value entry of a property bag. Value holds the raw
// JSON value.
type Property struct {
	Name  string
	Value gjson.Result
}

// Properties is a property bag in document order.
type Properties []Property

// ParseProperties reads a JSON object into an ordered property bag. A
// repeated key keeps its first position and takes the last value. Anything
// other than an object yields an empty bag.
func ParseProperties(raw []byte) Properties {
	if len(raw) == 0 {
		return nil
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil
	}

	var props Properties
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if i, ok := index[name]; ok {
			props[i].Value = value
			return true
		}
		index[name] = len(props)
		props = append(props, Property{Name: name, Value: value})
		return true
	})
	return props
}

// NewProperty builds a property from a Go value.
func NewProperty(name string, value any) (Property, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return Property{}, eris.Wrapf(err, "feature: encode property %s", name)
	}
	return Property{Name: name, Value: gjson.ParseBytes(b)}, nil
}

// Get returns the value stored under name.
func (p Properties) Get(name string) (gjson.Result, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return gjson.Result{}, false
}

// Text returns the display string of the value stored under name, or the
// empty string when it is absent.
func (p Properties) Text(name string) string {
	v, ok := p.Get(name)
	if !ok {
		return ""
	}
	return Display(v)
}

// MarshalJSON encodes the bag as a JSON object in its original order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, eris.Wrap(err, "feature: encode property name")
		}
		buf.Write(name)
		buf.WriteByte(':')
		if prop.Value.Raw == "" {
			buf.WriteString("null")
		} else {
			buf.WriteString(prop.Value.Raw)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Display renders a JSON value the way a browser stringifies it: strings
// verbatim, numbers in shortest form, arrays comma-joined, objects as
// "[object Object]".
func Display(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		if v.Raw == "" {
			return "undefined"
		}
		return "null"
	case gjson.False:
		return "false"
	case gjson.True:
		return "true"
	case gjson.Number:
		return formatNumber(v.Num)
	case gjson.String:
		return v.Str
	}
	if v.IsArray() {
		return JoinArray(v, ",")
	}
	return "[object Object]"
}

// JoinArray renders the elements of an array value joined by sep. Null
// elements render empty.
func JoinArray(v gjson.Result, sep string) string {
	items := v.Array()
	parts := make([]string, len(items))
	for i, item := range items {
		if item.Type == gjson.Null {
			continue
		}
		parts[i] = Display(item)
	}
	return strings.Join(parts, sep)
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		// Exponents carry no zero padding and always a sign: 1e-7, 1e+21.
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

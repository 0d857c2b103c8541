// Package column is the registry of product table columns and their cell renderers.
package column

import (
	"strings"
)

// Kind selects the renderer of a column.
type Kind int

const (
	Text Kind = iota
	Status
	Date
	Images
	Brand
	Categories
	Action
)

var kindNames = map[Kind]string{
	Text:       "text",
	Status:     "status",
	Date:       "date",
	Images:     "images",
	Brand:      "brand",
	Categories: "categories",
	Action:     "action",
}

func (kind Kind) String() string {
	name, ok := kindNames[kind]
	if !ok {
		return "unknown"
	}
	return name
}

// Column describes one table column.
// Key is the row accessor, Header the label shown above it.
type Column struct {
	Key    string `yaml:"key"`
	Header string `yaml:"header,omitempty"`
	Kind   Kind   `yaml:"-"`
	Width  int    `yaml:"width,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// Registry returns the product columns in display order.
func Registry() []Column {
	return []Column{
		{Key: "status", Header: "status", Kind: Status, Width: 10},
		{Key: "images", Header: "images", Kind: Images, Width: 12},
		{Key: "title", Header: "title", Kind: Text, Width: 20},
		{Key: "price", Header: "price", Kind: Text, Width: 8},
		{Key: "countInStock", Header: "countInStock", Kind: Text, Width: 12},
		{Key: "description", Header: "description", Kind: Text, Width: 24},
		{Key: "brand", Header: "brand", Kind: Brand, Width: 12},
		{Key: "categories", Header: "categories", Kind: Categories, Width: 14},
		{Key: "createdAt", Header: "createdAt", Kind: Date, Width: 22},
		{Key: "updatedAt", Header: "updatedAt", Kind: Date, Width: 22},
		{Key: "mutate", Header: "mutate", Kind: Action, Width: 0},
	}
}

// Apply overlays widths, headers and hidden flags from layout onto cols by key.
// Order and keys of cols are kept; unknown keys in layout are ignored.
func Apply(cols, layout []Column) []Column {

	byKey := map[string]Column{}
	for _, over := range layout {
		byKey[strings.ToLower(over.Key)] = over
	}

	out := make([]Column, len(cols))
	for i, col := range cols {
		over, ok := byKey[strings.ToLower(col.Key)]
		if ok {
			if over.Width > 0 {
				col.Width = over.Width
			}
			if over.Header != "" {
				col.Header = over.Header
			}
			col.Hidden = over.Hidden
		}
		out[i] = col
	}
	return out
}

// Visible returns the columns not hidden.
func Visible(cols []Column) []Column {

	out := []Column{}
	for _, col := range cols {
		if !col.Hidden {
			out = append(out, col)
		}
	}
	return out
}

// Headers returns the header labels of cols.
func Headers(cols []Column) []string {

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	return headers
}

// Same reports whether two column sets would render the same header.
func Same(a, b []Column) bool {

	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

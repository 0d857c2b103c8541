package shopkeep

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"shopkeep/column"
)

// Layout overrides column widths, headers and visibility.
type Layout struct {
	Columns []column.Column `yaml:"columns"`
}

// loadLayout reads layout from path; no path means the registry as is.
func loadLayout(path string) (cols []column.Column, err error) {

	if path == "" {
		cols = column.Registry()
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read layout from %s", path)
		return
	}

	var layout Layout
	err = yaml.Unmarshal(data, &layout)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal layout")
		return
	}

	cols = column.Apply(column.Registry(), layout.Columns)
	return
}

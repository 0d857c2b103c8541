// Package shopkeep is a terminal admin panel for storefront products.
package shopkeep

import (
	"shopkeep/list"
	"shopkeep/mutation"
)

// Todo: search by title once the store can filter

// Store specifies the product collaborator.
type Store interface {
	list.Provider
	mutation.Caller
	// Name returns the name of the data source
	Name() string
}

// Config configures the admin panel.
type Config struct {
	PageSize   int    `yaml:"page_size"`
	Locale     string `yaml:"locale"`
	Timezone   string `yaml:"timezone,omitempty"`
	Mode       string `yaml:"mode"`
	LayoutFile string `yaml:"layout_file,omitempty"`
}

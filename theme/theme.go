// Package theme provides the colour mode of the admin panel and the styles derived from it.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"
)

// Mode is a colour mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode returns the mode named, defaulting to dark when empty.
func ParseMode(name string) (Mode, error) {

	switch Mode(name) {
	case "":
		return Dark, nil
	case Light, Dark:
		return Mode(name), nil
	}
	return "", errors.Errorf("unknown colour mode %q", name)
}

type palette struct {
	background color.Color
	foreground color.Color
	border     color.Color
	stripe     color.Color
	highlight  color.Color
	accent     color.Color
	muted      color.Color
}

var palettes = map[Mode]palette{
	Light: {
		background: lipgloss.Color("#FAFBFB"),
		foreground: lipgloss.Color("#20232A"),
		border:     lipgloss.Color("#BD874D"),
		stripe:     lipgloss.Color("#F5F5F5"),
		highlight:  lipgloss.Color("#E4E4E7"),
		accent:     lipgloss.Color("#E3A25D"),
		muted:      lipgloss.Color("#71717A"),
	},
	Dark: {
		background: lipgloss.Color("#20232A"),
		foreground: lipgloss.Color("#F7F7F7"),
		border:     lipgloss.Color("#7D5933"),
		stripe:     lipgloss.Color("#171717"),
		highlight:  lipgloss.Color("#33373E"),
		accent:     lipgloss.Color("#FDB568"),
		muted:      lipgloss.Color("246"),
	},
}

// Theme is the read-only colour context handed to every component that draws.
type Theme struct {
	mode Mode
	pal  palette
}

// New creates a theme for a mode; unknown modes fall back to dark.
func New(mode Mode) Theme {

	pal, ok := palettes[mode]
	if !ok {
		mode = Dark
		pal = palettes[Dark]
	}
	return Theme{mode: mode, pal: pal}
}

// Toggle returns the theme for the other mode.
func (th Theme) Toggle() Theme {
	if th.mode == Light {
		return New(Dark)
	}
	return New(Light)
}

func (th Theme) Mode() Mode { return th.mode }
func (th Theme) Background() color.Color { return th.pal.background }
func (th Theme) Foreground() color.Color { return th.pal.foreground }
func (th Theme) Border() color.Color { return th.pal.border }
func (th Theme) Stripe() color.Color { return th.pal.stripe }
func (th Theme) Highlight() color.Color { return th.pal.highlight }
func (th Theme) Accent() color.Color { return th.pal.accent }
func (th Theme) MutedColor() color.Color { return th.pal.muted }

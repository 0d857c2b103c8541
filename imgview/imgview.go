// Package imgview renders product image placeholders for terminal cells.
package imgview

import (
	"path"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Renderer draws an image reference into a fixed-size cell block.
type Renderer interface {
	Render(src, alt string, width, height int) string
}

// Thumb draws a bordered box holding the alt text, or the source's base name.
type Thumb struct {
	Border lipgloss.Style
}

// Render renders a box of exactly width columns by height lines.
func (th Thumb) Render(src, alt string, width, height int) string {

	label := alt
	if label == "" {
		label = path.Base(src)
	}
	if label == "." || label == "/" {
		label = "?"
	}

	inner := max(width-2, 1)
	label = ansi.Truncate(label, inner, "…")

	return th.Border.
		Border(lipgloss.RoundedBorder()).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

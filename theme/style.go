package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	UnStyle      = lipgloss.NewStyle()
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F1D1D")).Background(lipgloss.Color("#F87171")).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#14532D")).Background(lipgloss.Color("#4ADE80")).Bold(true)
)

// MutedStyle is used for help text and truncation marks.
func (th Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.pal.muted)
}

// HeaderStyle styles header cells on the mode background.
func (th Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Center).
		Background(th.pal.background).
		Foreground(th.pal.foreground)
}

// CellStyle styles body cells.
func (th Theme) CellStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
}

// ButtonStyle styles an action control label.
func (th Theme) ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Background(th.pal.background).
		Foreground(th.pal.foreground)
}

// FocusStyle marks the focused form field or button.
func (th Theme) FocusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(th.pal.accent).Foreground(lipgloss.Color("#3D2C19"))
}

// DialogStyle styles a modal container.
func (th Theme) DialogStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.pal.border).
		Padding(1, 2).
		Width(width)
}

// RowStyler returns a StyleFunc striping odd rows and highlighting the selected one.
func (th Theme) RowStyler(selectedRow int) func(row, col int) lipgloss.Style {

	header := th.HeaderStyle()
	cell := th.CellStyle()
	striped := cell.Background(th.pal.stripe)
	selected := cell.Background(th.pal.highlight)

	return func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return header
		case row == selectedRow:
			return selected
		case row%2 == 1:
			return striped
		}
		return cell
	}
}

// StyleTable applies bordered table styling in the mode border colour.
func (th Theme) StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderLeft(true).
		BorderRight(true).
		BorderColumn(true).
		BorderHeader(true).
		BorderStyle(lipgloss.NewStyle().Foreground(th.pal.border))
}

package shopkeep

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"shopkeep/list"
	"shopkeep/theme"
)

// RenderFooter renders a footer with the list position and data source.
func RenderFooter(th theme.Theme, st list.State, row int, name string, width int) string {

	pages := max(st.PageCount(), 1)
	left := fmt.Sprintf("%s  page %d/%d  row %d/%d", st.Kind, st.Index+1, pages, row, st.Total)
	right := name

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return th.MutedStyle().Render(left + strings.Repeat(" ", padding) + right)
}

const helpText = "enter detail  c create  u update  d delete  r return  tab list  n/p page  t theme  ctrl+b table/modal  q quit"

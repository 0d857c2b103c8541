// Package modal provides the open/closed dialog primitive used by action controls.
package modal

import (
	"slices"

	"charm.land/lipgloss/v2"

	"shopkeep/theme"
)

// Modal is a titled dialog which renders nothing while hidden.
type Modal struct {
	Id      string
	Title   string
	Width   int
	Visible bool
}

// Toggle flips visibility.
func (mdl Modal) Toggle() Modal {
	mdl.Visible = !mdl.Visible
	return mdl
}

// Close hides the modal.
func (mdl Modal) Close() Modal {
	mdl.Visible = false
	return mdl
}

// Render wraps body in the themed dialog container, or returns "" when hidden.
func (mdl Modal) Render(th theme.Theme, body string) string {

	if !mdl.Visible {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Render(mdl.Title)
	help := th.MutedStyle().Render("esc: close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)

	return th.DialogStyle(mdl.Width).Render(content)
}

// Stack orders open modals by when they were opened; the last is focused.
// It holds ids only, each modal's visibility stays with its owner.
type Stack struct {
	ids []string
}

// Push marks id as most recently opened.
func (stk Stack) Push(id string) Stack {
	stk.ids = slices.DeleteFunc(slices.Clone(stk.ids), func(s string) bool { return s == id })
	stk.ids = append(stk.ids, id)
	return stk
}

// Remove drops id, leaving every other entry in place.
func (stk Stack) Remove(id string) Stack {
	stk.ids = slices.DeleteFunc(slices.Clone(stk.ids), func(s string) bool { return s == id })
	return stk
}

// Top returns the focused modal id.
func (stk Stack) Top() (id string, ok bool) {
	if len(stk.ids) == 0 {
		return
	}
	return stk.ids[len(stk.ids)-1], true
}

// Ids returns open ids, oldest first.
func (stk Stack) Ids() []string {
	return slices.Clone(stk.ids)
}

func (stk Stack) Len() int {
	return len(stk.ids)
}

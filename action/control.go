// Package action renders per-row action controls and owns the modal state behind each of them.
package action

import (
	"strings"

	nt "shopkeep/entity"
	"shopkeep/theme"
)

// Control is an action control kind.
type Control int

const (
	UpdateControl Control = iota
	DeleteControl
	RestoreControl
)

var controlNames = map[Control]string{
	UpdateControl:  "update",
	DeleteControl:  "delete",
	RestoreControl: "restore",
}

func (ctl Control) String() string {
	return controlNames[ctl]
}

// Label is the button text.
func (ctl Control) Label() string {

	switch ctl {
	case UpdateControl:
		return "Update"
	case DeleteControl:
		return "Delete"
	case RestoreControl:
		return "Return?"
	}
	return "?"
}

// Key is the key press opening the control on the selected row.
func (ctl Control) Key() string {

	switch ctl {
	case UpdateControl:
		return "u"
	case DeleteControl:
		return "d"
	case RestoreControl:
		return "r"
	}
	return ""
}

// Controls lists the controls enabled by the flags, in display order.
func Controls(mt nt.Mutate) []Control {

	var ctls []Control
	if mt.Update {
		ctls = append(ctls, UpdateControl)
	}
	if mt.Delete {
		ctls = append(ctls, DeleteControl)
	}
	if mt.ReturnRemoved {
		ctls = append(ctls, RestoreControl)
	}
	return ctls
}

// Enabled is true when the flags render ctl.
func Enabled(mt nt.Mutate, ctl Control) bool {

	switch ctl {
	case UpdateControl:
		return mt.Update
	case DeleteControl:
		return mt.Delete
	case RestoreControl:
		return mt.ReturnRemoved
	}
	return false
}

// ForKey returns the control opened by key.
func ForKey(key string) (Control, bool) {

	for _, ctl := range []Control{UpdateControl, DeleteControl, RestoreControl} {
		if ctl.Key() == key {
			return ctl, true
		}
	}
	return 0, false
}

// Render renders the buttons enabled by the flags, or "" when none are.
func Render(th theme.Theme, mt nt.Mutate) string {

	ctls := Controls(mt)
	buttons := make([]string, len(ctls))
	for i, ctl := range ctls {
		buttons[i] = th.ButtonStyle().Render(ctl.Label()) + th.MutedStyle().Render("("+ctl.Key()+")")
	}
	return strings.Join(buttons, " ")
}

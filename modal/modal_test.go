package modal

import (
	"strings"
	"testing"

	"shopkeep/theme"
)

func TestModalHiddenRendersNothing(t *testing.T) {

	mdl := Modal{Title: "Update", Width: 40}
	th := theme.New(theme.Dark)

	if out := mdl.Render(th, "body"); out != "" {
		t.Fatalf("hidden modal rendered %q", out)
	}

	mdl = mdl.Toggle()
	out := mdl.Render(th, "body")
	if !strings.Contains(out, "body") || !strings.Contains(out, "Update") {
		t.Fatalf("visible modal missing content: %q", out)
	}

	if mdl.Toggle().Visible {
		t.Fatalf("second toggle should hide")
	}
	if mdl.Close().Visible {
		t.Fatalf("close should hide")
	}
}

func TestStackRemoveLeavesOthers(t *testing.T) {

	var stk Stack
	stk = stk.Push("7/update")
	stk = stk.Push("8/delete")

	top, ok := stk.Top()
	if !ok || top != "8/delete" {
		t.Fatalf("unexpected top %q", top)
	}

	after := stk.Remove("8/delete")
	top, ok = after.Top()
	if !ok || top != "7/update" {
		t.Fatalf("closing one modal dropped the other: %v", after.Ids())
	}
	if stk.Len() != 2 {
		t.Fatalf("remove mutated the original stack")
	}

	again := after.Push("7/update")
	if again.Len() != 1 {
		t.Fatalf("push of open id should not duplicate: %v", again.Ids())
	}
}

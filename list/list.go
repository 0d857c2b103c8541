// Package list holds the paginated product list state shown by the table.
package list

import (
	"context"

	nt "shopkeep/entity"
)

// Provider lists products of a kind.
type Provider interface {
	Page(ctx context.Context, kind nt.ListKind, offset, size int) ([]nt.Product, error)
	Count(ctx context.Context, kind nt.ListKind) (int, error)
}

// State is the loaded pages of one list and the index of the page shown.
// Pages are filled as they arrive and may be sparse.
type State struct {
	Kind  nt.ListKind
	Pages [][]nt.Product
	Index int
	Size  int
	Total int
}

// New creates an empty state for kind with the given page size.
func New(kind nt.ListKind, size int) State {
	return State{
		Kind: kind,
		Size: max(size, 1),
	}
}

// Flags returns the action flags rows of kind are rendered with.
func Flags(kind nt.ListKind) nt.Mutate {

	switch kind {
	case nt.MainList:
		return nt.Mutate{Update: true, Delete: true}
	case nt.RemovedList:
		return nt.Mutate{ReturnRemoved: true}
	}
	return nt.Mutate{}
}

// Current returns the page at Index, or an empty page when out of range.
func (st State) Current() []nt.Product {

	if st.Index < 0 || st.Index >= len(st.Pages) || st.Pages[st.Index] == nil {
		return []nt.Product{}
	}
	return st.Pages[st.Index]
}

// Rows wraps the current page for rendering.
func (st State) Rows() []nt.Row {

	flags := Flags(st.Kind)
	page := st.Current()

	rows := make([]nt.Row, len(page))
	for i, prd := range page {
		rows[i] = nt.Row{
			Product: prd,
			Mutate:  flags,
			Origin:  st.Kind,
		}
	}
	return rows
}

// PageCount returns the number of pages Total spans.
func (st State) PageCount() int {

	if st.Total <= 0 {
		return 0
	}
	return (st.Total + st.Size - 1) / st.Size
}

// Offset returns the offset of the page at Index.
func (st State) Offset() int {
	return st.Index * st.Size
}

// SetPage stores a loaded page at index, keeping the others.
// Index is pulled back onto the last page when total no longer reaches it.
func (st State) SetPage(index int, page []nt.Product, total int) State {

	if index < 0 {
		return st
	}

	pages := make([][]nt.Product, max(len(st.Pages), index+1))
	copy(pages, st.Pages)
	pages[index] = page

	st.Pages = pages
	st.Total = total

	last := max(st.PageCount()-1, 0)
	if st.Index > last {
		st.Index = last
	}
	return st
}

// Goto moves Index to index, clamped to the known page count when there is one.
func (st State) Goto(index int) State {

	if index < 0 {
		index = 0
	}
	if count := st.PageCount(); count > 0 && index >= count {
		index = count - 1
	}
	st.Index = index
	return st
}

// Stale drops loaded pages, keeping Index.
func (st State) Stale() State {
	st.Pages = nil
	return st
}

// Loaded reports whether the page at Index is present.
func (st State) Loaded() bool {
	return st.Index >= 0 && st.Index < len(st.Pages) && st.Pages[st.Index] != nil
}

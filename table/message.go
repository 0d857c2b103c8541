package table

import (
	"shopkeep/column"
	nt "shopkeep/entity"
	"shopkeep/theme"
)

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (PageMsg) isTableMsg()    {}
func (ColumnsMsg) isTableMsg() {}
func (ThemeMsg) isTableMsg()   {}
func (ListMsg) isTableMsg()    {}

type SizeMsg struct {
	Width  int
	Height int
}

// PageMsg carries a loaded page of a list.
type PageMsg struct {
	Kind     nt.ListKind
	Index    int
	Products []nt.Product
	Total    int
}

type ColumnsMsg struct {
	Columns []column.Column
}

type ThemeMsg struct {
	Theme theme.Theme
}

// ListMsg switches the table to another list.
type ListMsg struct {
	Kind nt.ListKind
}

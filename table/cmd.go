package table

import (
	tea "charm.land/bubbletea/v2"

	"shopkeep/message"
)

func (pnl TablePanel) selectedCmd() tea.Cmd {

	row, ok := pnl.Selected()
	if !ok {
		return nil
	}

	index := pnl.list.Offset() + pnl.selected + 1

	return func() tea.Msg {
		return message.SelectedMsg{
			Row:     index,
			Product: row.Product,
		}
	}
}

func (pnl TablePanel) pageCmd() tea.Cmd {
	return message.GetPageCmd(pnl.list.Kind, pnl.list.Offset(), pnl.list.Size)
}

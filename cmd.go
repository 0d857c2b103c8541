package shopkeep

import (
	tea "charm.land/bubbletea/v2"

	"shopkeep/message"
	"shopkeep/table"
)

// getPage gets a page of products from the store
func (m Model) getPage(msg message.GetPageMsg) tea.Cmd {

	store := m.store
	ctx := m.logger.WithFields(m.ctx, "list", string(msg.Kind), "offset", msg.Offset)
	size := max(msg.Size, 1)

	return func() tea.Msg {

		count, err := store.Count(ctx, msg.Kind)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		prds, err := store.Page(ctx, msg.Kind, msg.Offset, size)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return table.PageMsg{
			Kind:     msg.Kind,
			Index:    msg.Offset / size,
			Products: prds,
			Total:    count,
		}
	}
}

// reloadColumns loads layout from file and updates the table
func (m Model) reloadColumns() tea.Cmd {

	cols, err := loadLayout(m.cfg.LayoutFile)
	if err != nil {
		return message.ErrorCmd(err)
	}

	return func() tea.Msg {
		return table.ColumnsMsg{Columns: cols}
	}
}

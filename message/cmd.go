package message

import (
	tea "charm.land/bubbletea/v2"

	nt "shopkeep/entity"
)

// GetPageCmd returns a command to request a page of products.
func GetPageCmd(kind nt.ListKind, offset, size int) tea.Cmd {
	return func() tea.Msg {
		return GetPageMsg{
			Kind:   kind,
			Offset: offset,
			Size:   size,
		}
	}
}

// ErrorCmd returns a command reporting err.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// CloseModalCmd returns a command asking for modal id to close.
func CloseModalCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return CloseModalMsg{ModalId: id}
	}
}

// RefreshCmd returns a command signaling stale list data.
func RefreshCmd() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

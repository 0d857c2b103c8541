// Package message holds messages passed between panels and the top-level model.
package message

import nt "shopkeep/entity"

// ErrorMsg contains an error to show on the status line.
type ErrorMsg struct {
	Err error
}

// GetPageMsg signals to load a page of products.
type GetPageMsg struct {
	Kind   nt.ListKind
	Offset int
	Size   int
}

// RefreshMsg signals that a mutation finished and the current page is stale.
type RefreshMsg struct{}

// CloseModalMsg asks the owner of a modal to hide it.
type CloseModalMsg struct {
	ModalId string
}

// ModalOpenedMsg reports that a modal became visible.
type ModalOpenedMsg struct {
	ModalId string
}

// ModalClosedMsg reports that a modal was hidden.
type ModalClosedMsg struct {
	ModalId string
}

// SelectedMsg reports the selected product.
type SelectedMsg struct {
	Row     int
	Product nt.Product
}

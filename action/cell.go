package action

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	nt "shopkeep/entity"
	"shopkeep/form"
	"shopkeep/message"
	"shopkeep/modal"
	"shopkeep/mutation"
	"shopkeep/theme"
)

// ErrDisabled is returned when opening a control the row's flags do not render.
var ErrDisabled = errors.New("action control not enabled for row")

const (
	formWidth    = 64
	confirmWidth = 56
)

// Cell is the action cell of one row.
// Each control has its own modal, and opening one leaves the others as they are.
type Cell struct {
	row nt.Row

	modals  map[Control]modal.Modal
	update  *form.Form
	confirm *form.Confirm
	restore *form.Form

	caller mutation.Caller
	ctx    context.Context
	logger nt.Logger
}

// New creates the action cell for a row.
func New(ctx context.Context, row nt.Row, caller mutation.Caller, lgr nt.Logger) Cell {

	cell := Cell{
		row:    row,
		modals: map[Control]modal.Modal{},
		caller: caller,
		ctx:    ctx,
		logger: lgr,
	}

	for _, ctl := range []Control{UpdateControl, DeleteControl, RestoreControl} {
		cell.modals[ctl] = modal.Modal{
			Id:    ModalId(row.Key(), ctl),
			Title: fmt.Sprintf("%s %q", ctl.Label(), row.Product.Title),
			Width: formWidth,
		}
	}
	cell.modals[DeleteControl] = resize(cell.modals[DeleteControl], confirmWidth)

	return cell
}

// ModalId identifies the modal of a control on a row.
func ModalId(id int64, ctl Control) string {
	return fmt.Sprintf("%d/%s", id, ctl)
}

// Row returns the row the cell was last given.
func (cell Cell) Row() nt.Row {
	return cell.row
}

// IsOpen reports whether the control's modal is visible.
func (cell Cell) IsOpen(ctl Control) bool {
	return cell.modals[ctl].Visible
}

// Owns reports whether modalId belongs to the cell.
func (cell Cell) Owns(modalId string) (Control, bool) {

	for ctl, mdl := range cell.modals {
		if mdl.Id == modalId {
			return ctl, true
		}
	}
	return 0, false
}

// SetRow refreshes the row; modals of controls the new flags no longer render are closed.
func (cell Cell) SetRow(row nt.Row) (Cell, tea.Cmd) {

	cell.row = row
	cell.modals = cloneModals(cell.modals)

	var cmds []tea.Cmd
	for ctl, mdl := range cell.modals {
		if mdl.Visible && !Enabled(row.Mutate, ctl) {
			var cmd tea.Cmd
			cell, cmd = cell.close(ctl)
			cmds = append(cmds, cmd)
		}
	}
	return cell, tea.Batch(cmds...)
}

// Toggle opens or closes a control's modal.
// Opening builds the modal body afresh from the current row.
func (cell Cell) Toggle(ctl Control) (Cell, tea.Cmd, error) {

	if cell.modals[ctl].Visible {
		cell, cmd := cell.close(ctl)
		return cell, cmd, nil
	}

	if !Enabled(cell.row.Mutate, ctl) {
		return cell, nil, errors.Wrapf(ErrDisabled, "%s on product %d", ctl, cell.row.Key())
	}

	prd, err := nt.CheckFormProduct(cell.row.Product)
	if err != nil {
		return cell, nil, err
	}

	modalId := ModalId(prd.Id, ctl)

	switch ctl {
	case UpdateControl:
		cfg := &form.Config{
			Kind:           form.Update,
			ModalId:        modalId,
			ProductId:      prd.Id,
			Init:           prd.Values(),
			CloseOnSuccess: true,
		}
		frm := cfg.New(cell.ctx, cell.caller, cell.logger)
		cell.update = &frm

	case DeleteControl:
		cnf := form.NewConfirm(cell.ctx, modalId, prd, cell.caller, cell.logger)
		cell.confirm = &cnf

	case RestoreControl:
		cfg := &form.Config{
			Kind:    form.Create,
			ModalId: modalId,
			Init:    prd.Values(),
			Restore: mutation.CreateOptions{
				RestoreId: prd.Id,
				Origin:    nt.RemovedList,
			},
			CloseOnSuccess: true,
		}
		frm := cfg.New(cell.ctx, cell.caller, cell.logger)
		cell.restore = &frm
	}

	cell.modals = cloneModals(cell.modals)
	cell.modals[ctl] = cell.modals[ctl].Toggle()

	return cell, func() tea.Msg { return message.ModalOpenedMsg{ModalId: modalId} }, nil
}

// Update routes results, close requests and the focused modal's keys.
func (cell Cell) Update(msg tea.Msg) (Cell, tea.Cmd) {

	switch msg := msg.(type) {

	case message.CloseModalMsg:
		ctl, ok := cell.Owns(msg.ModalId)
		if !ok || !cell.modals[ctl].Visible {
			return cell, nil
		}
		return cell.close(ctl)

	case mutation.ResultMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if cell.update != nil {
			frm := *cell.update
			frm, cmd = frm.Update(msg)
			cell.update = &frm
			cmds = append(cmds, cmd)
		}
		if cell.confirm != nil {
			cnf := *cell.confirm
			cnf, cmd = cnf.Update(msg)
			cell.confirm = &cnf
			cmds = append(cmds, cmd)
		}
		if cell.restore != nil {
			frm := *cell.restore
			frm, cmd = frm.Update(msg)
			cell.restore = &frm
			cmds = append(cmds, cmd)
		}
		return cell, tea.Batch(cmds...)
	}

	return cell, nil
}

// Key handles a key press for the control's open modal.
func (cell Cell) Key(ctl Control, msg tea.KeyPressMsg) (Cell, tea.Cmd) {

	if !cell.modals[ctl].Visible {
		return cell, nil
	}

	if msg.String() == "esc" {
		return cell.close(ctl)
	}

	var cmd tea.Cmd
	switch ctl {
	case UpdateControl:
		if cell.update != nil {
			frm := *cell.update
			frm, cmd = frm.Update(msg)
			cell.update = &frm
		}
	case DeleteControl:
		if cell.confirm != nil {
			cnf := *cell.confirm
			cnf, cmd = cnf.Update(msg)
			cell.confirm = &cnf
		}
	case RestoreControl:
		if cell.restore != nil {
			frm := *cell.restore
			frm, cmd = frm.Update(msg)
			cell.restore = &frm
		}
	}
	return cell, cmd
}

// View renders the control's modal, "" when it is closed.
func (cell Cell) View(th theme.Theme, ctl Control) string {

	mdl := cell.modals[ctl]
	if !mdl.Visible {
		return ""
	}

	var body string
	switch ctl {
	case UpdateControl:
		if cell.update != nil {
			body = cell.update.View(th)
		}
	case DeleteControl:
		if cell.confirm != nil {
			body = cell.confirm.View(th)
		}
	case RestoreControl:
		if cell.restore != nil {
			body = cell.restore.View(th)
		}
	}
	return mdl.Render(th, body)
}

// UpdateForm returns the open update form.
func (cell Cell) UpdateForm() (form.Form, bool) {
	if cell.update == nil {
		return form.Form{}, false
	}
	return *cell.update, true
}

// RestoreForm returns the open restore form.
func (cell Cell) RestoreForm() (form.Form, bool) {
	if cell.restore == nil {
		return form.Form{}, false
	}
	return *cell.restore, true
}

// unexported

// close hides the modal and releases its body so late results land nowhere.
func (cell Cell) close(ctl Control) (Cell, tea.Cmd) {

	cell.modals = cloneModals(cell.modals)
	mdl := cell.modals[ctl].Close()
	cell.modals[ctl] = mdl

	switch ctl {
	case UpdateControl:
		cell.update = nil
	case DeleteControl:
		cell.confirm = nil
	case RestoreControl:
		cell.restore = nil
	}

	return cell, func() tea.Msg { return message.ModalClosedMsg{ModalId: mdl.Id} }
}

func cloneModals(in map[Control]modal.Modal) map[Control]modal.Modal {

	out := make(map[Control]modal.Modal, len(in))
	for ctl, mdl := range in {
		out[ctl] = mdl
	}
	return out
}

func resize(mdl modal.Modal, width int) modal.Modal {
	mdl.Width = width
	return mdl
}

// Package form implements the product create/update forms and the delete confirmation.
package form

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "shopkeep/entity"
	"shopkeep/message"
	"shopkeep/mutation"
	"shopkeep/theme"
)

// Kind is create or update.
type Kind int

const (
	Create Kind = iota
	Update
)

type field int

const (
	fieldReset field = iota
	fieldInit
	fieldStatus
	fieldTitle
	fieldDescription
	fieldImages
	fieldBrand
	fieldCategories
	fieldPrice
	fieldStock
	fieldSubmit
	fieldCount
)

var labels = map[field]string{
	fieldTitle:       "title",
	fieldDescription: "description",
	fieldImages:      "images",
	fieldBrand:       "brand",
	fieldCategories:  "categories",
	fieldPrice:       "price",
	fieldStock:       "countInStock",
}

var statusOptions = []string{string(nt.Visible), string(nt.Hidden)}

// Config configures a product form.
type Config struct {
	Kind           Kind
	ModalId        string
	ProductId      int64
	Init           nt.Values
	Restore        mutation.CreateOptions
	CloseOnSuccess bool
}

// Form mirrors its inputs into a plain Values object and submits it to the mutation collaborator.
type Form struct {
	cfg    Config
	init   nt.Values
	values nt.Values

	status choice
	inputs []textInput
	focus  field
	call   mutation.Status

	caller mutation.Caller
	ctx    context.Context
	logger nt.Logger
}

// Blank returns the values of an empty form.
func Blank() nt.Values {
	return nt.Values{
		Images:     []string{},
		Categories: []string{},
		Status:     nt.Visible,
	}
}

// New creates a form with inputs populated from cfg.Init layered over blank values.
func (cfg *Config) New(ctx context.Context, caller mutation.Caller, lgr nt.Logger) Form {

	init := merge(Blank(), cfg.Init)

	frm := Form{
		cfg:    *cfg,
		init:   init,
		focus:  fieldTitle,
		caller: caller,
		ctx:    ctx,
		logger: lgr,
	}
	frm = frm.load(init)

	return frm
}

// Values returns the mirrored values.
func (frm Form) Values() nt.Values {
	return frm.values
}

// Status returns the status of the last submission.
func (frm Form) Status() mutation.Status {
	return frm.call
}

// Config returns the form's configuration.
func (frm Form) Config() Config {
	return frm.cfg
}

func (frm Form) Update(msg tea.Msg) (Form, tea.Cmd) {

	switch msg := msg.(type) {

	case mutation.ResultMsg:
		return frm.finish(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			frm.focus = (frm.focus + 1) % fieldCount
			return frm, nil

		case "shift+tab", "up":
			frm.focus = (frm.focus + fieldCount - 1) % fieldCount
			return frm, nil

		case "ctrl+s":
			return frm.submit()

		case "enter":
			switch frm.focus {
			case fieldReset:
				if !frm.call.IsPending() {
					frm = frm.load(Blank())
				}
			case fieldInit:
				if !frm.call.IsPending() {
					frm = frm.load(frm.init)
				}
			case fieldSubmit:
				return frm.submit()
			default:
				frm.focus = (frm.focus + 1) % fieldCount
			}
			return frm, nil
		}

		return frm.edit(msg), nil
	}

	return frm, nil
}

// View renders the form body.
func (frm Form) View(th theme.Theme) string {

	var lines []string

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		frm.button(th, fieldReset, "Reset Form"),
		" ",
		frm.button(th, fieldInit, "Init Form"),
	))
	if frm.focus == fieldInit {
		lines = append(lines, th.MutedStyle().Render("Init the form inputs to where they were at the beginning ex: "+frm.initJson()))
	}

	status := frm.status.render()
	if frm.focus == fieldStatus {
		status = th.FocusStyle().Render(status)
	}
	lines = append(lines, "", "status", status)

	for fld := fieldTitle; fld <= fieldStock; fld++ {
		input := frm.inputs[fld].render(frm.focus == fld)
		if frm.focus == fld {
			input = th.FocusStyle().Render(input)
		}
		lines = append(lines, "", labels[fld], "> "+input)
	}

	label := "Submit"
	if frm.call.IsPending() {
		label = "Loading..."
	}
	lines = append(lines, "", frm.button(th, fieldSubmit, label))

	switch frm.call.State {
	case mutation.Failed:
		lines = append(lines, "", theme.ErrorStyle.Render("Something went wrong! "+frm.call.Err.Error()))
	case mutation.Succeeded:
		lines = append(lines, "", theme.SuccessStyle.Render(frm.successText()))
	}

	return strings.Join(lines, "\n")
}

// unexported

func (frm Form) load(values nt.Values) Form {

	frm.values = values
	frm.status = newChoice(statusOptions, string(values.Status))

	frm.inputs = make([]textInput, fieldCount)
	frm.inputs[fieldTitle] = newTextInput(values.Title, 0)
	frm.inputs[fieldDescription] = newTextInput(values.Description, 2000)
	frm.inputs[fieldImages] = newTextInput(joinList(values.Images), 2000)
	frm.inputs[fieldBrand] = newTextInput(values.Brand, 0)
	frm.inputs[fieldCategories] = newTextInput(joinList(values.Categories), 0)
	frm.inputs[fieldPrice] = newTextInput(FormatNumber(values.Price), 32)
	frm.inputs[fieldStock] = newTextInput(FormatNumber(values.CountInStock), 32)

	return frm
}

func (frm Form) edit(msg tea.KeyPressMsg) Form {

	if frm.focus == fieldStatus {
		var changed bool
		frm.status, changed = frm.status.update(msg)
		if changed {
			frm.values.Status = nt.Status(frm.status.Value())
		}
		return frm
	}

	if frm.focus < fieldTitle || frm.focus > fieldStock {
		return frm
	}

	input, changed := frm.inputs[frm.focus].update(msg)
	frm.inputs[frm.focus] = input
	if !changed {
		return frm
	}

	text := input.Value()
	switch frm.focus {
	case fieldTitle:
		frm.values.Title = text
	case fieldDescription:
		frm.values.Description = text
	case fieldImages:
		frm.values.Images = splitList(text)
	case fieldBrand:
		frm.values.Brand = text
	case fieldCategories:
		frm.values.Categories = splitList(text)
	case fieldPrice:
		frm.values.Price = ParseNumber(text)
	case fieldStock:
		frm.values.CountInStock = ParseNumber(text)
	}

	return frm
}

func (frm Form) submit() (Form, tea.Cmd) {

	if frm.call.IsPending() {
		return frm, nil
	}

	callId := mutation.NewCallId()
	frm.call = frm.call.Start(callId)

	ctx := frm.logger.WithFields(frm.ctx, "call_id", callId)
	values := frm.values

	if frm.cfg.Kind == Update {
		frm.logger.Info(ctx, "submitting product update", "product_id", frm.cfg.ProductId)
		return frm, mutation.UpdateCmd(ctx, frm.caller, callId, frm.cfg.ProductId, values)
	}

	frm.logger.Info(ctx, "submitting product create", "restore_id", frm.cfg.Restore.RestoreId)
	return frm, mutation.CreateCmd(ctx, frm.caller, callId, values, frm.cfg.Restore)
}

func (frm Form) finish(msg mutation.ResultMsg) (Form, tea.Cmd) {

	call, ok := frm.call.Finish(msg)
	if !ok {
		return frm, nil
	}
	frm.call = call

	ctx := frm.logger.WithFields(frm.ctx, "call_id", msg.CallId)
	if call.Err != nil {
		frm.logger.Error(ctx, "product mutation failed", call.Err, "op", msg.Op)
		return frm, nil
	}
	frm.logger.Info(ctx, "product mutation succeeded", "op", msg.Op, "product_id", msg.Id)

	cmds := []tea.Cmd{message.RefreshCmd()}
	if frm.cfg.CloseOnSuccess {
		cmds = append(cmds, message.CloseModalCmd(frm.cfg.ModalId))
	}
	return frm, tea.Batch(cmds...)
}

func (frm Form) button(th theme.Theme, fld field, label string) string {

	label = "[" + label + "]"
	if frm.focus == fld {
		return th.FocusStyle().Render(label)
	}
	return th.ButtonStyle().Render(label)
}

func (frm Form) successText() string {

	switch {
	case frm.cfg.Kind == Update:
		return "The product is updated successfully!"
	case frm.cfg.Restore.RestoreId != 0:
		return "The product is returned successfully!"
	}
	return "The new product is created successfully!"
}

func (frm Form) initJson() string {

	data, err := json.Marshal(frm.init)
	if err != nil {
		return fmt.Sprintf("%+v", frm.init)
	}
	return string(data)
}

// merge layers the set members of over onto base.
func merge(base, over nt.Values) nt.Values {

	if over.Title != "" {
		base.Title = over.Title
	}
	if over.Price != 0 {
		base.Price = over.Price
	}
	if over.Images != nil {
		base.Images = slices.Clone(over.Images)
	}
	if over.Brand != "" {
		base.Brand = over.Brand
	}
	if over.Description != "" {
		base.Description = over.Description
	}
	if over.Categories != nil {
		base.Categories = slices.Clone(over.Categories)
	}
	if over.Status != "" {
		base.Status = over.Status
	}
	if over.CountInStock != 0 {
		base.CountInStock = over.CountInStock
	}
	return base
}

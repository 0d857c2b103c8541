package form

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	nt "shopkeep/entity"
	"shopkeep/message"
	"shopkeep/mutation"
	"shopkeep/theme"
)

// Confirm asks before deleting a product and closes its modal once the delete succeeds.
type Confirm struct {
	modalId string
	product nt.Product
	call    mutation.Status

	caller mutation.Caller
	ctx    context.Context
	logger nt.Logger
}

func NewConfirm(ctx context.Context, modalId string, prd nt.Product, caller mutation.Caller, lgr nt.Logger) Confirm {
	return Confirm{
		modalId: modalId,
		product: prd,
		caller:  caller,
		ctx:     ctx,
		logger:  lgr,
	}
}

// Status returns the status of the delete call.
func (cnf Confirm) Status() mutation.Status {
	return cnf.call
}

func (cnf Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {

	switch msg := msg.(type) {

	case mutation.ResultMsg:
		call, ok := cnf.call.Finish(msg)
		if !ok {
			return cnf, nil
		}
		cnf.call = call

		ctx := cnf.logger.WithFields(cnf.ctx, "call_id", msg.CallId)
		if call.Err != nil {
			cnf.logger.Error(ctx, "product delete failed", call.Err, "product_id", cnf.product.Id)
			return cnf, nil
		}
		cnf.logger.Info(ctx, "product deleted", "product_id", cnf.product.Id)

		return cnf, tea.Batch(message.RefreshCmd(), message.CloseModalCmd(cnf.modalId))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "y":
			if cnf.call.IsPending() {
				return cnf, nil
			}

			callId := mutation.NewCallId()
			cnf.call = cnf.call.Start(callId)

			ctx := cnf.logger.WithFields(cnf.ctx, "call_id", callId)
			cnf.logger.Info(ctx, "submitting product delete", "product_id", cnf.product.Id)
			return cnf, mutation.DeleteCmd(ctx, cnf.caller, callId, cnf.product.Id)
		}
	}

	return cnf, nil
}

func (cnf Confirm) View(th theme.Theme) string {

	label := "[Delete]"
	if cnf.call.IsPending() {
		label = "[Loading...]"
	}

	lines := []string{
		fmt.Sprintf("Are you sure you want to delete %q (id %d)?", cnf.product.Title, cnf.product.Id),
		"",
		th.FocusStyle().Render(label) + "  " + th.MutedStyle().Render("enter/y: delete"),
	}

	switch cnf.call.State {
	case mutation.Failed:
		lines = append(lines, "", theme.ErrorStyle.Render("Something went wrong! "+cnf.call.Err.Error()))
	case mutation.Succeeded:
		lines = append(lines, "", theme.SuccessStyle.Render("The product is deleted successfully!"))
	}

	return strings.Join(lines, "\n")
}

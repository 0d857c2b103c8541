// Package mutation specifies the product mutation collaborator and tracks call status.
package mutation

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	nt "shopkeep/entity"
)

// CreateOptions qualifies a create call.
// A non-zero RestoreId asks the collaborator to re-create a removed product under its original id.
type CreateOptions struct {
	RestoreId int64
	Origin    nt.ListKind
}

// Caller is the remote mutation collaborator.
type Caller interface {
	Create(ctx context.Context, values nt.Values, opts CreateOptions) (id int64, err error)
	Update(ctx context.Context, id int64, values nt.Values) (err error)
	Delete(ctx context.Context, id int64) (err error)
}

// Op names a mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ResultMsg reports a finished call back to the form that issued it.
type ResultMsg struct {
	CallId string
	Op     Op
	Id     int64
	Err    error
}

// NewCallId returns a fresh call id.
func NewCallId() string {
	return uuid.NewString()
}

// CreateCmd issues a create call.
func CreateCmd(ctx context.Context, caller Caller, callId string, values nt.Values, opts CreateOptions) tea.Cmd {
	return func() tea.Msg {
		id, err := caller.Create(ctx, values, opts)
		return ResultMsg{CallId: callId, Op: OpCreate, Id: id, Err: err}
	}
}

// UpdateCmd issues an update call.
func UpdateCmd(ctx context.Context, caller Caller, callId string, id int64, values nt.Values) tea.Cmd {
	return func() tea.Msg {
		err := caller.Update(ctx, id, values)
		return ResultMsg{CallId: callId, Op: OpUpdate, Id: id, Err: err}
	}
}

// DeleteCmd issues a delete call.
func DeleteCmd(ctx context.Context, caller Caller, callId string, id int64) tea.Cmd {
	return func() tea.Msg {
		err := caller.Delete(ctx, id)
		return ResultMsg{CallId: callId, Op: OpDelete, Id: id, Err: err}
	}
}

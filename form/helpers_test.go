package form

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	nt "shopkeep/entity"
	"shopkeep/mutation"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, msg string, kv ...any) {}
func (nopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}
func (nopLogger) WithFields(ctx context.Context, kv ...any) context.Context { return ctx }

type fakeCaller struct {
	mu      sync.Mutex
	created []nt.Values
	opts    []mutation.CreateOptions
	updated map[int64]nt.Values
	deleted []int64
	fail    error
}

func (fc *fakeCaller) Create(ctx context.Context, values nt.Values, opts mutation.CreateOptions) (int64, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.created = append(fc.created, values)
	fc.opts = append(fc.opts, opts)
	return 100, fc.fail
}

func (fc *fakeCaller) Update(ctx context.Context, id int64, values nt.Values) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.updated == nil {
		fc.updated = map[int64]nt.Values{}
	}
	fc.updated[id] = values
	return fc.fail
}

func (fc *fakeCaller) Delete(ctx context.Context, id int64) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.deleted = append(fc.deleted, id)
	return fc.fail
}

var errBoom = errors.New("boom")

var specialKeys = map[string]tea.KeyPressMsg{
	"enter":     {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"backspace": {Code: tea.KeyBackspace},
	"down":      {Code: tea.KeyDown},
	"up":        {Code: tea.KeyUp},
	"right":     {Code: tea.KeyRight},
	"ctrl+s":    {Code: 's', Mod: tea.ModCtrl},
}

func press(name string) tea.KeyPressMsg {
	if msg, ok := specialKeys[name]; ok {
		return msg
	}
	r := []rune(name)[0]
	return tea.KeyPressMsg{Code: r, Text: name}
}

func typeInto(frm Form, fld field, text string) Form {
	frm.focus = fld
	for _, r := range text {
		frm, _ = frm.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return frm
}

func clearField(frm Form, fld field) Form {
	frm.focus = fld
	frm, _ = frm.Update(tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl})
	return frm
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {

	if cmd == nil {
		return nil
	}

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var msgs []tea.Msg
	for _, sub := range batch {
		msgs = append(msgs, collect(sub)...)
	}
	return msgs
}

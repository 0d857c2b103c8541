package mutation

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	nt "shopkeep/entity"
)

func TestStatusIgnoresForeignResults(t *testing.T) {

	st := Status{}.Start("a")
	if !st.IsPending() {
		t.Fatalf("expected pending")
	}

	st, ok := st.Finish(ResultMsg{CallId: "b"})
	if ok || !st.IsPending() {
		t.Fatalf("foreign result applied: %+v", st)
	}

	st, ok = st.Finish(ResultMsg{CallId: "a", Err: errors.New("boom")})
	if !ok || st.State != Failed || st.Err == nil {
		t.Fatalf("expected failure: %+v", st)
	}

	_, ok = st.Finish(ResultMsg{CallId: "a"})
	if ok {
		t.Fatalf("finished call accepted a second result")
	}
}

type fakeCaller struct {
	created nt.Values
	opts    CreateOptions
	deleted int64
}

func (fc *fakeCaller) Create(ctx context.Context, values nt.Values, opts CreateOptions) (int64, error) {
	fc.created = values
	fc.opts = opts
	return 11, nil
}

func (fc *fakeCaller) Update(ctx context.Context, id int64, values nt.Values) error {
	return errors.Errorf("no product %d", id)
}

func (fc *fakeCaller) Delete(ctx context.Context, id int64) error {
	fc.deleted = id
	return nil
}

func TestCmds(t *testing.T) {

	ctx := context.Background()
	fc := &fakeCaller{}

	msg := CreateCmd(ctx, fc, "c1", nt.Values{Title: "Mug"}, CreateOptions{RestoreId: 7})().(ResultMsg)
	if msg.CallId != "c1" || msg.Op != OpCreate || msg.Id != 11 || msg.Err != nil {
		t.Errorf("create: %+v", msg)
	}
	if fc.created.Title != "Mug" || fc.opts.RestoreId != 7 {
		t.Errorf("create passed %+v %+v", fc.created, fc.opts)
	}

	msg = UpdateCmd(ctx, fc, "c2", 3, nt.Values{})().(ResultMsg)
	if msg.Err == nil || msg.Id != 3 || msg.Op != OpUpdate {
		t.Errorf("update: %+v", msg)
	}

	msg = DeleteCmd(ctx, fc, "c3", 5)().(ResultMsg)
	if msg.Err != nil || fc.deleted != 5 {
		t.Errorf("delete: %+v", msg)
	}

	if NewCallId() == NewCallId() {
		t.Errorf("call ids repeat")
	}
}

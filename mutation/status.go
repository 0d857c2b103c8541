package mutation

// State of a single call.
type State int

const (
	Idle State = iota
	Pending
	Failed
	Succeeded
)

// Status is the pending/error/success status of the last call issued by a form.
type Status struct {
	State  State
	CallId string
	Err    error
}

// Start moves to pending for a new call id.
func (st Status) Start(callId string) Status {
	return Status{State: Pending, CallId: callId}
}

// Finish applies a result; results for other calls are ignored.
func (st Status) Finish(msg ResultMsg) (Status, bool) {

	if st.State != Pending || msg.CallId != st.CallId {
		return st, false
	}

	if msg.Err != nil {
		return Status{State: Failed, CallId: st.CallId, Err: msg.Err}, true
	}
	return Status{State: Succeeded, CallId: st.CallId}, true
}

func (st Status) IsPending() bool {
	return st.State == Pending
}

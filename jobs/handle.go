package jobs

import "sync/atomic"

// jobState is the completion record shared by a handle and the worker running the job
type jobState struct {
	done   chan struct{}
	err    error
	reaped atomic.Bool
}

func newJobState() *jobState {
	return &jobState{done: make(chan struct{})}
}

// finish stores the result and releases waiters, called exactly once
func (s *jobState) finish(err error) {
	s.err = err
	close(s.done)
}

// Handle is an opaque reference to a scheduled job
// The zero Handle refers to no job
type Handle struct {
	id    uint64
	state *jobState
}

// ID returns the scheduler-unique job number, 0 for the zero handle
func (h Handle) ID() uint64 {
	return h.id
}

// Done reports whether the job has completed without blocking
func (h Handle) Done() bool {
	if h.state == nil {
		return true
	}
	select {
	case <-h.state.done:
		return true
	default:
		return false
	}
}

func (h Handle) wait() error {
	if h.state == nil {
		return nil
	}
	<-h.state.done
	if h.state.reaped.CompareAndSwap(false, true) {
		return h.state.err
	}
	return nil
}

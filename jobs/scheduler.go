// Package jobs provides a fixed-size worker pool with FIFO scheduling, range dispatch and
// blocking joins that surface job failures to the first waiter
package jobs

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrClosed is reported by handles scheduled after Close
var ErrClosed = errors.New("jobs: scheduler closed")

// Job is a unit of work; a non-nil error is stored on its handle
type Job interface {
	Execute() error
}

// Func adapts a function to Job
type Func func() error

// Execute calls f
func (f Func) Execute() error {
	if f == nil {
		return nil
	}
	return f()
}

// queued pairs a job with its completion state
type queued struct {
	job   Job
	state *jobState
}

// Scheduler is a fixed pool of worker goroutines consuming a shared FIFO queue
// No priorities, no work stealing, no timeouts
type Scheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []queued
	head    int
	closed  bool
	workers int

	nextID atomic.Uint64
	wg     sync.WaitGroup
}

// NewScheduler starts workers goroutines; workers <= 0 uses max(1, GOMAXPROCS)
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = max(1, runtime.GOMAXPROCS(0))
	}
	s := &Scheduler{workers: workers}
	s.cond = sync.NewCond(&s.mu)

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

// WorkerCount returns the pool size
func (s *Scheduler) WorkerCount() int {
	return s.workers
}

// Close drains queued jobs, then stops and joins all workers
// Safe to call more than once
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
	s.wg.Wait()
}

// Schedule enqueues job and returns its handle
// A nil job yields a zero handle; Wait on it returns immediately
func (s *Scheduler) Schedule(job Job) Handle {
	if job == nil {
		return Handle{}
	}

	h := Handle{id: s.nextID.Add(1), state: newJobState()}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		h.state.finish(errors.WithStack(ErrClosed))
		return h
	}
	s.queue = append(s.queue, queued{job: job, state: h.state})
	s.mu.Unlock()
	s.cond.Signal()

	return h
}

// ScheduleFunc enqueues fn
func (s *Scheduler) ScheduleFunc(fn func() error) Handle {
	if fn == nil {
		return Handle{}
	}
	return s.Schedule(Func(fn))
}

// Dispatch splits [0, count) into contiguous [start, end) chunks of batchSize, the last chunk may be
// short, and schedules one job per chunk. Handles are returned in chunk order
func (s *Scheduler) Dispatch(count, batchSize int, fn func(start, end int) error) []Handle {
	if count <= 0 || fn == nil {
		return nil
	}
	if batchSize <= 0 {
		batchSize = count
	}

	handles := make([]Handle, 0, (count+batchSize-1)/batchSize)
	for start := 0; start < count; start += batchSize {
		end := min(start+batchSize, count)
		lo, hi := start, end
		handles = append(handles, s.Schedule(Func(func() error {
			return fn(lo, hi)
		})))
	}
	return handles
}

// Wait blocks until the job behind h completes
// Its error is returned to the first caller only; later waits on the same handle return nil
func (s *Scheduler) Wait(h Handle) error {
	return h.wait()
}

// WaitAll waits on every handle in order
// A failure does not stop waiting for the rest; the first failure in handle order is returned
func (s *Scheduler) WaitAll(handles []Handle) error {
	var first error
	for _, h := range handles {
		if err := h.wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// worker pulls jobs FIFO until the scheduler is closed and the queue is empty
func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		for !s.closed && s.head == len(s.queue) {
			s.cond.Wait()
		}
		if s.head == len(s.queue) {
			s.mu.Unlock()
			return
		}
		item := s.queue[s.head]
		s.queue[s.head] = queued{}
		s.head++
		if s.head == len(s.queue) {
			// Queue drained, reuse backing array
			s.queue = s.queue[:0]
			s.head = 0
		}
		s.mu.Unlock()

		item.state.finish(run(item.job))
	}
}

// run executes job, converting a panic into an error
func run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "job panicked")
			} else {
				err = errors.Errorf("job panicked: %v", r)
			}
		}
	}()
	return job.Execute()
}

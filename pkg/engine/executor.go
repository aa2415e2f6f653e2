package engine

import "sync"

type bufferedOp struct {
	run  func() error
	done chan error
}

// Executor gates a collection's operations on its load. Before the load
// completes, submitted operations are queued; ProcessBuffer (called by
// the durability layer once indexes are rebuilt) releases them in
// submission order. After that, operations run immediately. Fail releases
// them too, each returning the load error.
type Executor struct {
	mu     sync.Mutex
	ready  bool
	err    error
	buffer []bufferedOp
}

// NewExecutor creates an executor that buffers until ProcessBuffer.
func NewExecutor() *Executor {
	return &Executor{}
}

// Submit runs the operation, or blocks until the pending load releases
// the buffer and the operation has run. After a failed load every
// submission returns the load error without running.
func (e *Executor) Submit(op func() error) error {
	e.mu.Lock()
	if e.err != nil {
		err := e.err
		e.mu.Unlock()
		return err
	}
	if e.ready {
		e.mu.Unlock()
		return op()
	}

	entry := bufferedOp{run: op, done: make(chan error, 1)}
	e.buffer = append(e.buffer, entry)
	e.mu.Unlock()

	return <-entry.done
}

// ProcessBuffer marks the executor ready and runs every buffered
// operation in order.
func (e *Executor) ProcessBuffer() {
	e.mu.Lock()
	e.ready = true
	pending := e.buffer
	e.buffer = nil
	e.mu.Unlock()

	for _, entry := range pending {
		entry.done <- entry.run()
	}
}

// Fail marks the pending load as failed: every buffered operation is
// released with err instead of running, and so is every later Submit.
func (e *Executor) Fail(err error) {
	e.mu.Lock()
	e.err = err
	pending := e.buffer
	e.buffer = nil
	e.mu.Unlock()

	for _, entry := range pending {
		entry.done <- err
	}
}

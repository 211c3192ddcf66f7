package service

import "sync"

// emitTurns hands out tickets under the builder lock and lets their holders
// emit strictly in ticket order once the lock is gone.
type emitTurns struct {
	mu      sync.Mutex
	cond    *sync.Cond
	issued  uint64
	serving uint64
}

// take issues the next ticket. Call with the builder lock held.
func (e *emitTurns) take() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.issued
	e.issued++
	return t
}

// run waits for ticket's turn, runs fn, then passes the turn on.
func (e *emitTurns) run(ticket uint64, fn func()) {
	e.mu.Lock()
	if e.cond == nil {
		e.cond = sync.NewCond(&e.mu)
	}
	for e.serving != ticket {
		e.cond.Wait()
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.serving++
		e.cond.Broadcast()
		e.mu.Unlock()
	}()
	fn()
}

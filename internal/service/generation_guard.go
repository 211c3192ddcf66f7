package service

import (
	"context"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// generationGuard: one AI generation per component action
// ─────────────────────────────────────────────────────────────

// generationGuard tracks in-flight generations by key. Once Drain has been
// called it refuses new work, so shutdown cannot race a late Acquire.
type generationGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	closed  bool
	idle    chan struct{}
}

// Acquire marks key as running. It fails with ErrGenerationInProgress when
// key already runs, and with ErrBuilderClosed after Drain.
func (g *generationGuard) Acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrBuilderClosed
	}
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[key]; ok {
		return ErrGenerationInProgress
	}
	g.running[key] = struct{}{}
	return nil
}

// Release ends a generation started by a successful Acquire.
func (g *generationGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
	if len(g.running) == 0 && g.idle != nil {
		close(g.idle)
		g.idle = nil
	}
}

// Running reports whether key is in flight.
func (g *generationGuard) Running(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[key]
	return ok
}

// Drain stops accepting generations and blocks until the running ones
// finish or ctx ends.
func (g *generationGuard) Drain(ctx context.Context) {
	g.mu.Lock()
	g.closed = true
	if len(g.running) == 0 {
		g.mu.Unlock()
		return
	}
	if g.idle == nil {
		g.idle = make(chan struct{})
	}
	idle := g.idle
	g.mu.Unlock()

	select {
	case <-idle:
	case <-ctx.Done():
	}
}

package ui

import (
	"context"
	"sync"
)

// latest tracks the most recent request of one flow. Starting a request
// cancels the one before it, and only the most recent may touch the display.
type latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func (l *latest) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

// reset abandons whatever is pending without starting anything new.
func (l *latest) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}

func (l *latest) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq == seq
}

// commit runs fn only if seq is still the most recent request.
func (l *latest) commit(seq uint64, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seq != seq {
		return false
	}
	fn()
	return true
}

func (l *latest) end(seq uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seq == seq && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

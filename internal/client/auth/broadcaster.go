package auth

import (
	"log/slog"
	"sync"
)

// Broadcaster is a single-slot logout callback registry. It decouples the
// HTTP layer (which detects dead sessions) from the session controller
// (which owns the state): the client only sees the Trigger side.
//
// Invariant: at most one callback is registered; a later Register replaces
// the earlier one. Triggering with no registration is a logged no-op.
type Broadcaster struct {
	mu       sync.Mutex
	callback func()
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Register stores cb as the logout handler, replacing any previous one.
func (b *Broadcaster) Register(cb func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callback = cb
}

// Trigger invokes the registered handler synchronously.
func (b *Broadcaster) Trigger() {
	b.mu.Lock()
	cb := b.callback
	b.mu.Unlock()

	if cb == nil {
		slog.Warn("logout triggered with no registered handler")
		return
	}
	cb()
}

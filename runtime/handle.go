package runtime

import "sync"

// Handle is the caller-facing object for a running actor: it sends messages
// to, and requests shutdown of, the backing execution unit.
type Handle[M any] struct {
	id         string
	inbox      chan M
	completion Completion

	mu          sync.RWMutex
	closed      bool // Send must fail
	inboxClosed bool // close(inbox) already issued
}

// ID returns the unique instance ID assigned at spawn time.
func (h *Handle[M]) ID() string {
	return h.id
}

// Send enqueues a message without blocking. It fails with ErrChannelClosed
// once the dispatch loop has exited or a stop was requested, and with
// ErrMailboxFull when the bounded inbox is full.
func (h *Handle[M]) Send(msg M) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrChannelClosed
	}
	select {
	case h.inbox <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

// Stop closes the inbound channel and blocks until the execution unit has
// fully terminated; messages enqueued before the close are still dispatched,
// and on_stop has run by the time Stop returns. Calling Stop twice is safe:
// the second call just waits for the same termination.
func (h *Handle[M]) Stop() {
	h.mu.Lock()
	if !h.inboxClosed {
		h.inboxClosed = true
		h.closed = true
		close(h.inbox)
	}
	h.mu.Unlock()
	h.completion.Join()
}

// Completion exposes the join token returned by the spawner, for callers
// that need the concrete completion type of a substituted backend.
func (h *Handle[M]) Completion() Completion {
	return h.completion
}

// markClosed makes every future Send fail. Called when the execution unit
// terminates for any reason.
func (h *Handle[M]) markClosed() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

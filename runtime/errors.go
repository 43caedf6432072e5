package runtime

import "errors"

// Error types for the runtime package.
var (
	// ErrChannelClosed is returned by Send once the actor's dispatch loop
	// has exited, normally or through an init failure.
	ErrChannelClosed = errors.New("actor channel closed")

	// ErrMailboxFull is returned by Send when the bounded inbox cannot
	// accept another message. Send never blocks and never drops silently.
	ErrMailboxFull = errors.New("actor mailbox full")
)

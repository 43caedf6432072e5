// Package trace records dispatch events emitted by running actors: spawn,
// message dispatch, ticks, shutdown, and abnormal termination. Recorders are
// optional runtime observers; the in-memory recorder backs tests, with JSONL
// and SQLite sinks for offline inspection.
package trace

import (
	"sync"
	"time"
)

// Event kinds.
const (
	KindSpawn      = "spawn"
	KindMessage    = "message"
	KindTick       = "tick"
	KindStop       = "stop"
	KindInitFailed = "init_failed"
	KindPanic      = "panic"
	KindError      = "error"
)

// Event is a single dispatch event from one actor instance. ActorID is
// unique per spawn, Kind is one of the Kind* constants, and Seq is the
// per-instance dispatch order.
type Event struct {
	ActorID   string    `json:"actor_id"`
	Actor     string    `json:"actor"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder consumes dispatch events. Implementations must be safe for use
// from multiple actor instances at once.
type Recorder interface {
	Record(Event) error
}

// Memory is an in-memory recorder.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Record(e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of all recorded events in record order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Kinds returns the kind sequence of all recorded events, a convenient
// shape for asserting dispatch order.
func (m *Memory) Kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]string, len(m.events))
	for i, e := range m.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Count returns the number of recorded events of the given kind.
func (m *Memory) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

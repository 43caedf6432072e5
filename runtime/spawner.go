package runtime

import "github.com/panjf2000/ants/v2"

// Completion is the join token for a spawned execution unit. Join blocks
// until the unit has fully terminated and may be called more than once.
type Completion interface {
	Join()
}

// Spawner creates the backing execution unit for an actor. Implementations
// accept a zero-argument unit of work and return its completion token,
// letting callers substitute goroutines, worker pools, or test-synchronous
// execution without touching generated code.
type Spawner interface {
	Spawn(work func()) (Completion, error)
}

type chanCompletion chan struct{}

func (c chanCompletion) Join() { <-c }

// GoSpawner runs each unit of work on its own goroutine. It is the default
// spawner: one execution unit per actor instance.
type GoSpawner struct{}

func (GoSpawner) Spawn(work func()) (Completion, error) {
	done := make(chanCompletion)
	go func() {
		defer close(done)
		work()
	}()
	return done, nil
}

// PoolSpawner runs units of work on a shared ants goroutine pool. Spawn
// fails when the pool cannot accept the unit, so an actor is never silently
// queued behind a full pool.
type PoolSpawner struct {
	pool *ants.Pool
}

// NewPoolSpawner creates a spawner backed by the given pool.
func NewPoolSpawner(pool *ants.Pool) *PoolSpawner {
	return &PoolSpawner{pool: pool}
}

func (s *PoolSpawner) Spawn(work func()) (Completion, error) {
	done := make(chanCompletion)
	err := s.pool.Submit(func() {
		defer close(done)
		work()
	})
	if err != nil {
		return nil, err
	}
	return done, nil
}

// SyncSpawner runs the unit of work on the calling goroutine before Spawn
// returns. It exists for tests that need deterministic scheduling; spawning
// a dispatch loop through it blocks until the actor stops.
type SyncSpawner struct{}

func (SyncSpawner) Spawn(work func()) (Completion, error) {
	done := make(chanCompletion)
	close(done)
	work()
	return done, nil
}

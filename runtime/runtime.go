// Package runtime is the shim generated actor code executes against. It
// owns the dispatch loop contract: messages are received with a timed wait,
// message handling strictly takes priority over ticking, and a stop request
// drains every message enqueued before the close ahead of the stop hook.
package runtime

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stagehand-xyz/go-stagehand/trace"
)

// DefaultTickInterval is the loop timeout window when none is configured.
const DefaultTickInterval = 100 * time.Millisecond

// DefaultMailboxSize bounds the inbox when none is configured.
const DefaultMailboxSize = 256

// Options configures one actor spawn.
type Options struct {
	// Name labels the actor in logs and trace events.
	Name string
	// TickInterval is how long the loop waits for a message before ticking.
	TickInterval time.Duration
	// MailboxSize bounds the inbox; Send fails with ErrMailboxFull beyond it.
	MailboxSize int
	// Spawner creates the backing execution unit. Defaults to GoSpawner.
	Spawner Spawner
	// Logger receives lifecycle and failure logs. Defaults to a nop logger.
	Logger *zap.Logger
	// Trace, when set, receives one event per dispatch-loop action.
	Trace trace.Recorder
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "actor"
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.MailboxSize <= 0 {
		o.MailboxSize = DefaultMailboxSize
	}
	if o.Spawner == nil {
		o.Spawner = GoSpawner{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Unit is the body of one actor's execution unit. It runs init code, calls
// p.Run to enter the dispatch loop, and runs stop code after Run returns.
// Returning a non-nil error before Run aborts the actor: no message is ever
// processed and the handle's Send fails with ErrChannelClosed.
type Unit[M any] func(p *Proc[M]) error

// Proc is the dispatch-loop context owned by a single execution unit. State
// reachable from it is never shared outside that unit.
type Proc[M any] struct {
	handle *Handle[M]
	name   string
	tick   time.Duration
	log    *zap.Logger
	rec    trace.Recorder

	entered bool
	seq     uint64
}

// ID returns the actor instance ID.
func (p *Proc[M]) ID() string { return p.handle.id }

// Logger returns the logger configured for this actor.
func (p *Proc[M]) Logger() *zap.Logger { return p.log }

// Run executes the dispatch loop until the inbound channel is closed by a
// stop request and every already-enqueued message has been dispatched:
//
//  1. Wait for the next message for up to the tick interval.
//  2. A message arriving inside the window is dispatched immediately; the
//     window restarts with no tick accounting.
//  3. When the window elapses with no message pending, onTick runs once.
func (p *Proc[M]) Run(onMessage func(M), onTick func()) {
	p.entered = true
	timer := time.NewTimer(p.tick)
	defer timer.Stop()
	for {
		select {
		case msg, ok := <-p.handle.inbox:
			if !ok {
				return
			}
			p.dispatch(onMessage, msg)
		case <-timer.C:
			// A message that raced the timeout still wins over the tick.
			select {
			case msg, ok := <-p.handle.inbox:
				if !ok {
					return
				}
				p.dispatch(onMessage, msg)
			default:
				p.record(trace.KindTick, "")
				if onTick != nil {
					onTick()
				}
			}
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(p.tick)
	}
}

func (p *Proc[M]) dispatch(onMessage func(M), msg M) {
	p.record(trace.KindMessage, fmt.Sprintf("%T", msg))
	if onMessage != nil {
		onMessage(msg)
	}
}

func (p *Proc[M]) record(kind, detail string) {
	if p.rec == nil {
		return
	}
	e := trace.Event{
		ActorID:   p.handle.id,
		Actor:     p.name,
		Kind:      kind,
		Detail:    detail,
		Seq:       p.seq,
		Timestamp: time.Now(),
	}
	p.seq++
	if err := p.rec.Record(e); err != nil {
		p.log.Warn("trace record failed", zap.String("actor", p.name), zap.Error(err))
	}
}

// Start spawns an actor and returns its handle as soon as the execution
// unit is scheduled; the unit's init code runs asynchronously. Start fails
// only when the spawner cannot create the unit.
func Start[M any](opts Options, unit Unit[M]) (*Handle[M], error) {
	opts = opts.withDefaults()
	h := &Handle[M]{
		id:    uuid.New().String(),
		inbox: make(chan M, opts.MailboxSize),
	}
	p := &Proc[M]{
		handle: h,
		name:   opts.Name,
		tick:   opts.TickInterval,
		log:    opts.Logger,
		rec:    opts.Trace,
	}

	work := func() {
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("actor terminated by panic",
					zap.String("actor", p.name), zap.String("id", h.id), zap.Any("panic", r))
				p.record(trace.KindPanic, fmt.Sprint(r))
			}
			h.markClosed()
		}()
		p.record(trace.KindSpawn, "")
		if err := unit(p); err != nil {
			if !p.entered {
				p.log.Warn("actor init failed",
					zap.String("actor", p.name), zap.String("id", h.id), zap.Error(err))
				p.record(trace.KindInitFailed, err.Error())
			} else {
				p.log.Error("actor unit failed",
					zap.String("actor", p.name), zap.String("id", h.id), zap.Error(err))
				p.record(trace.KindError, err.Error())
			}
			return
		}
		p.record(trace.KindStop, "")
	}

	completion, err := opts.Spawner.Spawn(work)
	if err != nil {
		return nil, err
	}
	h.completion = completion
	return h, nil
}

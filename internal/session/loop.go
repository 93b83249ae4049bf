// Package session runs snake engines outside Bubble Tea: one goroutine per
// session serialises queued inputs and timer ticks, and publishes snapshots
// for readers on other goroutines.
package session

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ID identifies a session.
type ID string

// NewID returns a fresh random session id.
func NewID() ID {
	return ID(uuid.NewString())
}

const defaultInputBuffer = 32

// Loop drives one Engine. Only the Run goroutine touches the engine.
type Loop struct {
	id     ID
	engine *snake.Engine
	logger *log.Logger

	inputs   chan snake.Input
	done     chan struct{}
	doneOnce sync.Once
	exited   chan struct{}

	mu     sync.RWMutex
	snap   snake.Snapshot
	subs   map[*Subscription]struct{}
	closed bool // no more snapshots will be published

	lastActive atomic.Int64 // unix nanos of the last input
}

// NewLoop wraps engine in a loop. The engine must not be used elsewhere.
func NewLoop(id ID, engine *snake.Engine, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loop{
		id:     id,
		engine: engine,
		logger: logger.With("session", string(id)),
		inputs: make(chan snake.Input, defaultInputBuffer),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		snap:   engine.Snapshot(),
		subs:   make(map[*Subscription]struct{}),
	}
	l.touch()
	return l
}

// ID returns the session identifier.
func (l *Loop) ID() ID {
	return l.id
}

// Send queues an input for the next scheduling cycle. It never blocks and
// reports false if the queue is full or the loop has stopped.
func (l *Loop) Send(in snake.Input) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.inputs <- in:
		l.touch()
		return true
	default:
		l.logger.Warn("Input queue full, dropping input", "kind", in.Kind)
		return false
	}
}

// Snapshot returns the most recently published snapshot.
func (l *Loop) Snapshot() snake.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// LastActive returns the time of the last accepted input.
func (l *Loop) LastActive() time.Time {
	return time.Unix(0, l.lastActive.Load())
}

// Done returns a channel that closes once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

// Stop asks Run to return.
func (l *Loop) Stop() {
	l.doneOnce.Do(func() {
		close(l.done)
	})
}

// Run processes inputs and ticks until ctx is cancelled or Stop is called.
// The tick timer is armed only while the session is Playing.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.exited)
	defer l.closeSubscriptions()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	var tickC <-chan time.Time

	// arm restarts the timer for the current state and interval.
	arm := func() {
		timer.Stop()
		tickC = nil
		if l.engine.State() == snake.StatePlaying {
			timer.Reset(l.engine.Interval())
			tickC = timer.C
		}
	}

	l.logger.Debug("Session loop started")
	defer l.logger.Debug("Session loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return

		case in := <-l.inputs:
			epoch := l.engine.Epoch()
			l.engine.Apply(ctx, in)
			l.drainInputs(ctx)
			if l.engine.Epoch() != epoch {
				arm()
			}
			l.publish(l.engine.Snapshot())

		case <-tickC:
			// Inputs queued before the tick fired are applied first.
			epoch := l.engine.Epoch()
			l.drainInputs(ctx)
			if l.engine.Epoch() == epoch {
				res := l.engine.Tick()
				if res.Ate {
					l.logger.Debug("Food eaten", "score", res.Snapshot.Score, "interval_ms", res.Snapshot.TickIntervalMS)
				}
				if res.Transitioned {
					l.logger.Info("Round over", "score", res.Snapshot.Score, "state", res.Snapshot.State)
				}
			}
			arm()
			l.publish(l.engine.Snapshot())
		}
	}
}

func (l *Loop) drainInputs(ctx context.Context) {
	for {
		select {
		case in := <-l.inputs:
			l.engine.Apply(ctx, in)
		default:
			return
		}
	}
}

func (l *Loop) publish(snap snake.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snap = snap
	for sub := range l.subs {
		sub.send(snap)
	}
}

func (l *Loop) touch() {
	l.lastActive.Store(time.Now().UnixNano())
}

// Subscription receives every published snapshot. Slow readers lose the
// oldest snapshots rather than blocking the loop.
type Subscription struct {
	loop *Loop
	ch   chan snake.Snapshot
	once sync.Once
}

// Subscribe registers a new subscription with the given buffer size.
func (l *Loop) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 8
	}
	sub := &Subscription{loop: l, ch: make(chan snake.Snapshot, buffer)}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	l.subs[sub] = struct{}{}
	return sub
}

// C returns the snapshot channel. It is closed when the loop stops or the
// subscription is closed.
func (s *Subscription) C() <-chan snake.Snapshot {
	return s.ch
}

// Close detaches the subscription.
func (s *Subscription) Close() {
	s.loop.mu.Lock()
	defer s.loop.mu.Unlock()
	delete(s.loop.subs, s)
	s.once.Do(func() { close(s.ch) })
}

// send must be called with the loop mutex held.
func (s *Subscription) send(snap snake.Snapshot) {
	select {
	case s.ch <- snap:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- snap:
		default:
		}
	}
}

func (l *Loop) closeSubscriptions() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	for sub := range l.subs {
		delete(l.subs, sub)
		sub.once.Do(func() { close(sub.ch) })
	}
}

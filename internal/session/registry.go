package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Registry tracks running session loops.
type Registry struct {
	mu    sync.RWMutex
	loops map[ID]*Loop
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loops: make(map[ID]*Loop),
	}
}

// Start wraps engine in a new loop under id, registers it and runs it in its
// own goroutine. The loop is unregistered when it stops.
func (r *Registry) Start(ctx context.Context, id ID, engine *snake.Engine, logger *log.Logger) *Loop {
	l := NewLoop(id, engine, logger)
	r.Register(l)
	go func() {
		defer r.Unregister(l.ID())
		l.Run(ctx)
	}()
	return l
}

// Register adds a loop to the registry.
func (r *Registry) Register(l *Loop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loops[l.ID()] = l
}

// Unregister removes a loop from the registry.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loops, id)
}

// Get retrieves a loop by ID.
func (r *Registry) Get(id ID) (*Loop, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loops[id]
	return l, ok
}

// Count returns the number of registered loops.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loops)
}

// ReapIdle stops loops that received no input for maxIdle and returns how
// many were stopped.
func (r *Registry) ReapIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.RLock()
	var idle []*Loop
	for _, l := range r.loops {
		if l.LastActive().Before(cutoff) {
			idle = append(idle, l)
		}
	}
	r.mu.RUnlock()

	for _, l := range idle {
		l.Stop()
	}
	return len(idle)
}

// StopAll stops every registered loop.
func (r *Registry) StopAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.loops {
		l.Stop()
	}
}

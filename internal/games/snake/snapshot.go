package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the session, safe to hand to renderers and
// other goroutines.
type Snapshot struct {
	Snake          []core.Cell    `json:"snake"`
	Food           *core.Cell     `json:"food"`
	Score          int            `json:"score"`
	TickIntervalMS int64          `json:"tick_interval_ms"`
	State          SessionState   `json:"state"`
	Best           BestScore      `json:"best"`
	Heading        core.Direction `json:"heading"`
	Tick           uint64         `json:"tick"`
	Epoch          uint64         `json:"epoch"`
	Grid           core.Grid      `json:"grid"`
}

// Snapshot returns the current session snapshot.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Snake:          e.body.Clone(),
		Score:          e.score,
		TickIntervalMS: e.interval.Milliseconds(),
		State:          e.state,
		Best:           e.best,
		Heading:        e.heading,
		Tick:           e.tick,
		Epoch:          e.epoch,
		Grid:           e.rules.Grid,
	}
	if e.hasFood {
		food := e.food
		snap.Food = &food
	}
	return snap
}

// Head returns the head cell.
func (s Snapshot) Head() core.Cell {
	if len(s.Snake) == 0 {
		return core.Cell{}
	}
	return s.Snake[0]
}

// Interval returns the tick interval as a duration.
func (s Snapshot) Interval() time.Duration {
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// Package snake implements the toroidal Snake game: the tick engine, the
// session state machine and a text renderer for the shared screen buffer.
//
// The engine is single-threaded and deterministic for a given seed. It has no
// timer of its own; whoever drives it calls Tick every Interval() while the
// session is Playing and feeds inputs through Apply between ticks.
package snake

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// RecordKey is the game-scoped key the best score is stored under.
const RecordKey = "snake"

// Rules holds the constants of one session.
type Rules struct {
	Grid             core.Grid
	InitialLength    int
	InitialDirection core.Direction
	ScoreUnit        int
	BaseInterval     time.Duration
	SpeedStep        time.Duration
	MinInterval      time.Duration
	BlockReversal    bool
	MaxInitials      int
}

// DefaultRules returns the rules of the default configuration.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultSnakeConfig())
}

// RulesFromConfig converts a validated configuration to engine rules.
func RulesFromConfig(cfg config.SnakeConfig) Rules {
	dir, err := core.ParseDirection(cfg.Snake.InitialDirection)
	if err != nil {
		dir = core.DirRight
	}
	return Rules{
		Grid:             core.NewGrid(cfg.Grid.Width, cfg.Grid.Height),
		InitialLength:    cfg.Snake.InitialLength,
		InitialDirection: dir,
		ScoreUnit:        cfg.Scoring.Unit,
		BaseInterval:     cfg.Speed.BaseInterval(),
		SpeedStep:        cfg.Speed.Step(),
		MinInterval:      cfg.Speed.MinInterval(),
		BlockReversal:    cfg.Rules.BlockReversal,
		MaxInitials:      cfg.Rules.MaxInitials,
	}
}

// BestScore is the durable record: the highest score and who made it.
type BestScore struct {
	Score     int       `json:"score"`
	Initials  string    `json:"initials"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Beats reports whether score strictly exceeds the record. Ties never win.
func (b BestScore) Beats(score int) bool {
	return score > b.Score
}

// BestScoreStore persists the best score.
// This interface is implemented by the storage package.
type BestScoreStore interface {
	Load(ctx context.Context) (BestScore, error)
	Save(ctx context.Context, rec BestScore) error
}

// TickResult describes what a single tick did.
type TickResult struct {
	Snapshot     Snapshot
	Moved        bool // a step was executed
	Ate          bool
	Collided     bool
	Exhausted    bool // no free cell left for food
	Transitioned bool // the tick ended the Playing phase
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transitions and persistence errors.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeed seeds food placement.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.spawner = NewSpawner(seed) }
}

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine owns one game session.
type Engine struct {
	rules   Rules
	store   BestScoreStore
	logger  *log.Logger
	spawner *Spawner
	now     func() time.Time

	state    SessionState
	body     Body
	heading  core.Direction
	lastStep core.Direction // direction of the last executed step
	food     core.Cell
	hasFood  bool
	score    int
	interval time.Duration
	best     BestScore
	tick     uint64
	epoch    uint64
}

// New creates an engine in the Start state and loads the best score from
// store. store may be nil, in which case records live only in memory.
func New(ctx context.Context, rules Rules, store BestScoreStore, opts ...Option) *Engine {
	e := &Engine{
		rules: rules,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.spawner == nil {
		e.spawner = NewSpawner(time.Now().UnixNano())
	}

	e.state = StateStart
	e.resetPlayfield()
	e.loadBest(ctx)
	return e
}

// State returns the current session state.
func (e *Engine) State() SessionState {
	return e.state
}

// Interval returns the current tick interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Epoch returns a counter that changes on every state transition. A timer
// armed under one epoch must be discarded once the epoch moves on.
func (e *Engine) Epoch() uint64 {
	return e.epoch
}

// Best returns the best score as currently known to the session.
func (e *Engine) Best() BestScore {
	return e.best
}

// Rules returns the session constants.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Apply feeds one input signal to the state machine and returns the
// resulting snapshot. Signals that do not fit the current state are ignored.
func (e *Engine) Apply(ctx context.Context, in Input) Snapshot {
	switch e.state {
	case StateStart:
		if in.Kind == InputBegin {
			e.begin(ctx)
		}
	case StatePlaying:
		if in.Kind == InputTurn {
			e.turn(in.Dir)
		}
	case StateHighScoreEntry:
		if in.Kind == InputSubmitInitials {
			e.submitInitials(ctx, in.Text)
		}
	case StateGameOver, StateGameOverDisplay:
		if in.Kind == InputRestart {
			e.restart(ctx)
		}
	}
	return e.Snapshot()
}

// Tick advances the snake by one cell. It does nothing outside Playing.
func (e *Engine) Tick() TickResult {
	if e.state != StatePlaying {
		return TickResult{Snapshot: e.Snapshot()}
	}

	var res TickResult
	e.tick++

	candidate := NextHead(e.body, e.heading, e.rules.Grid)
	grew := e.hasFood && candidate == e.food

	// The tail moves out of the way unless the snake grows this step.
	if e.body.Occupies(candidate, !grew) {
		res.Collided = true
		e.logger.Debug("Self collision", "head", candidate, "len", len(e.body), "tick", e.tick)
		e.finish()
		res.Transitioned = true
		res.Snapshot = e.Snapshot()
		return res
	}

	e.body = Advance(e.body, candidate, grew)
	e.lastStep = e.heading
	res.Moved = true

	if grew {
		res.Ate = true
		e.score += e.rules.ScoreUnit
		e.interval = max(e.rules.MinInterval, e.interval-e.rules.SpeedStep)

		food, ok := e.spawner.Spawn(e.body, e.rules.Grid)
		e.food, e.hasFood = food, ok
		if !ok {
			res.Exhausted = true
			e.logger.Warn("No free cell for food, ending session", "len", len(e.body), "score", e.score)
			e.finish()
			res.Transitioned = true
		}
	}

	res.Snapshot = e.Snapshot()
	return res
}

// ForceGameOver ends a Playing session through the normal terminal path.
func (e *Engine) ForceGameOver() Snapshot {
	if e.state == StatePlaying {
		e.finish()
	}
	return e.Snapshot()
}

// begin starts a fresh round.
func (e *Engine) begin(ctx context.Context) {
	e.resetPlayfield()
	e.loadBest(ctx)

	food, ok := e.spawner.Spawn(e.body, e.rules.Grid)
	e.food, e.hasFood = food, ok
	e.setState(StatePlaying)
	if !ok {
		e.logger.Warn("No free cell for food at start", "grid", e.rules.Grid)
		e.finish()
	}
}

// turn updates the heading. A reversal of the last executed step is ignored
// when blocking is enabled and the body is longer than one cell.
func (e *Engine) turn(d core.Direction) {
	if e.rules.BlockReversal && len(e.body) > 1 && d == e.lastStep.Opposite() {
		return
	}
	e.heading = d
}

// finish moves a Playing session to its terminal state.
func (e *Engine) finish() {
	if e.best.Beats(e.score) {
		e.setState(StateHighScoreEntry)
		return
	}
	e.setState(StateGameOver)
}

// submitInitials records the new best score. Empty initials are ignored.
// After a save the record is read back, since another session sharing the
// store may hold a higher score. A failing store is logged; the session
// keeps its own record and moves on.
func (e *Engine) submitInitials(ctx context.Context, text string) {
	initials := NormalizeInitials(text, e.rules.MaxInitials)
	if initials == "" {
		return
	}

	rec := BestScore{Score: e.score, Initials: initials, UpdatedAt: e.now().UTC()}
	e.best = rec
	if e.store != nil {
		if err := e.store.Save(ctx, rec); err != nil {
			e.logger.Error("Failed to save best score", "score", rec.Score, "initials", rec.Initials, "error", err)
		} else if stored, err := e.store.Load(ctx); err != nil {
			e.logger.Warn("Failed to reload best score", "error", err)
		} else {
			if stored.Score != rec.Score || stored.Initials != rec.Initials {
				e.logger.Info("Best score held by another session", "score", stored.Score, "initials", stored.Initials)
			}
			e.best = stored
		}
	}
	e.setState(StateGameOverDisplay)
}

// restart returns to the start screen.
func (e *Engine) restart(ctx context.Context) {
	e.resetPlayfield()
	e.loadBest(ctx)
	e.setState(StateStart)
}

// resetPlayfield puts the snake back at its starting position.
func (e *Engine) resetPlayfield() {
	e.body = newBody(e.rules.Grid, e.rules.InitialLength, e.rules.InitialDirection)
	e.heading = e.rules.InitialDirection
	e.lastStep = e.rules.InitialDirection
	e.hasFood = false
	e.score = 0
	e.interval = e.rules.BaseInterval
	e.tick = 0
}

// loadBest refreshes the best score. A failing store yields an empty record.
func (e *Engine) loadBest(ctx context.Context) {
	if e.store == nil {
		return
	}
	best, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Warn("Failed to load best score", "error", err)
		best = BestScore{}
	}
	e.best = best
}

func (e *Engine) setState(s SessionState) {
	if s == e.state {
		return
	}
	e.logger.Debug("State change", "from", e.state, "to", s, "score", e.score)
	e.state = s
	e.epoch++
}

// NormalizeInitials trims, uppercases and truncates text to limit runes.
func NormalizeInitials(text string, limit int) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit])
	}
	return s
}

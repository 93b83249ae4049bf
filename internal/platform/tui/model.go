package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// helpHeight is the number of lines below the board (status + help).
const helpHeight = 2

// Model is the Bubble Tea model for one snake session.
type Model struct {
	engine   *snake.Engine
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	initials textinput.Model
	logger   *log.Logger
	shotDir  string // empty disables screenshots
	status   string
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the model's logger.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithScreenshotDir sets where Ctrl+S writes text screenshots.
// An empty dir disables screenshots.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) { m.shotDir = dir }
}

// WithScreenSize sizes the board for a terminal of w x h cells before the
// first WindowSizeMsg arrives.
func WithScreenSize(w, h int) ModelOption {
	return func(m *Model) {
		m.screen.Resize(w, max(1, h-helpHeight))
		m.help.Width = w
	}
}

// NewModel creates a model driving engine.
func NewModel(engine *snake.Engine, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "AAA"
	ti.CharLimit = engine.Rules().MaxInitials

	w, h := snake.BoardSize(engine.Rules().Grid)
	m := Model{
		engine:   engine,
		screen:   core.NewScreen(w, h),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		initials: ti,
		shotDir:  defaultScreenshotDir(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Init schedules the first tick if the session is already running.
func (m Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-helpHeight))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	// Cursor blink and other text input messages.
	if m.initials.Focused() {
		var cmd tea.Cmd
		m.initials, cmd = m.initials.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing initials every printable key belongs to the text input.
	if m.engine.State() == snake.StateHighScoreEntry {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Confirm):
			return m.apply(snake.SubmitInitials(m.initials.Value()))
		}
		var cmd tea.Cmd
		m.initials, cmd = m.initials.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	default:
		if in, ok := snake.InputFromAction(action); ok {
			return m.apply(in)
		}
	}
	return m, nil
}

// apply feeds an input to the engine and reacts to a state change.
func (m Model) apply(in snake.Input) (tea.Model, tea.Cmd) {
	epoch := m.engine.Epoch()
	m.engine.Apply(context.Background(), in)
	if m.engine.Epoch() == epoch {
		return m, nil
	}
	return m.enterState()
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	// Stale tick from a previous round or state.
	if msg.Epoch != m.engine.Epoch() || m.engine.State() != snake.StatePlaying {
		return m, nil
	}

	res := m.engine.Tick()
	if res.Transitioned {
		m.logger.Info("Round over",
			"score", res.Snapshot.Score,
			"best", res.Snapshot.Best.Score,
			"state", res.Snapshot.State)
		return m.enterState()
	}
	return m, m.scheduleTick()
}

// enterState runs the side effects of arriving in the engine's current state.
func (m Model) enterState() (tea.Model, tea.Cmd) {
	switch m.engine.State() {
	case snake.StatePlaying:
		m.status = ""
		return m, m.scheduleTick()
	case snake.StateHighScoreEntry:
		m.initials.Reset()
		return m, m.initials.Focus()
	default:
		m.initials.Blur()
		return m, nil
	}
}

// scheduleTick arms the next tick, only while playing.
func (m Model) scheduleTick() tea.Cmd {
	if m.engine.State() != snake.StatePlaying {
		return nil
	}
	return tickCmd(m.engine.Interval(), m.engine.Epoch())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		m.status = "Screenshots are disabled"
		return
	}

	snake.Render(m.screen, m.engine.Snapshot(), m.initials.Value())

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Error("Cannot create screenshot directory", "dir", m.shotDir, "error", err)
		m.status = "Screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("Cannot save screenshot", "path", path, "error", err)
		m.status = "Screenshot failed"
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
	m.status = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snake.Render(m.screen, m.engine.Snapshot(), m.initials.Value())
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(m.status) + "\n" + m.help.View(m.keys)
}

func defaultScreenshotDir() string {
	dir := config.UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "screenshots")
}

// Run starts the Bubble Tea program for engine.
func Run(engine *snake.Engine, opts ...ModelOption) error {
	model := NewModel(engine, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

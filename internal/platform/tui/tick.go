// Package tui provides the Bubble Tea front end for the snake game and an
// SSH server that serves it to remote terminals.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game tick. Epoch ties it to the engine state
// it was scheduled in; ticks from an older epoch are ignored.
type TickMsg struct {
	Epoch uint64
	Time  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, Time: t}
	})
}

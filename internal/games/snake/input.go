package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// InputKind is the type of an input signal.
type InputKind int

const (
	InputBegin InputKind = iota + 1
	InputTurn
	InputSubmitInitials
	InputRestart
)

func (k InputKind) String() string {
	switch k {
	case InputBegin:
		return "begin"
	case InputTurn:
		return "direction"
	case InputSubmitInitials:
		return "submit_initials"
	case InputRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Input is one signal for the session state machine.
type Input struct {
	Kind InputKind
	Dir  core.Direction // InputTurn
	Text string         // InputSubmitInitials
}

// Begin leaves the start screen.
func Begin() Input { return Input{Kind: InputBegin} }

// Turn requests a new heading.
func Turn(d core.Direction) Input { return Input{Kind: InputTurn, Dir: d} }

// SubmitInitials confirms the initials for a new best score.
func SubmitInitials(text string) Input { return Input{Kind: InputSubmitInitials, Text: text} }

// Restart goes back to the start screen after a finished round.
func Restart() Input { return Input{Kind: InputRestart} }

// InputFromAction maps a key action to an input signal. Actions handled by
// the front end itself (quit, screenshot, confirm) report false.
func InputFromAction(a core.Action) (Input, bool) {
	if d, ok := a.Direction(); ok {
		return Turn(d), true
	}
	switch a {
	case core.ActionBegin:
		return Begin(), true
	case core.ActionRestart:
		return Restart(), true
	}
	return Input{}, false
}

// ParseInput builds an input from its wire form: kind is one of begin,
// direction, submit_initials or restart; value carries the direction name or
// the initials.
func ParseInput(kind, value string) (Input, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "begin":
		return Begin(), nil
	case "direction", "turn":
		d, err := core.ParseDirection(value)
		if err != nil {
			return Input{}, err
		}
		return Turn(d), nil
	case "submit_initials", "initials":
		return SubmitInitials(value), nil
	case "restart":
		return Restart(), nil
	}
	return Input{}, fmt.Errorf("snake: unknown input %q", kind)
}

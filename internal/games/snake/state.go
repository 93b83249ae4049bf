package snake

import "fmt"

// SessionState is the phase of a game session.
type SessionState int

const (
	StateStart SessionState = iota
	StatePlaying
	StateGameOver
	StateHighScoreEntry
	StateGameOverDisplay
)

var stateNames = [...]string{
	StateStart:           "start",
	StatePlaying:         "playing",
	StateGameOver:        "game_over",
	StateHighScoreEntry:  "high_score_entry",
	StateGameOverDisplay: "game_over_display",
}

func (s SessionState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *SessionState) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = SessionState(i)
			return nil
		}
	}
	return fmt.Errorf("snake: unknown session state %q", text)
}

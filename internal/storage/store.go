// Package storage persists the best score. The SQLite backend uses the
// pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultRecordKey is the key the snake record is stored under.
const DefaultRecordKey = snake.RecordKey

// ErrUnknownBackend is returned by NewStore for an unsupported kind.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Store persists a single best-score record.
// Save only replaces the record when the new score is strictly greater.
type Store interface {
	snake.BestScoreStore
	Reset(ctx context.Context) error
	Close() error
}

// NewStore opens a store of the given kind: "sqlite" (default) or "memory".
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "sqlite":
		s, err := Open(sqlitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestMemoryStoreSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec, _ := store.Load(ctx)
	if rec != (snake.BestScore{}) {
		t.Fatalf("empty Load() = %+v", rec)
	}

	_ = store.Save(ctx, snake.BestScore{Score: 100, Initials: "OLD"})
	_ = store.Save(ctx, snake.BestScore{Score: 100, Initials: "TIE"})
	_ = store.Save(ctx, snake.BestScore{Score: 90, Initials: "LOW"})

	rec, _ = store.Load(ctx)
	if rec.Score != 100 || rec.Initials != "OLD" {
		t.Errorf("Load() = %+v, expected (100, OLD)", rec)
	}

	_ = store.Reset(ctx)
	rec, _ = store.Load(ctx)
	if rec.Score != 0 {
		t.Errorf("Load() after Reset = %+v", rec)
	}
}

func TestNewStore(t *testing.T) {
	mem, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("NewStore(memory) failed: %v", err)
	}
	if _, ok := mem.(*MemoryStore); !ok {
		t.Errorf("NewStore(memory) returned %T", mem)
	}

	sq, err := NewStore("sqlite", t.TempDir()+"/best.db")
	if err != nil {
		t.Fatalf("NewStore(sqlite) failed: %v", err)
	}
	defer sq.Close()
	if _, ok := sq.(*SQLiteStore); !ok {
		t.Errorf("NewStore(sqlite) returned %T", sq)
	}

	if _, err := NewStore("redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("NewStore(redis) error = %v, expected ErrUnknownBackend", err)
	}
}

// dirToward returns the direction that moves from a toward b on one axis.
func dirToward(a, b int, horizontal bool) core.Direction {
	switch {
	case horizontal && b > a:
		return core.DirRight
	case horizontal:
		return core.DirLeft
	case b > a:
		return core.DirDown
	default:
		return core.DirUp
	}
}

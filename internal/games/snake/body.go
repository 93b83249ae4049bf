package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Body is the snake as an ordered list of cells, head at index 0.
type Body []core.Cell

// newBody lays out a body of length cells with the head at the grid centre
// and the rest trailing behind the heading.
func newBody(g core.Grid, length int, heading core.Direction) Body {
	length = max(1, min(length, g.Cells()))
	head := g.Center()
	back := heading.Opposite()

	b := make(Body, 0, length)
	b = append(b, head)
	for len(b) < length {
		b = append(b, g.Step(b[len(b)-1], back))
	}
	return b
}

// Head returns the first cell.
func (b Body) Head() core.Cell {
	return b[0]
}

// Tail returns the last cell.
func (b Body) Tail() core.Cell {
	return b[len(b)-1]
}

// NextHead returns the cell the head moves into when stepping in dir,
// wrapped onto the grid.
func NextHead(b Body, dir core.Direction, g core.Grid) core.Cell {
	return g.Step(b.Head(), dir)
}

// Advance returns a new body with head prepended. The tail is dropped unless
// grew is set, so the length changes by exactly 0 or +1. b is not modified.
func Advance(b Body, head core.Cell, grew bool) Body {
	n := len(b)
	if !grew {
		n--
	}
	out := make(Body, 0, n+1)
	out = append(out, head)
	out = append(out, b[:n]...)
	return out
}

// Occupies reports whether c is part of the body. With excludeTail the last
// cell is ignored, as it moves away on a non-growing step.
func (b Body) Occupies(c core.Cell, excludeTail bool) bool {
	n := len(b)
	if excludeTail {
		n--
	}
	for i := 0; i < n; i++ {
		if b[i] == c {
			return true
		}
	}
	return false
}

// Set returns the occupied cells as a lookup set.
func (b Body) Set() map[core.Cell]struct{} {
	set := make(map[core.Cell]struct{}, len(b))
	for _, c := range b {
		set[c] = struct{}{}
	}
	return set
}

// Clone returns a copy that shares no memory with b.
func (b Body) Clone() Body {
	return append(Body(nil), b...)
}

package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestNextHead(t *testing.T) {
	g := core.NewGrid(20, 20)
	tests := []struct {
		name     string
		head     core.Cell
		dir      core.Direction
		expected core.Cell
	}{
		{"right edge", core.Cell{X: 19, Y: 10}, core.DirRight, core.Cell{X: 0, Y: 10}},
		{"left edge", core.Cell{X: 0, Y: 10}, core.DirLeft, core.Cell{X: 19, Y: 10}},
		{"interior", core.Cell{X: 3, Y: 3}, core.DirUp, core.Cell{X: 3, Y: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextHead(Body{tc.head}, tc.dir, g); got != tc.expected {
				t.Errorf("NextHead = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	b := Body{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	head := core.Cell{X: 3, Y: 0}

	moved := Advance(b, head, false)
	if len(moved) != 3 || moved.Head() != head || moved.Tail() != (core.Cell{X: 1, Y: 0}) {
		t.Errorf("Advance without growth = %v", moved)
	}

	grown := Advance(b, head, true)
	if len(grown) != 4 || grown.Tail() != (core.Cell{X: 0, Y: 0}) {
		t.Errorf("Advance with growth = %v", grown)
	}

	if b.Head() != (core.Cell{X: 2, Y: 0}) || len(b) != 3 {
		t.Errorf("Advance modified its input: %v", b)
	}
}

func TestOccupies(t *testing.T) {
	b := Body{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	if !b.Occupies(core.Cell{X: 0, Y: 0}, false) {
		t.Error("tail should be occupied")
	}
	if b.Occupies(core.Cell{X: 0, Y: 0}, true) {
		t.Error("tail should be ignored with excludeTail")
	}
	if b.Occupies(core.Cell{X: 5, Y: 5}, false) {
		t.Error("free cell reported as occupied")
	}
}

func TestNewBodyTrailsBehindHeading(t *testing.T) {
	g := core.NewGrid(10, 10)
	b := newBody(g, 3, core.DirUp)
	expected := Body{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	if len(b) != len(expected) {
		t.Fatalf("len = %d, expected %d", len(b), len(expected))
	}
	for i := range expected {
		if b[i] != expected[i] {
			t.Errorf("cell %d = %v, expected %v", i, b[i], expected[i])
		}
	}
}

func TestSpawnerAvoidsBody(t *testing.T) {
	g := core.NewGrid(6, 4)
	b := Body{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	s := NewSpawner(999)

	for i := 0; i < 200; i++ {
		c, ok := s.Spawn(b, g)
		if !ok {
			t.Fatal("Spawn failed with free cells left")
		}
		if b.Occupies(c, false) {
			t.Fatalf("food spawned on the body at %v", c)
		}
		if g.Wrap(c) != c {
			t.Fatalf("food spawned outside the grid at %v", c)
		}
	}
}

func TestSpawnerFullGrid(t *testing.T) {
	g := core.NewGrid(2, 1)
	if _, ok := NewSpawner(1).Spawn(Body{{X: 0, Y: 0}, {X: 1, Y: 0}}, g); ok {
		t.Error("Spawn should fail when the body covers the grid")
	}
}

func TestSpawnerLastFreeCell(t *testing.T) {
	g := core.NewGrid(2, 2)
	b := Body{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	c, ok := NewSpawner(7).Spawn(b, g)
	if !ok || c != (core.Cell{X: 0, Y: 1}) {
		t.Errorf("Spawn = %v, %v; expected (0,1), true", c, ok)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	g := core.NewGrid(20, 20)
	b := Body{{X: 10, Y: 10}}
	s1, s2 := NewSpawner(42), NewSpawner(42)
	for i := 0; i < 20; i++ {
		c1, _ := s1.Spawn(b, g)
		c2, _ := s2.Spawn(b, g)
		if c1 != c2 {
			t.Fatalf("spawn %d differs: %v vs %v", i, c1, c2)
		}
	}
}

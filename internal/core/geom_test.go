package core

import (
	"encoding/json"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		v, n     int
		expected int
	}{
		{"inside", 5, 20, 5},
		{"zero", 0, 20, 0},
		{"last cell", 19, 20, 19},
		{"one past right edge", 20, 20, 0},
		{"one before left edge", -1, 20, 19},
		{"far negative", -41, 20, 19},
		{"far positive", 45, 20, 5},
		{"axis of one", -3, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Wrap(tc.v, tc.n)
			if result != tc.expected {
				t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.n, result, tc.expected)
			}
		})
	}
}

func TestWrapAlwaysInRange(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for v := -50; v <= 50; v++ {
			w := Wrap(v, n)
			if w < 0 || w >= n {
				t.Fatalf("Wrap(%d, %d) = %d, outside [0, %d)", v, n, w, n)
			}
		}
	}
}

func TestGridStepWrapsAtEveryEdge(t *testing.T) {
	g := NewGrid(20, 15)

	tests := []struct {
		name     string
		from     Cell
		dir      Direction
		expected Cell
	}{
		{"right edge", Cell{X: 19, Y: 10}, DirRight, Cell{X: 0, Y: 10}},
		{"left edge", Cell{X: 0, Y: 3}, DirLeft, Cell{X: 19, Y: 3}},
		{"top edge", Cell{X: 4, Y: 0}, DirUp, Cell{X: 4, Y: 14}},
		{"bottom edge", Cell{X: 4, Y: 14}, DirDown, Cell{X: 4, Y: 0}},
		{"interior", Cell{X: 4, Y: 4}, DirDown, Cell{X: 4, Y: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := g.Step(tc.from, tc.dir)
			if result != tc.expected {
				t.Errorf("Step(%v, %v) = %v, expected %v", tc.from, tc.dir, result, tc.expected)
			}
			if g.Wrap(result) != result {
				t.Errorf("Step result %v is outside the grid", result)
			}
		})
	}
}

func TestGridCenterAndCells(t *testing.T) {
	g := NewGrid(20, 20)
	if g.Center() != (Cell{X: 10, Y: 10}) {
		t.Errorf("Center() = %v, expected (10,10)", g.Center())
	}
	if g.Cells() != 400 {
		t.Errorf("Cells() = %d, expected 400", g.Cells())
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, opp := range pairs {
		if d.Opposite() != opp {
			t.Errorf("%v.Opposite() = %v, expected %v", d, d.Opposite(), opp)
		}
		dx, dy := d.Delta()
		ox, oy := opp.Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("deltas of %v and %v do not cancel", d, opp)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "Down", " LEFT ", "right"} {
		d, err := ParseDirection(name)
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", name, err)
		}
		if d.String() == "unknown" {
			t.Errorf("ParseDirection(%q) returned unknown direction", name)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Dir Direction `json:"dir"`
	}{Dir: DirLeft})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"dir":"left"}` {
		t.Errorf("Marshal = %s, expected {\"dir\":\"left\"}", data)
	}
}

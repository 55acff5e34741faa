package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInner(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"box", NewRect(0, 1, 10, 6), NewRect(1, 2, 8, 4)},
		{"too small", NewRect(3, 3, 1, 2), NewRect(4, 4, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inner(); got != tc.expected {
				t.Errorf("Inner() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectProject(t *testing.T) {
	r := NewRect(1, 2, 10, 5)
	size := VInt(100, 50)

	tests := []struct {
		name         string
		p            Vec2
		x, y         int
		expectedInto bool
	}{
		{"origin", VInt(0, 0), 1, 2, true},
		{"centre", VInt(50, 25), 6, 4, true},
		{"last cell", VInt(99, 49), 10, 6, true},
		{"far edge", VInt(100, 50), 11, 7, false},
		{"negative", VInt(-20, 10), -1, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := r.Project(tc.p, size)
			if x != tc.x || y != tc.y || ok != tc.expectedInto {
				t.Errorf("Project(%v) = (%d, %d, %v), expected (%d, %d, %v)", tc.p, x, y, ok, tc.x, tc.y, tc.expectedInto)
			}
		})
	}

	if _, _, ok := r.Project(VInt(1, 1), Vec2{}); ok {
		t.Error("Project() with empty playfield = ok, expected not ok")
	}
}

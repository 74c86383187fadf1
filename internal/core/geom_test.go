package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 64, 64),
			b:        NewRect(32, 32, 64, 64),
			expected: true,
		},
		{
			name:     "adjacent tiles (no overlap)",
			a:        NewRect(0, 0, 64, 64),
			b:        NewRect(64, 0, 64, 64),
			expected: false,
		},
		{
			name:     "tile partly left of viewport",
			a:        NewRect(-32, 0, 64, 64),
			b:        NewRect(0, 0, 1024, 768),
			expected: true,
		},
		{
			name:     "empty rect never overlaps",
			a:        NewRect(10, 10, 0, 5),
			b:        NewRect(0, 0, 100, 100),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	viewport := NewRect(0, 0, 1024, 768)

	got := NewRect(-32, 736, 64, 64).Intersect(viewport)
	want := NewRect(0, 736, 32, 32)
	if got != want {
		t.Errorf("Intersect() = %+v, expected %+v", got, want)
	}

	outside := NewRect(2000, 0, 64, 64).Intersect(viewport)
	if !outside.Empty() {
		t.Errorf("Intersect() of disjoint rects should be empty, got %+v", outside)
	}
}

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

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{128, 64, 2},
		{127, 64, 1},
		{0, 64, 0},
		{-1, 64, -1},
		{-64, 64, -1},
		{-65, 64, -2},
		{-10, 64, -1},
	}

	for _, tc := range tests {
		result := FloorDiv(tc.a, tc.b)
		if result != tc.expected {
			t.Errorf("FloorDiv(%d, %d) = %d, expected %d", tc.a, tc.b, result, tc.expected)
		}
	}
}

package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxOffset(t *testing.T) {
	tests := []struct {
		name         string
		extent, view int
		expected     int
	}{
		{"world larger", 2560, 1024, 1536},
		{"exact fit", 1024, 1024, 0},
		{"world smaller than view", 640, 1024, 0},
		{"zero view", 2560, 0, 2560},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MaxOffset(tc.extent, tc.view))
		})
	}
}

func TestClamp(t *testing.T) {
	const worldW, worldH = 64000, 64000

	tests := []struct {
		name     string
		start    Camera
		expected Camera
	}{
		{"inside", Camera{1000, 1000}, Camera{1000, 1000}},
		{"negative", Camera{-50, -1}, Camera{0, 0}},
		{"past far corner", Camera{99999, 99999}, Camera{62976, 63232}},
		{"mixed", Camera{-10, 70000}, Camera{0, 63232}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.start
			c.Clamp(worldW, worldH, 1024, 768)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestClampWorldSmallerThanViewport(t *testing.T) {
	c := Camera{X: 300, Y: -20}
	c.Clamp(640, 480, 1024, 768)
	assert.Equal(t, Camera{0, 0}, c)
}

func TestPan(t *testing.T) {
	c := Camera{X: 10, Y: 10}
	c.Pan(-15, 7)
	assert.Equal(t, Camera{-5, 17}, c)
	assert.Equal(t, 1024, c.Viewport(1024, 768).W)
}

func TestMoverFullSpeed(t *testing.T) {
	m := NewMover(500)

	total := 0
	for i := 0; i < 60; i++ {
		dx, dy := m.Step(1, 0, 1.0/60)
		assert.Zero(t, dy)
		total += dx
	}
	// 500 px/s for one second, allowing for float rounding on the last frame
	assert.InDelta(t, 500, total, 1)
}

func TestMoverCarriesRemainder(t *testing.T) {
	m := NewMover(30) // half a pixel per frame at 60 Hz

	moved := 0
	for i := 0; i < 10; i++ {
		_, dy := m.Step(0, -1, 1.0/60)
		moved += dy
	}
	assert.InDelta(t, -5, moved, 1)
	assert.Less(t, moved, 0, "slow speeds must still move")
}

func TestMoverReleaseDropsRemainder(t *testing.T) {
	m := NewMover(30)
	m.Step(1, 0, 1.0/60) // 0.5 carried

	dx, _ := m.Step(0, 0, 1.0/60)
	assert.Zero(t, dx)

	dx, _ = m.Step(1, 0, 1.0/60)
	assert.Zero(t, dx, "remainder should not survive a release")
}

func TestMoverNoTime(t *testing.T) {
	m := NewMover(500)
	dx, dy := m.Step(1, 1, 0)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	m.Step(1, 1, 0.001)
	m.Reset()
	dx, _ = m.Step(1, 0, 0.001)
	assert.Zero(t, dx)
}

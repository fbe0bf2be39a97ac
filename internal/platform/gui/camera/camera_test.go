package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

func TestScreenWorldRoundTrip(t *testing.T) {
	c := Camera{Scale: 0.5, Width: 800, Height: 600}

	x, y := c.ToScreen(hexgrid.Vec2{X: 100, Y: 50})
	assert.InDelta(t, 600, x, 1e-9)
	assert.InDelta(t, 200, y, 1e-9, "world Y grows upwards")

	p := c.ToWorld(x, y)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 50, p.Y, 1e-9)

	x, y = c.ToScreen(hexgrid.Vec2{})
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestZoomLimits(t *testing.T) {
	c := New(800, 600)

	assert.True(t, c.Zoom(1))
	assert.InDelta(t, 0.95, c.Scale, 1e-9)
	assert.True(t, c.Zoom(-2))
	assert.InDelta(t, 1.05, c.Scale, 1e-9)

	c.Scale = 0.04
	assert.False(t, c.Zoom(1), "below the minimum scale")
	assert.Equal(t, 0.04, c.Scale)

	c.Scale = 4.98
	assert.False(t, c.Zoom(-1), "above the maximum scale")
	assert.Equal(t, 4.98, c.Scale)
}

func TestFitShowsWholeBoard(t *testing.T) {
	layout := hexgrid.Layout{Size: hexgrid.Size(7, 12), F2F: 90, Orientation: hexgrid.Vertical}
	c := New(800, 600)
	c.Fit(layout)

	lo, hi := layout.Bounds()
	for _, p := range []hexgrid.Vec2{lo, hi} {
		x, y := c.ToScreen(p)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 800.0)
		assert.GreaterOrEqual(t, y, 0.0)
		assert.LessOrEqual(t, y, 600.0)
	}
}

func TestResize(t *testing.T) {
	c := New(800, 600)
	assert.False(t, c.Resize(800, 600))
	assert.True(t, c.Resize(1024, 768))
	assert.Equal(t, 1024, c.Width)
}

// Package camera maps hextrap world coordinates to window pixels.
// World Y grows upwards; the world origin sits at the window center.
package camera

import (
	"github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

// Zoom limits. Scale is world units per pixel, so a larger scale shows
// more of the board.
const (
	MinScale  = 0.01
	MaxScale  = 5.0
	ZoomStep  = 0.05
	fitMargin = 1.15
)

// Camera is an orthographic view of the board.
type Camera struct {
	Scale  float64
	Width  int
	Height int
}

// New returns a camera at scale 1 for a window of w by h pixels.
func New(w, h int) Camera {
	return Camera{Scale: 1, Width: w, Height: h}
}

// ToScreen converts a world position to window pixels.
func (c Camera) ToScreen(p hexgrid.Vec2) (float64, float64) {
	return float64(c.Width)/2 + p.X/c.Scale, float64(c.Height)/2 - p.Y/c.Scale
}

// ToWorld converts window pixels to a world position.
func (c Camera) ToWorld(sx, sy float64) hexgrid.Vec2 {
	return hexgrid.Vec2{
		X: (sx - float64(c.Width)/2) * c.Scale,
		Y: (float64(c.Height)/2 - sy) * c.Scale,
	}
}

// Pixels converts a world length to pixels.
func (c Camera) Pixels(world float64) float64 {
	return world / c.Scale
}

// Zoom applies one mouse wheel movement. Scrolling up zooms in. A step
// that would leave [MinScale, MaxScale] is ignored and reports false.
func (c *Camera) Zoom(wheelY float64) bool {
	next := c.Scale - wheelY*ZoomStep
	if next < MinScale || next > MaxScale {
		return false
	}
	c.Scale = next
	return true
}

// Fit picks the scale that shows the whole board with a small margin.
func (c *Camera) Fit(l hexgrid.Layout) {
	if c.Width <= 0 || c.Height <= 0 {
		return
	}
	lo, hi := l.Bounds()
	sx := (hi.X - lo.X) / float64(c.Width)
	sy := (hi.Y - lo.Y) / float64(c.Height)
	c.Scale = core.ClampF(max(sx, sy)*fitMargin, MinScale, MaxScale)
}

// Resize updates the window size. It reports whether the size changed.
func (c *Camera) Resize(w, h int) bool {
	if c.Width == w && c.Height == h {
		return false
	}
	c.Width, c.Height = w, h
	return true
}

// Package hexgrid implements the offset hex-grid model used by the board:
// coordinates, neighbor enumeration, world-space layout and border/escape
// queries.
package hexgrid

import (
	"fmt"
	"math"
)

// Coord is an offset (column, row) hex coordinate.
// It may lie outside the grid; escape targets always do.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// oddColumn reports whether the column is shifted half a tile.
// Negative columns use Go's remainder, so -1 counts as odd.
func (c Coord) oddColumn() bool {
	return c.X%2 != 0
}

var (
	evenOffsets = [6][2]int{{0, 1}, {0, -1}, {-1, 0}, {-1, 1}, {1, 0}, {1, 1}}
	oddOffsets  = [6][2]int{{0, 1}, {0, -1}, {-1, 0}, {-1, -1}, {1, 0}, {1, -1}}
)

// Neighbors returns the six adjacent coordinates in a fixed order.
// No bounds checking is done.
func Neighbors(c Coord) [6]Coord {
	offsets := &evenOffsets
	if c.oddColumn() {
		offsets = &oddOffsets
	}
	var out [6]Coord
	for i, o := range offsets {
		out[i] = c.Add(o[0], o[1])
	}
	return out
}

// IsNeighbor reports whether b is one of the six neighbors of a.
func IsNeighbor(a, b Coord) bool {
	for _, n := range Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

// Orientation selects how hexes are laid out in world space.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// String returns the config name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseOrientation converts a config name to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	default:
		return Vertical, fmt.Errorf("hexgrid: unknown orientation %q", s)
	}
}

// Vec2 is a world-space position. The grid is centered on the origin.
type Vec2 struct {
	X float64
	Y float64
}

const rowFactor = 0.866

// TileHeight returns the row pitch for tiles of the given flat-to-flat size.
func TileHeight(f2f float64) float64 {
	return f2f * rowFactor
}

// ToWorld returns the world-space center of tile c.
// Only Vertical layout is supported; Horizontal panics.
func ToWorld(c Coord, size GridSize, f2f float64, o Orientation) Vec2 {
	if o != Vertical {
		panic(fmt.Sprintf("hexgrid: orientation %s is not supported", o))
	}

	w := f2f
	h := TileHeight(f2f)

	x := float64(c.X)*w*0.75 - (float64(size.Cols/2)*w*0.75 - w*0.375)
	if size.Cols%2 != 0 {
		x -= w * 0.375
	}

	y := float64(c.Y) * h
	if c.oddColumn() {
		y -= h / 2
	}
	y -= float64(size.Rows/2)*h - h/4
	if size.Rows%2 != 0 {
		y -= h / 2
	}

	return Vec2{X: x, Y: y}
}

// Layout bundles everything needed to place tiles of one grid in world space.
type Layout struct {
	Size        GridSize
	F2F         float64
	Orientation Orientation
}

// ToWorld returns the world-space center of tile c.
func (l Layout) ToWorld(c Coord) Vec2 {
	return ToWorld(c, l.Size, l.F2F, l.Orientation)
}

// Pick returns the in-bounds tile whose center is nearest to (wx, wy).
// Points farther than one tile radius from every center report false.
func (l Layout) Pick(wx, wy float64) (Coord, bool) {
	limit := l.F2F / math.Sqrt(3)
	best := Coord{}
	bestDist := math.Inf(1)
	found := false

	for y := 0; y < l.Size.Rows; y++ {
		for x := 0; x < l.Size.Cols; x++ {
			c := C(x, y)
			p := l.ToWorld(c)
			d := math.Hypot(p.X-wx, p.Y-wy)
			if d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}

	if !found || bestDist > limit {
		return Coord{}, false
	}
	return best, true
}

// Bounds returns the world-space extent of all tile centers, padded by half
// a tile on every side.
func (l Layout) Bounds() (minV, maxV Vec2) {
	minV = Vec2{X: math.Inf(1), Y: math.Inf(1)}
	maxV = Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for y := 0; y < l.Size.Rows; y++ {
		for x := 0; x < l.Size.Cols; x++ {
			p := l.ToWorld(C(x, y))
			minV.X = math.Min(minV.X, p.X)
			minV.Y = math.Min(minV.Y, p.Y)
			maxV.X = math.Max(maxV.X, p.X)
			maxV.Y = math.Max(maxV.Y, p.Y)
		}
	}
	pad := l.F2F / 2
	minV.X -= pad
	minV.Y -= pad
	maxV.X += pad
	maxV.Y += pad
	return minV, maxV
}

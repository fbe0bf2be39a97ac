package hexgrid

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// GridSize is the column/row extent of a board.
type GridSize struct {
	Cols int
	Rows int
}

// Size is a convenience constructor for GridSize.
func Size(cols, rows int) GridSize {
	return GridSize{Cols: cols, Rows: rows}
}

// ErrInvalidSize is returned by Validate for non-positive dimensions.
var ErrInvalidSize = errors.New("hexgrid: grid size must be positive")

// Validate checks that both dimensions are positive.
func (s GridSize) Validate() error {
	if s.Cols <= 0 || s.Rows <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, s.Cols, s.Rows)
	}
	return nil
}

// String returns "COLSxROWS".
func (s GridSize) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// Count returns the number of tiles in the grid.
func (s GridSize) Count() int {
	return s.Cols * s.Rows
}

// Index returns the row-major index of c. c must be in bounds.
func (s GridSize) Index(c Coord) int {
	return c.Y*s.Cols + c.X
}

// At is the inverse of Index.
func (s GridSize) At(i int) Coord {
	return C(i%s.Cols, i/s.Cols)
}

// Center returns the spawn tile of the piece.
func (s GridSize) Center() Coord {
	return C(s.Cols/2, s.Rows/2)
}

// InBounds reports whether c lies on the grid.
func InBounds(c Coord, s GridSize) bool {
	return c.X >= 0 && c.X < s.Cols && c.Y >= 0 && c.Y < s.Rows
}

// IsBorder reports whether c lies on an edge row or column: X is 0 or
// Cols-1, or Y is 0 or Rows-1. Bounds are not checked, so off-grid
// coordinates on those lines count too.
func IsBorder(c Coord, s GridSize) bool {
	return c.X == 0 || c.Y == 0 || c.X == s.Cols-1 || c.Y == s.Rows-1
}

var (
	escapeMu    sync.Mutex
	escapeCache = make(map[GridSize][]Coord)
)

// EscapeTargets returns every off-grid coordinate adjacent to a border tile,
// sorted by (X, Y) without duplicates. Results are cached per size and must
// not be modified by callers.
func EscapeTargets(s GridSize) []Coord {
	escapeMu.Lock()
	defer escapeMu.Unlock()

	if targets, ok := escapeCache[s]; ok {
		return targets
	}

	seen := make(map[Coord]struct{})
	targets := make([]Coord, 0, 2*(s.Cols+s.Rows)+4)
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			c := C(x, y)
			if !IsBorder(c, s) {
				continue
			}
			for _, n := range Neighbors(c) {
				if InBounds(n, s) {
					continue
				}
				if _, dup := seen[n]; dup {
					continue
				}
				seen[n] = struct{}{}
				targets = append(targets, n)
			}
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].X != targets[j].X {
			return targets[i].X < targets[j].X
		}
		return targets[i].Y < targets[j].Y
	})

	escapeCache[s] = targets
	return targets
}

// EscapeSet returns the escape targets of s as a lookup set.
func EscapeSet(s GridSize) map[Coord]struct{} {
	targets := EscapeTargets(s)
	set := make(map[Coord]struct{}, len(targets))
	for _, c := range targets {
		set[c] = struct{}{}
	}
	return set
}

package core

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

const (
	DefaultTrapRatio     = 0.25974
	DefaultTrapReliefCap = 20
)

// TrapCount returns how many traps a level starts with. Every level after
// the first removes one trap, up to reliefCap. The result is clamped so at
// least two tiles stay free.
func TrapCount(level int, size hexgrid.GridSize, ratio float64, reliefCap int) int {
	if level < 1 {
		level = 1
	}
	total := size.Count()
	base := int(math.Round(float64(total) * ratio))
	count := base - min(level-1, reliefCap)

	return max(0, min(count, total-2))
}

// PlaceTraps samples count distinct in-bounds coordinates, never the piece.
// A draw that traps all six piece neighbors is discarded and redrawn.
// It returns the traps in draw order and the number of draws used.
func PlaceTraps(rng *rand.Rand, count int, size hexgrid.GridSize, piece hexgrid.Coord) ([]hexgrid.Coord, int) {
	count = max(0, min(count, size.Count()-2))
	neighbors := hexgrid.Neighbors(piece)

	for attempt := 1; ; attempt++ {
		traps := drawTraps(rng, count, size, piece)
		if !enclosesPiece(traps, neighbors) {
			return traps, attempt
		}
	}
}

func drawTraps(rng *rand.Rand, count int, size hexgrid.GridSize, piece hexgrid.Coord) []hexgrid.Coord {
	traps := make([]hexgrid.Coord, 0, count)
	taken := make(map[hexgrid.Coord]struct{}, count)

	for len(traps) < count {
		c := hexgrid.C(rng.Intn(size.Cols), rng.Intn(size.Rows))
		if c == piece {
			continue
		}
		if _, dup := taken[c]; dup {
			continue
		}
		taken[c] = struct{}{}
		traps = append(traps, c)
	}
	return traps
}

func enclosesPiece(traps []hexgrid.Coord, neighbors [6]hexgrid.Coord) bool {
	set := make(map[hexgrid.Coord]struct{}, len(traps))
	for _, c := range traps {
		set[c] = struct{}{}
	}
	for _, n := range neighbors {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

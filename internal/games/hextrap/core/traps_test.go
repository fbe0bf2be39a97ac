package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

func TestTrapCount(t *testing.T) {
	tests := []struct {
		name  string
		level int
		size  hexgrid.GridSize
		ratio float64
		cap   int
		want  int
	}{
		{"classic level 1", 1, hexgrid.Size(7, 12), DefaultTrapRatio, DefaultTrapReliefCap, 22},
		{"classic level 2", 2, hexgrid.Size(7, 12), DefaultTrapRatio, DefaultTrapReliefCap, 21},
		{"classic level 21", 21, hexgrid.Size(7, 12), DefaultTrapRatio, DefaultTrapReliefCap, 2},
		{"relief capped", 50, hexgrid.Size(7, 12), DefaultTrapRatio, DefaultTrapReliefCap, 2},
		{"wide level 1", 1, hexgrid.Size(11, 12), DefaultTrapRatio, DefaultTrapReliefCap, 34},
		{"level below one", 0, hexgrid.Size(7, 12), DefaultTrapRatio, DefaultTrapReliefCap, 22},
		{"never negative", 30, hexgrid.Size(3, 3), DefaultTrapRatio, DefaultTrapReliefCap, 0},
		{"two tiles stay free", 1, hexgrid.Size(2, 2), 1, 0, 2},
		{"no traps", 1, hexgrid.Size(7, 12), 0, DefaultTrapReliefCap, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrapCount(tc.level, tc.size, tc.ratio, tc.cap))
		})
	}
}

func TestPlaceTrapsProperties(t *testing.T) {
	size := hexgrid.Size(7, 12)
	piece := size.Center()

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		count := 22 - int(seed%21)

		traps, attempts := PlaceTraps(rng, count, size, piece)
		require.Len(t, traps, count, "seed %d", seed)
		require.GreaterOrEqual(t, attempts, 1)

		seen := make(map[hexgrid.Coord]bool)
		for _, c := range traps {
			require.True(t, hexgrid.InBounds(c, size), "seed %d: trap %v off grid", seed, c)
			require.NotEqual(t, piece, c, "seed %d: piece trapped", seed)
			require.False(t, seen[c], "seed %d: duplicate trap %v", seed, c)
			seen[c] = true
		}

		free := 0
		for _, n := range hexgrid.Neighbors(piece) {
			if !seen[n] {
				free++
			}
		}
		require.Positive(t, free, "seed %d: piece enclosed", seed)
	}
}

func TestPlaceTrapsRedrawsEnclosure(t *testing.T) {
	// On a 3x3 board every tile except the piece and one other is trapped,
	// so only draws leaving a neighbor free are accepted.
	size := hexgrid.Size(3, 3)
	piece := hexgrid.C(1, 1)

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		traps, _ := PlaceTraps(rng, 7, size, piece)
		require.Len(t, traps, 7)

		assert.Contains(t, traps, hexgrid.C(0, 2))
		assert.Contains(t, traps, hexgrid.C(2, 2))
	}
}

func TestPlaceTrapsDeterministic(t *testing.T) {
	size := hexgrid.Size(11, 12)
	a, _ := PlaceTraps(rand.New(rand.NewSource(7)), 30, size, size.Center())
	b, _ := PlaceTraps(rand.New(rand.NewSource(7)), 30, size, size.Center())
	assert.Equal(t, a, b)
}

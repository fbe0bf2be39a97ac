package hexgrid_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

func TestGridSizeValidate(t *testing.T) {
	tests := []struct {
		name    string
		size    hexgrid.GridSize
		wantErr bool
	}{
		{"classic", hexgrid.Size(7, 12), false},
		{"single tile", hexgrid.Size(1, 1), false},
		{"zero cols", hexgrid.Size(0, 5), true},
		{"negative rows", hexgrid.Size(5, -1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.size.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, hexgrid.ErrInvalidSize)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGridSizeIndex(t *testing.T) {
	s := hexgrid.Size(7, 12)
	assert.Equal(t, 84, s.Count())
	assert.Equal(t, hexgrid.C(3, 6), s.Center())

	for i := 0; i < s.Count(); i++ {
		c := s.At(i)
		require.True(t, hexgrid.InBounds(c, s))
		assert.Equal(t, i, s.Index(c))
	}
}

func TestIsBorder(t *testing.T) {
	s := hexgrid.Size(7, 12)

	tests := []struct {
		c    hexgrid.Coord
		want bool
	}{
		{hexgrid.C(0, 0), true},
		{hexgrid.C(6, 11), true},
		{hexgrid.C(3, 0), true},
		{hexgrid.C(0, 5), true},
		{hexgrid.C(3, 6), false},
		{hexgrid.C(1, 1), false},
		{hexgrid.C(-1, 0), true},
		{hexgrid.C(3, 12), false},
		{hexgrid.C(6, -4), true},
		{hexgrid.C(-1, 3), false},
		{hexgrid.C(7, 3), false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, hexgrid.IsBorder(tc.c, s), "IsBorder(%v)", tc.c)
	}
}

func TestEscapeTargetsOutsideGrid(t *testing.T) {
	for cols := 2; cols <= 12; cols++ {
		for rows := 2; rows <= 12; rows++ {
			s := hexgrid.Size(cols, rows)
			targets := hexgrid.EscapeTargets(s)

			require.NotEmpty(t, targets, "size %v", s)
			for _, c := range targets {
				assert.False(t, hexgrid.InBounds(c, s), "target %v inside %v", c, s)
			}
		}
	}
}

func TestEscapeTargetsSortedUnique(t *testing.T) {
	s := hexgrid.Size(7, 12)
	targets := hexgrid.EscapeTargets(s)

	assert.True(t, sort.SliceIsSorted(targets, func(i, j int) bool {
		if targets[i].X != targets[j].X {
			return targets[i].X < targets[j].X
		}
		return targets[i].Y < targets[j].Y
	}))

	seen := make(map[hexgrid.Coord]bool)
	for _, c := range targets {
		assert.False(t, seen[c], "duplicate target %v", c)
		seen[c] = true
	}
}

func TestEscapeTargetsAdjacentToBorder(t *testing.T) {
	s := hexgrid.Size(7, 12)
	for _, target := range hexgrid.EscapeTargets(s) {
		adjacent := false
		for _, n := range hexgrid.Neighbors(target) {
			if hexgrid.InBounds(n, s) && hexgrid.IsBorder(n, s) {
				adjacent = true
				break
			}
		}
		assert.True(t, adjacent, "target %v touches no border tile", target)
	}
}

func TestEscapeTargetsCached(t *testing.T) {
	s := hexgrid.Size(5, 5)
	a := hexgrid.EscapeTargets(s)
	b := hexgrid.EscapeTargets(s)
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &b[0])

	set := hexgrid.EscapeSet(s)
	assert.Len(t, set, len(a))
}

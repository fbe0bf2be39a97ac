package hexgrid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

func TestNeighborsOrder(t *testing.T) {
	tests := []struct {
		name string
		c    hexgrid.Coord
		want [6]hexgrid.Coord
	}{
		{
			name: "even column",
			c:    hexgrid.C(2, 5),
			want: [6]hexgrid.Coord{{2, 6}, {2, 4}, {1, 5}, {1, 6}, {3, 5}, {3, 6}},
		},
		{
			name: "odd column",
			c:    hexgrid.C(3, 5),
			want: [6]hexgrid.Coord{{3, 6}, {3, 4}, {2, 5}, {2, 4}, {4, 5}, {4, 4}},
		},
		{
			name: "negative odd column",
			c:    hexgrid.C(-1, 0),
			want: [6]hexgrid.Coord{{-1, 1}, {-1, -1}, {-2, 0}, {-2, -1}, {0, 0}, {0, -1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hexgrid.Neighbors(tc.c))
		})
	}
}

func TestNeighborsDistinctAndSymmetric(t *testing.T) {
	for x := -3; x <= 10; x++ {
		for y := -3; y <= 14; y++ {
			c := hexgrid.C(x, y)
			ns := hexgrid.Neighbors(c)

			seen := make(map[hexgrid.Coord]bool)
			for _, n := range ns {
				require.NotEqual(t, c, n, "coord %v is its own neighbor", c)
				require.False(t, seen[n], "duplicate neighbor %v of %v", n, c)
				seen[n] = true

				assert.True(t, hexgrid.IsNeighbor(n, c), "%v lists %v but not vice versa", c, n)
			}
			assert.Len(t, seen, 6)
		}
	}
}

func TestToWorldCenteredOddGrid(t *testing.T) {
	// 7x12: column 3 is the middle column and sits on x = 0.
	size := hexgrid.Size(7, 12)
	p := hexgrid.ToWorld(hexgrid.C(3, 0), size, 90, hexgrid.Vertical)
	assert.InDelta(t, 0, p.X, 1e-9)

	left := hexgrid.ToWorld(hexgrid.C(0, 0), size, 90, hexgrid.Vertical)
	right := hexgrid.ToWorld(hexgrid.C(6, 0), size, 90, hexgrid.Vertical)
	assert.InDelta(t, -left.X, right.X, 1e-9, "grid should be horizontally symmetric")
}

func TestToWorldColumnPitch(t *testing.T) {
	size := hexgrid.Size(7, 12)
	f2f := 90.0
	h := hexgrid.TileHeight(f2f)

	a := hexgrid.ToWorld(hexgrid.C(2, 4), size, f2f, hexgrid.Vertical)
	b := hexgrid.ToWorld(hexgrid.C(3, 4), size, f2f, hexgrid.Vertical)
	c := hexgrid.ToWorld(hexgrid.C(2, 5), size, f2f, hexgrid.Vertical)

	assert.InDelta(t, f2f*0.75, b.X-a.X, 1e-9)
	assert.InDelta(t, -h/2, b.Y-a.Y, 1e-9, "odd columns are shifted half a row")
	assert.InDelta(t, h, c.Y-a.Y, 1e-9)
}

func TestToWorldNeighborsEquidistant(t *testing.T) {
	size := hexgrid.Size(11, 12)
	f2f := 90.0
	center := hexgrid.C(4, 6)
	cp := hexgrid.ToWorld(center, size, f2f, hexgrid.Vertical)

	for _, n := range hexgrid.Neighbors(center) {
		np := hexgrid.ToWorld(n, size, f2f, hexgrid.Vertical)
		d := math.Hypot(np.X-cp.X, np.Y-cp.Y)
		assert.InDelta(t, hexgrid.TileHeight(f2f), d, 1.0, "neighbor %v", n)
	}
}

func TestToWorldHorizontalPanics(t *testing.T) {
	assert.Panics(t, func() {
		hexgrid.ToWorld(hexgrid.C(0, 0), hexgrid.Size(7, 12), 90, hexgrid.Horizontal)
	})
}

func TestParseOrientation(t *testing.T) {
	o, err := hexgrid.ParseOrientation("vertical")
	require.NoError(t, err)
	assert.Equal(t, hexgrid.Vertical, o)

	o, err = hexgrid.ParseOrientation("horizontal")
	require.NoError(t, err)
	assert.Equal(t, hexgrid.Horizontal, o)

	_, err = hexgrid.ParseOrientation("diagonal")
	assert.Error(t, err)
}

func TestLayoutPick(t *testing.T) {
	l := hexgrid.Layout{Size: hexgrid.Size(7, 12), F2F: 90, Orientation: hexgrid.Vertical}

	for y := 0; y < 12; y++ {
		for x := 0; x < 7; x++ {
			c := hexgrid.C(x, y)
			p := l.ToWorld(c)

			got, ok := l.Pick(p.X+5, p.Y-5)
			require.True(t, ok, "pick near %v", c)
			assert.Equal(t, c, got)
		}
	}

	_, ok := l.Pick(10_000, 10_000)
	assert.False(t, ok, "far away point should not pick a tile")
}

func TestLayoutBounds(t *testing.T) {
	l := hexgrid.Layout{Size: hexgrid.Size(7, 12), F2F: 90, Orientation: hexgrid.Vertical}
	minV, maxV := l.Bounds()

	for y := 0; y < 12; y++ {
		for x := 0; x < 7; x++ {
			p := l.ToWorld(hexgrid.C(x, y))
			assert.True(t, p.X > minV.X && p.X < maxV.X)
			assert.True(t, p.Y > minV.Y && p.Y < maxV.Y)
		}
	}
}

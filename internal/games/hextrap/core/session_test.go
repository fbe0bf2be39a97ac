package core

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

const frame = time.Second / 60

type memSink struct {
	rec   stats.TotalGameStats
	saves int
	err   error
}

func (m *memSink) Current() stats.TotalGameStats { return m.rec }

func (m *memSink) Update(fn func(*stats.TotalGameStats)) error {
	if m.err != nil {
		return m.err
	}
	fn(&m.rec)
	m.saves++
	return nil
}

type memRecorder struct {
	levels []storage.LevelResult
	runs   []storage.Run
}

func (m *memRecorder) SaveLevelResult(r storage.LevelResult) error {
	m.levels = append(m.levels, r)
	return nil
}

func (m *memRecorder) SaveRun(r storage.Run) (int64, error) {
	m.runs = append(m.runs, r)
	return int64(len(m.runs)), nil
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(DefaultParams(), append([]Option{WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	return s
}

// clearBoard removes every trap of the running level.
func clearBoard(s *Session) {
	for i := range s.tiles {
		s.tiles[i].Trapped = false
		s.tiles[i].Color = ColorOpen
	}
}

func placePiece(s *Session, c hexgrid.Coord) {
	s.piece.Coord = c
	s.piece.World = s.layout.ToWorld(c)
}

func trapCount(s *Session) int {
	n := 0
	for _, t := range s.Tiles() {
		if t.Trapped {
			n++
		}
	}
	return n
}

func TestNewSessionRejectsBadParams(t *testing.T) {
	p := DefaultParams()
	p.Size = hexgrid.Size(1, 12)
	_, err := NewSession(p)
	assert.Error(t, err)

	p = DefaultParams()
	p.F2F = 0
	_, err = NewSession(p)
	assert.Error(t, err)
}

func TestStartGame(t *testing.T) {
	sink := &memSink{rec: stats.TotalGameStats{GamesPlayed: 4, RecordLevel: 3}}
	s := newTestSession(t, WithStats(sink))

	assert.Equal(t, OutOfLevel, s.LevelState())
	assert.Empty(t, s.Tiles())
	_, ok := s.Piece()
	assert.False(t, ok)

	s.StartGame()

	assert.Equal(t, InLevel, s.LevelState())
	assert.Equal(t, PlayerTurn, s.Turn())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, uint64(5), s.Stats().GamesPlayed)
	assert.Len(t, s.Tiles(), 84)
	assert.Equal(t, 22, trapCount(s))

	piece, ok := s.Piece()
	require.True(t, ok)
	assert.Equal(t, hexgrid.C(3, 6), piece.Coord)
	tile, _ := s.Tile(piece.Coord)
	assert.False(t, tile.Trapped)

	for _, tile := range s.Tiles() {
		if tile.Trapped {
			assert.Equal(t, ColorBlocked, tile.Color)
		} else {
			assert.Equal(t, ColorOpen, tile.Color)
		}
		assert.Equal(t, s.Layout().ToWorld(tile.Coord), tile.World)
	}
}

func TestTapTrapsTile(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()
	clearBoard(s)

	target := hexgrid.C(0, 0)
	require.True(t, s.Tap(target))

	tile, ok := s.Tile(target)
	require.True(t, ok)
	assert.True(t, tile.Trapped)
	assert.Equal(t, ColorBlocked, tile.Color)
	assert.Equal(t, RustaceanTurn, s.Turn())
	assert.Equal(t, 1, s.LevelTaps())
	assert.Equal(t, uint64(1), s.Stats().TilesTapped)
}

func TestTapIgnored(t *testing.T) {
	s := newTestSession(t)

	assert.False(t, s.Tap(hexgrid.C(0, 0)), "no game running")

	s.StartGame()
	clearBoard(s)
	s.trap(hexgrid.C(1, 1))

	tests := []struct {
		name string
		c    hexgrid.Coord
	}{
		{"off grid", hexgrid.C(-1, 3)},
		{"past the edge", hexgrid.C(7, 0)},
		{"already trapped", hexgrid.C(1, 1)},
		{"piece tile", hexgrid.C(3, 6)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := s.Snapshot()
			assert.False(t, s.Tap(tc.c))
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestTapDuringRustaceanTurn(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()
	clearBoard(s)

	require.True(t, s.Tap(hexgrid.C(0, 0)))
	before := s.Snapshot()

	assert.False(t, s.Tap(hexgrid.C(6, 11)))
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, RustaceanTurn, s.Turn())
}

func TestRustaceanMovesNextFrame(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()
	clearBoard(s)

	require.True(t, s.Tap(hexgrid.C(0, 0)))
	require.NoError(t, s.Update(frame))

	piece, _ := s.Piece()
	assert.True(t, hexgrid.IsNeighbor(hexgrid.C(3, 6), piece.Coord), "piece should move one tile")
	assert.Equal(t, s.Layout().ToWorld(piece.Coord), piece.World)
	assert.Equal(t, PlayerTurn, s.Turn())
	assert.Equal(t, InLevel, s.LevelState())
}

func TestEnclosureWinsLevel(t *testing.T) {
	sink := &memSink{rec: stats.Default()}
	rec := &memRecorder{}
	s := newTestSession(t, WithStats(sink), WithRecorder(rec), WithPlayer("alice"))
	s.StartGame()
	clearBoard(s)

	ring := hexgrid.Neighbors(hexgrid.C(3, 6))
	for _, c := range ring[:5] {
		s.trap(c)
	}
	trappedBefore := s.Stats().TigersTrapped

	require.True(t, s.Tap(ring[5]))
	require.NoError(t, s.Update(frame))

	assert.Equal(t, LevelWin, s.LevelState())
	assert.Equal(t, trappedBefore+1, s.Stats().TigersTrapped)
	piece, _ := s.Piece()
	assert.Equal(t, hexgrid.C(3, 6), piece.Coord)
	for _, tile := range s.Tiles() {
		assert.Equal(t, ColorWin, tile.Color)
	}

	// Entering the win screen saves the record.
	assert.Equal(t, 1, sink.saves)
	assert.Equal(t, uint64(1), sink.rec.TigersTrapped)

	require.Len(t, rec.levels, 1)
	assert.Equal(t, storage.LevelResult{
		Variant:  "classic",
		Player:   "alice",
		Level:    1,
		Outcome:  "trapped",
		Taps:     1,
		Moves:    0,
		Duration: frame,
	}, rec.levels[0])
	assert.Empty(t, rec.runs)
}

func TestPocketMoveKeepsLevel(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()

	pocket := hexgrid.C(3, 7)
	for _, tile := range s.Tiles() {
		if tile.Coord != hexgrid.C(3, 6) && tile.Coord != pocket && tile.Coord != hexgrid.C(0, 0) {
			s.trap(tile.Coord)
		}
	}

	require.True(t, s.Tap(hexgrid.C(0, 0)))
	require.NoError(t, s.Update(frame))

	piece, _ := s.Piece()
	assert.Equal(t, pocket, piece.Coord)
	assert.Equal(t, InLevel, s.LevelState())
	assert.Equal(t, PlayerTurn, s.Turn())
}

func TestEscapeLosesLevel(t *testing.T) {
	sink := &memSink{rec: stats.Default()}
	rec := &memRecorder{}
	s := newTestSession(t, WithStats(sink), WithRecorder(rec))
	s.StartGame()
	clearBoard(s)
	placePiece(s, hexgrid.C(0, 6))

	require.True(t, s.Tap(hexgrid.C(6, 0)))
	require.NoError(t, s.Update(frame))

	assert.Equal(t, LevelLose, s.LevelState())
	assert.Equal(t, uint64(1), s.Stats().TigersEscaped)

	piece, _ := s.Piece()
	assert.Equal(t, hexgrid.C(-1, 6), piece.Coord)
	want := s.Layout().ToWorld(hexgrid.C(-1, 6))
	want.Y += hexgrid.TileHeight(s.Params().F2F) / 2
	assert.Equal(t, want, piece.World)

	for _, tile := range s.Tiles() {
		assert.Equal(t, ColorLoss, tile.Color)
	}
	assert.Equal(t, 1, sink.saves)

	require.Len(t, rec.levels, 1)
	assert.Equal(t, "escaped", rec.levels[0].Outcome)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, 1, rec.runs[0].LevelReached)
	assert.Equal(t, 1, rec.runs[0].Taps)
}

func TestWinDwellAdvancesLevel(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()
	clearBoard(s)
	ring := hexgrid.Neighbors(hexgrid.C(3, 6))
	for _, c := range ring[:5] {
		s.trap(c)
	}
	require.True(t, s.Tap(ring[5]))
	require.NoError(t, s.Update(frame))
	require.Equal(t, LevelWin, s.LevelState())

	// Taps are ignored on the win screen.
	assert.False(t, s.Tap(hexgrid.C(0, 0)))

	require.NoError(t, s.Update(2900*time.Millisecond))
	assert.Equal(t, LevelWin, s.LevelState())

	require.NoError(t, s.Update(200*time.Millisecond))
	assert.Equal(t, InLevel, s.LevelState())
	assert.Equal(t, PlayerTurn, s.Turn())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 0, s.LevelTaps())
	assert.Equal(t, uint64(2), s.Stats().RecordLevel)
	assert.Equal(t, 21, trapCount(s))

	piece, _ := s.Piece()
	assert.Equal(t, hexgrid.C(3, 6), piece.Coord)
	for _, tile := range s.Tiles() {
		if !tile.Trapped {
			assert.Equal(t, ColorOpen, tile.Color)
		}
	}
}

func TestLoseDwellReturnsToMenu(t *testing.T) {
	s := newTestSession(t)
	s.StartGame()
	clearBoard(s)
	placePiece(s, hexgrid.C(0, 6))
	require.True(t, s.Tap(hexgrid.C(6, 0)))
	require.NoError(t, s.Update(frame))
	require.Equal(t, LevelLose, s.LevelState())

	require.NoError(t, s.Update(time.Second))
	assert.Equal(t, LevelLose, s.LevelState())

	require.NoError(t, s.Update(time.Second))
	assert.Equal(t, OutOfLevel, s.LevelState())
	assert.Empty(t, s.Tiles())
	_, ok := s.Piece()
	assert.False(t, ok)

	// A new game starts over at level 1.
	s.StartGame()
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, uint64(2), s.Stats().GamesPlayed)
}

func TestRecordLevelNeverDrops(t *testing.T) {
	sink := &memSink{rec: stats.TotalGameStats{RecordLevel: 9}}
	s := newTestSession(t, WithStats(sink))
	s.StartGame()
	clearBoard(s)
	ring := hexgrid.Neighbors(hexgrid.C(3, 6))
	for _, c := range ring[:5] {
		s.trap(c)
	}
	require.True(t, s.Tap(ring[5]))
	require.NoError(t, s.Update(frame))
	require.NoError(t, s.Update(3*time.Second))

	assert.Equal(t, 2, s.Level())
	assert.Equal(t, uint64(9), s.Stats().RecordLevel)
}

func TestFlushFailureIsReported(t *testing.T) {
	boom := errors.New("disk full")
	sink := &memSink{rec: stats.Default()}
	s := newTestSession(t, WithStats(sink))
	s.StartGame()
	clearBoard(s)
	placePiece(s, hexgrid.C(0, 6))
	require.True(t, s.Tap(hexgrid.C(6, 0)))

	sink.err = boom
	err := s.Update(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestQuitSavesStats(t *testing.T) {
	sink := &memSink{rec: stats.Default()}
	rec := &memRecorder{}
	s := newTestSession(t, WithStats(sink), WithRecorder(rec))
	s.StartGame()
	clearBoard(s)
	require.True(t, s.Tap(hexgrid.C(0, 0)))

	require.NoError(t, s.Quit())
	assert.Equal(t, OutOfLevel, s.LevelState())
	assert.Equal(t, uint64(1), sink.rec.GamesPlayed)
	assert.Equal(t, uint64(1), sink.rec.TilesTapped)
	require.Len(t, rec.runs, 1)

	// Quitting from the menu only saves.
	require.NoError(t, s.Quit())
	assert.Len(t, rec.runs, 1)
	assert.Equal(t, 2, sink.saves)
}

func TestSessionsSharingOneStoreAddUp(t *testing.T) {
	store, err := stats.Open(filepath.Join(t.TempDir(), "stats.json"))
	require.NoError(t, err)

	a := newTestSession(t, WithStats(store))
	b := newTestSession(t, WithStats(store), WithSeed(2))
	a.StartGame()
	b.StartGame()

	clearBoard(a)
	clearBoard(b)
	require.True(t, a.Tap(hexgrid.C(0, 0)))
	require.True(t, b.Tap(hexgrid.C(0, 0)))
	require.NoError(t, b.Update(frame))
	require.True(t, b.Tap(hexgrid.C(1, 0)))

	require.NoError(t, a.Quit())
	require.NoError(t, b.Quit())

	got := store.Current()
	assert.Equal(t, uint64(2), got.GamesPlayed)
	assert.Equal(t, uint64(3), got.TilesTapped)
	assert.Equal(t, got, b.Stats(), "the last flush shows both sessions")

	reopened, err := stats.Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, got, reopened.Current())
}

func TestFailedFlushIsRetried(t *testing.T) {
	sink := &memSink{rec: stats.Default(), err: errors.New("disk full")}
	s := newTestSession(t, WithStats(sink))
	s.StartGame()
	clearBoard(s)
	require.True(t, s.Tap(hexgrid.C(0, 0)))
	require.Error(t, s.Quit())
	assert.Equal(t, stats.Default(), sink.rec)

	sink.err = nil
	require.NoError(t, s.Quit())
	assert.Equal(t, uint64(1), sink.rec.GamesPlayed)
	assert.Equal(t, uint64(1), sink.rec.TilesTapped)

	require.NoError(t, s.Quit())
	assert.Equal(t, uint64(1), sink.rec.GamesPlayed, "changes are added once")
}

// playScript taps the first open tile it finds, frame after frame.
func playScript(s *Session, frames int) []Snapshot {
	var out []Snapshot
	for i := 0; i < frames; i++ {
		if s.LevelState() == InLevel && s.Turn() == PlayerTurn {
			for _, tile := range s.Tiles() {
				if s.Tap(tile.Coord) {
					break
				}
			}
		}
		_ = s.Update(frame)
		out = append(out, s.Snapshot())
	}
	return out
}

func TestDeterminism(t *testing.T) {
	a, err := NewSession(DefaultParams(), WithSeed(42))
	require.NoError(t, err)
	b, err := NewSession(DefaultParams(), WithSeed(42))
	require.NoError(t, err)

	a.StartGame()
	b.StartGame()
	require.Equal(t, a.Snapshot(), b.Snapshot())

	assert.Equal(t, playScript(a, 400), playScript(b, 400))
}

func TestWideVariant(t *testing.T) {
	p := DefaultParams()
	p.Variant = "wide"
	p.Size = hexgrid.Size(11, 12)

	s, err := NewSession(p, WithSeed(3))
	require.NoError(t, err)
	s.StartGame()

	piece, _ := s.Piece()
	assert.Equal(t, hexgrid.C(5, 6), piece.Coord)
	assert.Equal(t, 34, trapCount(s))
}

package core

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

// StatsSink persists the lifetime statistics. Update must apply fn to the
// latest record atomically, since several sessions may share one sink.
type StatsSink interface {
	Current() stats.TotalGameStats
	Update(fn func(*stats.TotalGameStats)) error
}

// LevelRecorder stores finished levels and runs. Failures are logged and
// otherwise ignored.
type LevelRecorder interface {
	SaveLevelResult(storage.LevelResult) error
	SaveRun(storage.Run) (int64, error)
}

// Option customizes a Session.
type Option func(*Session)

// WithSeed seeds trap placement.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithStats loads the initial record from sink and adds the session's
// counters to it at level boundaries and on Quit.
func WithStats(sink StatsSink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithRecorder reports finished levels and runs to r.
func WithRecorder(r LevelRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithPlayer names the player in recorded history.
func WithPlayer(name string) Option {
	return func(s *Session) { s.player = name }
}

// Session owns the board, the piece and the counters of one player.
// It is not safe for concurrent use; the frontend drives it from its update
// loop.
type Session struct {
	params Params
	layout hexgrid.Layout

	rng      *rand.Rand
	logger   *log.Logger
	sink     StatsSink
	recorder LevelRecorder
	player   string

	tiles []Tile // row-major, nil outside a game
	piece *Piece

	level        int
	levelTaps    int
	levelMoves   int
	levelElapsed time.Duration
	runTaps      int

	turn       TurnState
	levelState LevelState
	dwell      time.Duration

	stats   stats.TotalGameStats // record as shown to the player
	pending stats.TotalGameStats // changes not yet added to the sink
}

// NewSession validates p and returns a session in OutOfLevel.
func NewSession(p Params, opts ...Option) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		params: p,
		layout: p.Layout(),
		player: "local",
		stats:  stats.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.sink != nil {
		s.stats = s.sink.Current()
	}
	return s, nil
}

// Params returns the session configuration.
func (s *Session) Params() Params { return s.params }

// Size returns the board size.
func (s *Session) Size() hexgrid.GridSize { return s.params.Size }

// Layout returns the world layout of the board.
func (s *Session) Layout() hexgrid.Layout { return s.layout }

// Level returns the current level number, 0 before the first game.
func (s *Session) Level() int { return s.level }

// LevelTaps returns the taps made in the current level.
func (s *Session) LevelTaps() int { return s.levelTaps }

// Turn returns whose move it is.
func (s *Session) Turn() TurnState { return s.turn }

// LevelState returns the level lifecycle state.
func (s *Session) LevelState() LevelState { return s.levelState }

// Stats returns the lifetime statistics including the running game.
func (s *Session) Stats() stats.TotalGameStats { return s.stats }

// Tiles returns a copy of the board in row-major order.
func (s *Session) Tiles() []Tile {
	out := make([]Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

// Tile returns the tile at c.
func (s *Session) Tile(c hexgrid.Coord) (Tile, bool) {
	if s.tiles == nil || !hexgrid.InBounds(c, s.params.Size) {
		return Tile{}, false
	}
	return s.tiles[s.params.Size.Index(c)], true
}

// Piece returns the rustacean while a level is on the board.
func (s *Session) Piece() (Piece, bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	return *s.piece, true
}

func (s *Session) mustPiece() *Piece {
	if s.piece == nil {
		panic("hextrap: no piece on the board")
	}
	return s.piece
}

// StartGame begins a new game at level 1.
func (s *Session) StartGame() {
	s.level = 1
	s.runTaps = 0
	s.count(stats.TotalGameStats{GamesPlayed: 1})
	s.buildTiles()
	s.startLevel()
	s.logger.Info("game started", "variant", s.params.Variant, "player", s.player)
}

func (s *Session) buildTiles() {
	size := s.params.Size
	s.tiles = make([]Tile, size.Count())
	for i := range s.tiles {
		c := size.At(i)
		s.tiles[i] = Tile{Coord: c, World: s.layout.ToWorld(c)}
	}
}

func (s *Session) startLevel() {
	for i := range s.tiles {
		s.tiles[i].Trapped = false
		s.tiles[i].Color = ColorOpen
	}

	center := s.params.Size.Center()
	s.piece = &Piece{Coord: center, World: s.layout.ToWorld(center)}

	count := TrapCount(s.level, s.params.Size, s.params.TrapRatio, s.params.TrapReliefCap)
	traps, attempts := PlaceTraps(s.rng, count, s.params.Size, center)
	for _, c := range traps {
		s.trap(c)
	}
	if attempts > 1 {
		s.logger.Debug("trap placement redrawn", "attempts", attempts)
	}

	s.levelTaps = 0
	s.levelMoves = 0
	s.levelElapsed = 0
	s.dwell = 0
	s.turn = PlayerTurn
	s.levelState = InLevel
	s.logger.Debug("level started", "level", s.level, "traps", len(traps))
}

func (s *Session) trap(c hexgrid.Coord) {
	t := &s.tiles[s.params.Size.Index(c)]
	t.Trapped = true
	t.Color = ColorBlocked
}

func (s *Session) walkable(c hexgrid.Coord) bool {
	if !hexgrid.InBounds(c, s.params.Size) {
		return false
	}
	return !s.tiles[s.params.Size.Index(c)].Trapped
}

// Tap traps the tile at c. Taps outside the player's turn, on unknown or
// trapped tiles, or on the piece are ignored. It reports whether the tap
// was accepted.
func (s *Session) Tap(c hexgrid.Coord) bool {
	if s.levelState != InLevel || s.turn != PlayerTurn {
		return false
	}
	tile, ok := s.Tile(c)
	if !ok || tile.Trapped {
		return false
	}
	if c == s.mustPiece().Coord {
		return false
	}

	s.trap(c)
	s.levelTaps++
	s.runTaps++
	s.count(stats.TotalGameStats{TilesTapped: 1})
	s.turn = RustaceanTurn
	return true
}

// Update advances the session by one frame of length dt. The rustacean
// answers a tap on the frame after it; level end screens dwell before the
// next level or the menu. An error means the statistics could not be saved.
func (s *Session) Update(dt time.Duration) error {
	switch s.levelState {
	case InLevel:
		s.levelElapsed += dt
		if s.turn == RustaceanTurn {
			return s.moveRustacean()
		}
	case LevelWin:
		s.dwell += dt
		if s.dwell >= s.params.WinDwell {
			s.nextLevel()
		}
	case LevelLose:
		s.dwell += dt
		if s.dwell >= s.params.LoseDwell {
			s.endGame()
		}
	}
	return nil
}

func (s *Session) moveRustacean() error {
	piece := s.mustPiece()
	path := FindPath(piece.Coord, s.params.Size, s.walkable)
	s.logger.Debug("rustacean path", "from", piece.Coord, "result", path)

	switch path.Kind {
	case PathFound:
		for _, n := range hexgrid.Neighbors(piece.Coord) {
			if path.Contains(n) {
				s.step(n)
				break
			}
		}
		s.turn = PlayerTurn
		return nil

	case PathNotFound:
		for _, n := range hexgrid.Neighbors(piece.Coord) {
			if s.walkable(n) {
				s.step(n)
				s.turn = PlayerTurn
				return nil
			}
		}
		s.paint(ColorWin)
		s.count(stats.TotalGameStats{TigersTrapped: 1})
		return s.finishLevel(LevelWin, OutcomeTrapped)

	default:
		world := s.layout.ToWorld(path.Target)
		world.Y += hexgrid.TileHeight(s.params.F2F) / 2
		piece.Coord = path.Target
		piece.World = world
		s.levelMoves++
		s.paint(ColorLoss)
		s.count(stats.TotalGameStats{TigersEscaped: 1})
		return s.finishLevel(LevelLose, OutcomeEscaped)
	}
}

func (s *Session) step(c hexgrid.Coord) {
	piece := s.mustPiece()
	piece.Coord = c
	piece.World = s.layout.ToWorld(c)
	s.levelMoves++
}

func (s *Session) paint(color TileColor) {
	for i := range s.tiles {
		s.tiles[i].Color = color
	}
}

func (s *Session) finishLevel(state LevelState, outcome Outcome) error {
	s.levelState = state
	s.dwell = 0
	s.logger.Info("level finished", "level", s.level, "outcome", outcome, "taps", s.levelTaps)

	if s.recorder != nil {
		err := s.recorder.SaveLevelResult(storage.LevelResult{
			Variant:  s.params.Variant,
			Player:   s.player,
			Level:    s.level,
			Outcome:  string(outcome),
			Taps:     s.levelTaps,
			Moves:    s.levelMoves,
			Duration: s.levelElapsed,
		})
		if err != nil {
			s.logger.Warn("cannot record level", "err", err)
		}
		if outcome == OutcomeEscaped {
			s.recordRun()
		}
	}

	return s.flush()
}

func (s *Session) recordRun() {
	if s.recorder == nil {
		return
	}
	_, err := s.recorder.SaveRun(storage.Run{
		Variant:      s.params.Variant,
		Player:       s.player,
		LevelReached: s.level,
		Taps:         s.runTaps,
	})
	if err != nil {
		s.logger.Warn("cannot record run", "err", err)
	}
}

func (s *Session) nextLevel() {
	s.level++
	s.count(stats.TotalGameStats{RecordLevel: uint64(s.level)})
	s.startLevel()
}

func (s *Session) endGame() {
	s.tiles = nil
	s.piece = nil
	s.levelState = OutOfLevel
	s.turn = PlayerTurn
	s.dwell = 0
	s.logger.Info("game over", "level", s.level)
}

// Quit abandons a running game and saves the statistics.
func (s *Session) Quit() error {
	if s.levelState == InLevel || s.levelState == LevelWin {
		s.recordRun()
	}
	if s.tiles != nil {
		s.endGame()
	}
	return s.flush()
}

// count records d in the shown record and in the pending changes.
func (s *Session) count(d stats.TotalGameStats) {
	s.stats.Add(d)
	s.pending.Add(d)
}

// flush adds the pending changes to the sink and picks up what other
// sessions on the same sink saved meanwhile. Failed changes stay pending.
func (s *Session) flush() error {
	if s.sink == nil {
		return nil
	}
	d := s.pending
	if err := s.sink.Update(func(rec *stats.TotalGameStats) { rec.Add(d) }); err != nil {
		return fmt.Errorf("hextrap: save stats: %w", err)
	}
	s.pending = stats.TotalGameStats{}
	s.stats = s.sink.Current()
	return nil
}

// Snapshot captures the session for determinism checks.
type Snapshot struct {
	Level      int
	LevelTaps  int
	Turn       TurnState
	LevelState LevelState
	Piece      hexgrid.Coord
	Traps      []hexgrid.Coord
	Stats      stats.TotalGameStats
}

// Snapshot returns the current state with traps in row-major order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level:      s.level,
		LevelTaps:  s.levelTaps,
		Turn:       s.turn,
		LevelState: s.levelState,
		Stats:      s.stats,
	}
	if s.piece != nil {
		snap.Piece = s.piece.Coord
	}
	for _, t := range s.tiles {
		if t.Trapped {
			snap.Traps = append(snap.Traps, t.Coord)
		}
	}
	return snap
}

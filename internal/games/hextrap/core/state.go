// Package core holds the rules of hextrap: trap placement, the escape-aware
// pathfinder and the turn/level state machine. It has no rendering or
// terminal dependencies.
package core

import (
	"fmt"
	"time"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

// TurnState tells whose move it is inside a level.
type TurnState int

const (
	PlayerTurn TurnState = iota
	RustaceanTurn
)

func (t TurnState) String() string {
	switch t {
	case PlayerTurn:
		return "player"
	case RustaceanTurn:
		return "rustacean"
	default:
		return "unknown"
	}
}

// LevelState is the lifecycle of the current level.
type LevelState int

const (
	OutOfLevel LevelState = iota
	InLevel
	LevelWin
	LevelLose
)

func (l LevelState) String() string {
	switch l {
	case OutOfLevel:
		return "out_of_level"
	case InLevel:
		return "in_level"
	case LevelWin:
		return "level_win"
	case LevelLose:
		return "level_lose"
	default:
		return "unknown"
	}
}

// TileColor is the logical tint of a tile. Frontends map it to real colors.
type TileColor int

const (
	ColorOpen    TileColor = iota // untouched tile
	ColorBlocked                  // trapped tile
	ColorWin                      // every tile after the piece was enclosed
	ColorLoss                     // every tile after the piece escaped
)

// Tile is one cell of the board.
type Tile struct {
	Coord   hexgrid.Coord
	Trapped bool
	Color   TileColor
	World   hexgrid.Vec2
}

// Piece is the rustacean.
type Piece struct {
	Coord hexgrid.Coord
	World hexgrid.Vec2
}

// Outcome names how a level ended.
type Outcome string

const (
	OutcomeTrapped Outcome = "trapped"
	OutcomeEscaped Outcome = "escaped"
)

// Params configures a session.
type Params struct {
	Variant       string
	Size          hexgrid.GridSize
	F2F           float64
	Orientation   hexgrid.Orientation
	TrapRatio     float64
	TrapReliefCap int
	WinDwell      time.Duration
	LoseDwell     time.Duration
}

// DefaultParams returns the classic 7x12 board.
func DefaultParams() Params {
	return Params{
		Variant:       "classic",
		Size:          hexgrid.Size(7, 12),
		F2F:           90,
		Orientation:   hexgrid.Vertical,
		TrapRatio:     DefaultTrapRatio,
		TrapReliefCap: DefaultTrapReliefCap,
		WinDwell:      3 * time.Second,
		LoseDwell:     2 * time.Second,
	}
}

// Validate checks the parameters before a session is built.
func (p Params) Validate() error {
	if err := p.Size.Validate(); err != nil {
		return err
	}
	if p.Size.Cols < 2 || p.Size.Rows < 2 {
		return fmt.Errorf("hextrap: grid %s is too small, need at least 2x2", p.Size)
	}
	if p.F2F <= 0 {
		return fmt.Errorf("hextrap: tile size must be positive, got %v", p.F2F)
	}
	if p.TrapRatio < 0 || p.TrapRatio > 1 {
		return fmt.Errorf("hextrap: trap ratio must be in [0,1], got %v", p.TrapRatio)
	}
	if p.TrapReliefCap < 0 {
		return fmt.Errorf("hextrap: trap relief cap must not be negative, got %d", p.TrapReliefCap)
	}
	if p.WinDwell < 0 || p.LoseDwell < 0 {
		return fmt.Errorf("hextrap: dwell times must not be negative")
	}
	return nil
}

// Layout returns the world layout for the configured board.
func (p Params) Layout() hexgrid.Layout {
	return hexgrid.Layout{Size: p.Size, F2F: p.F2F, Orientation: p.Orientation}
}

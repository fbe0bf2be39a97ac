package hextrap

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/games/hextrap/core"
	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

const (
	hudLines    = 2 // title + counters
	footerLines = 2 // blank + status
	tileWidth   = 3 // "( )"
)

// view maps world positions to screen cells. The board is drawn rotated:
// grid columns become screen rows and half-row offsets become two
// character shifts, which gives the usual staggered hex look in text.
type view struct {
	originX, originY int
	rowStep          int
	minX, minY       float64
	xUnit, yUnit     float64
	boardW, boardH   int
}

func (g *Game) view() view {
	layout := g.session.Layout()
	size := layout.Size

	v := view{
		xUnit:   layout.F2F * 0.75,
		yUnit:   hexgrid.TileHeight(layout.F2F) / 2,
		minX:    math.Inf(1),
		minY:    math.Inf(1),
		rowStep: 2,
	}
	for y := 0; y < size.Rows; y++ {
		for x := 0; x < size.Cols; x++ {
			p := layout.ToWorld(hexgrid.C(x, y))
			v.minX = math.Min(v.minX, p.X)
			v.minY = math.Min(v.minY, p.Y)
		}
	}

	// Escaped pieces are drawn one tile outside the board.
	v.boardW = 4*size.Rows + 1 + 2*4
	if (size.Cols+1)*2+1+hudLines+footerLines > g.screenH {
		v.rowStep = 1
	}
	v.boardH = (size.Cols+1)*v.rowStep + 1

	v.originX = (g.screenW-v.boardW)/2 + 4
	v.originY = hudLines + v.rowStep
	return v
}

// cell returns the left edge of the tile glyph centered on p.
func (v view) cell(p hexgrid.Vec2) (int, int) {
	col := int(math.Round((p.Y - v.minY) / v.yUnit))
	row := int(math.Round((p.X - v.minX) / v.xUnit))
	return v.originX + col*2, v.originY + row*v.rowStep
}

// rect is the hit box of the tile glyph centered on p.
func (v view) rect(p hexgrid.Vec2) platformcore.Rect {
	x, y := v.cell(p)
	return platformcore.NewRect(x, y, tileWidth, 1)
}

// tileAt returns the tile whose glyph covers screen cell (x, y).
func (g *Game) tileAt(x, y int) (hexgrid.Coord, bool) {
	v := g.view()
	for _, t := range g.session.Tiles() {
		if v.rect(t.World).Contains(x, y) {
			return t.Coord, true
		}
	}
	return hexgrid.Coord{}, false
}

var tileColors = map[core.TileColor]platformcore.Color{
	core.ColorOpen:    platformcore.ColorWhite,
	core.ColorBlocked: platformcore.ColorDarkGray,
	core.ColorWin:     platformcore.ColorBrightGreen,
	core.ColorLoss:    platformcore.ColorBrightRed,
}

// Render draws the board, the HUD and the status line.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, "Error: "+g.err.Error(), platformcore.ColorRed)
		return
	}
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	if g.paused {
		g.renderPaused(dst)
	}
	g.renderStatus(dst)
}

// renderPaused draws a framed banner over the middle of the board.
func (g *Game) renderPaused(dst *platformcore.Screen) {
	const label = "PAUSED"
	w, h := len(label)+6, 3
	box := platformcore.NewRect((g.screenW-w)/2, (g.screenH-h)/2, w, h)

	_, y := box.Center()
	dst.DrawTextColored(box.X, y, strings.Repeat(" ", w), platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorYellow)
	dst.DrawTextCentered(y, label, platformcore.ColorBrightYellow)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorYellow)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorDefault)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	s := g.session
	st := s.Stats()

	dst.DrawTextCentered(0, "HEXTRAP · "+g.Title(), platformcore.ColorOrange)
	info := fmt.Sprintf("Level %d   Taps %d   Record %d   Trapped %d   Escaped %d",
		s.Level(), s.LevelTaps(), st.RecordLevel, st.TigersTrapped, st.TigersEscaped)
	dst.DrawTextCentered(1, info, platformcore.ColorCyan)
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	s := g.session
	v := g.view()
	showCursor := s.LevelState() == core.InLevel && s.Turn() == core.PlayerTurn

	for _, t := range s.Tiles() {
		x, y := v.cell(t.World)
		color := tileColors[t.Color]

		open, mid, closing := '(', ' ', ')'
		if t.Trapped {
			mid = '#'
		}

		dst.SetColored(x, y, open, color)
		dst.SetColored(x+1, y, mid, color)
		dst.SetColored(x+2, y, closing, color)

		if showCursor && t.Coord == g.cursor {
			dst.SetColored(x, y, '[', platformcore.ColorBrightYellow)
			dst.SetColored(x+2, y, ']', platformcore.ColorBrightYellow)
		}
	}

	if piece, ok := s.Piece(); ok {
		x, y := v.cell(piece.World)
		if !hexgrid.InBounds(piece.Coord, s.Size()) {
			dst.SetColored(x, y, '(', platformcore.ColorOrange)
			dst.SetColored(x+2, y, ')', platformcore.ColorOrange)
		}
		dst.SetColored(x+1, y, 'R', platformcore.ColorOrange)
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := g.screenH - 1

	switch {
	case g.paused:
		dst.DrawTextCentered(y, "PAUSED - press P to resume", platformcore.ColorYellow)
	case g.session.LevelState() == core.LevelWin:
		msg := fmt.Sprintf("Trapped! Level %d is next", g.session.Level()+1)
		dst.DrawTextCentered(y, msg, platformcore.ColorBrightGreen)
	case g.session.LevelState() == core.LevelLose:
		dst.DrawTextCentered(y, "It escaped! Back to the menu", platformcore.ColorBrightRed)
	default:
		dst.DrawTextCentered(y, "arrows move  enter/click trap  p pause  esc menu  q quit", platformcore.ColorGray)
	}
}

package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/hextrap/internal/games/hextrap/core"
)

var (
	colorBackground = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	colorOutline    = color.RGBA{R: 40, G: 44, B: 52, A: 255}
	colorHover      = color.RGBA{R: 255, G: 221, B: 87, A: 255}
	colorPiece      = color.RGBA{R: 247, G: 118, B: 34, A: 255}
	colorText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorTextSoft   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	colorTitle      = color.RGBA{R: 247, G: 118, B: 34, A: 255}

	tileColors = map[core.TileColor]color.RGBA{
		core.ColorOpen:    {R: 255, G: 255, B: 255, A: 255},
		core.ColorBlocked: {R: 169, G: 169, B: 169, A: 255},
		core.ColorWin:     {R: 144, G: 238, B: 144, A: 255},
		core.ColorLoss:    {R: 255, G: 0, B: 0, A: 255},
	}
)

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	switch g.mode {
	case modeGame:
		g.drawBoard(screen)
		g.drawHUD(screen)
	case modeStats:
		g.drawStats(screen)
	default:
		g.drawMenu(screen)
	}
}

// hexPath returns a flat-topped hexagon around (cx, cy) in pixels.
func hexPath(cx, cy, radius float64) *vector.Path {
	var path vector.Path
	for i := range 6 {
		a := float64(i) * math.Pi / 3
		x := float32(cx + radius*math.Cos(a))
		y := float32(cy + radius*math.Sin(a))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	return &path
}

func fillPath(dst *ebiten.Image, path *vector.Path, c color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(dst, path, &vector.FillOptions{}, op)
}

func strokePath(dst *ebiten.Image, path *vector.Path, width float32, c color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.StrokePath(dst, path, &vector.StrokeOptions{Width: width}, op)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	s := g.session
	radius := g.camera.Pixels(s.Params().F2F / 2)
	playerTurn := s.LevelState() == core.InLevel && s.Turn() == core.PlayerTurn

	for _, t := range s.Tiles() {
		x, y := g.camera.ToScreen(t.World)
		path := hexPath(x, y, radius*0.95)
		fillPath(screen, path, tileColors[t.Color])
		strokePath(screen, path, 2, colorOutline)
	}

	if g.hover != nil && playerTurn && !g.hover.Trapped {
		x, y := g.camera.ToScreen(g.hover.World)
		strokePath(screen, hexPath(x, y, radius*0.9), 3, colorHover)
	}

	if piece, ok := s.Piece(); ok {
		x, y := g.camera.ToScreen(piece.World)
		vector.FillCircle(screen, float32(x), float32(y), float32(radius*0.55), colorPiece, true)
		g.drawText(screen, "R", x, y-radius*0.35, radius*0.7, colorBackground, text.AlignCenter)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	st := s.Stats()
	v := g.variants[g.variant]

	hud := fmt.Sprintf("%s   Level %d   Taps %d   Record %d", v.Title, s.Level(), s.LevelTaps(), st.RecordLevel)
	g.drawText(screen, hud, 16, 12, 22, colorText, text.AlignStart)

	var status string
	var c color.Color = colorTextSoft
	switch s.LevelState() {
	case core.LevelWin:
		status = fmt.Sprintf("Trapped! Level %d is next", s.Level()+1)
		c = tileColors[core.ColorWin]
	case core.LevelLose:
		status = "It escaped! Back to the menu"
		c = tileColors[core.ColorLoss]
	default:
		status = "click a tile to trap it   wheel zoom   F11 fullscreen   Esc menu"
	}
	h := float64(g.camera.Height)
	g.drawText(screen, status, float64(g.camera.Width)/2, h-40, 20, c, text.AlignCenter)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	cx := float64(g.camera.Width) / 2
	y := float64(g.camera.Height) / 4

	g.drawText(screen, "Trap the Rustacean", cx, y, 56, colorTitle, text.AlignCenter)
	y += 110

	board := g.variants[g.variant].Title
	lines := []string{
		fmt.Sprintf("N   New Game   < %s >", board),
		"S   Stats",
		"Q   Quit",
	}
	for _, line := range lines {
		g.drawText(screen, line, cx, y, 30, colorText, text.AlignCenter)
		y += 50
	}

	y += 30
	g.drawText(screen, "Left/Right choose board   F11 fullscreen", cx, y, 18, colorTextSoft, text.AlignCenter)
}

func (g *Game) drawStats(screen *ebiten.Image) {
	cx := float64(g.camera.Width) / 2
	y := float64(g.camera.Height) / 4
	st := g.record()

	g.drawText(screen, "Total Statistics", cx, y, 44, colorTitle, text.AlignCenter)
	y += 90

	lines := []string{
		fmt.Sprintf("Record level: %d", st.RecordLevel),
		fmt.Sprintf("Rustaceans trapped: %d", st.TigersTrapped),
		fmt.Sprintf("Rustaceans escaped: %d", st.TigersEscaped),
		fmt.Sprintf("Tiles tapped: %d", st.TilesTapped),
		fmt.Sprintf("Games played: %d", st.GamesPlayed),
	}
	for _, line := range lines {
		g.drawText(screen, line, cx, y, 28, colorText, text.AlignCenter)
		y += 44
	}

	y += 30
	g.drawText(screen, "Esc  Return to Main Menu", cx, y, 20, colorTextSoft, text.AlignCenter)
}

// drawText draws s with its top edge at y, aligned on x.
func (g *Game) drawText(dst *ebiten.Image, s string, x, y, size float64, c color.Color, align text.Align) {
	face := &text.GoTextFace{Source: g.fontSource, Size: size}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

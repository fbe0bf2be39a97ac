// Package gui runs hextrap in a window with Ebiten. It draws the board at
// its world positions and routes mouse clicks to tiles.
package gui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/hextrap/internal/config"
	"github.com/vovakirdan/hextrap/internal/games/hextrap"
	"github.com/vovakirdan/hextrap/internal/games/hextrap/core"
	"github.com/vovakirdan/hextrap/internal/platform/gui/camera"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
)

// Default window size in pixels.
const (
	WindowWidth  = 1280
	WindowHeight = 960
)

type mode int

const (
	modeMenu mode = iota
	modeGame
	modeStats
)

// Options configures a window game.
type Options struct {
	Env      registry.Env
	Variant  string // preselected board, config default when empty
	Seed     int64  // 0 seeds from the clock
	TickRate int    // 0 uses the configured tick rate
}

// Game implements ebiten.Game: main menu, board and stats screen.
type Game struct {
	env      registry.Env
	cfg      config.Config
	logger   *log.Logger
	variants []config.VariantConfig
	variant  int
	seed     int64
	tickRate int

	mode    mode
	session *core.Session
	camera  camera.Camera
	hover   *core.Tile

	fontSource *text.GoTextFaceSource
}

// New creates the window game.
func New(opts Options) (*Game, error) {
	cfg := opts.Env.Config
	if len(cfg.Variants) == 0 {
		cfg = config.Default()
	}

	logger := opts.Env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("gui: load font: %w", err)
	}

	g := &Game{
		env:        opts.Env,
		cfg:        cfg,
		logger:     logger,
		variants:   cfg.Variants,
		seed:       opts.Seed,
		tickRate:   opts.TickRate,
		camera:     camera.New(WindowWidth, WindowHeight),
		fontSource: src,
	}
	if g.tickRate <= 0 {
		g.tickRate = cfg.Timing.TickRate
	}
	if g.tickRate <= 0 {
		g.tickRate = 60
	}

	want := opts.Variant
	if want == "" {
		want = cfg.Board.DefaultVariant
	}
	for i, v := range g.variants {
		if v.ID == want {
			g.variant = i
		}
	}
	return g, nil
}

// Run opens the window and blocks until the player quits.
func Run(g *Game) error {
	ebiten.SetWindowTitle("Hextrap")
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(g.tickRate)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update advances one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if ebiten.IsWindowBeingClosed() {
		return g.quit()
	}

	switch g.mode {
	case modeGame:
		return g.updateGame()
	case modeStats:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyB) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.mode = modeMenu
		}
		return nil
	}
	return g.updateMenu()
}

func (g *Game) updateMenu() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return g.newGame()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.mode = modeStats
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return g.quit()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.variant = (g.variant + len(g.variants) - 1) % len(g.variants)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.variant = (g.variant + 1) % len(g.variants)
	}
	return nil
}

// newGame starts a run on the selected board.
func (g *Game) newGame() error {
	v := g.variants[g.variant]
	params, err := hextrap.ParamsFor(g.cfg, v)
	if err != nil {
		return fmt.Errorf("gui: board %s: %w", v.ID, err)
	}

	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []core.Option{core.WithSeed(seed), core.WithLogger(g.logger.With("variant", v.ID))}
	if g.env.Stats != nil {
		opts = append(opts, core.WithStats(g.env.Stats))
	}
	if g.env.History != nil {
		opts = append(opts, core.WithRecorder(g.env.History))
	}

	g.session, err = core.NewSession(params, opts...)
	if err != nil {
		return err
	}
	g.session.StartGame()
	g.camera.Fit(g.session.Layout())
	g.mode = modeGame
	g.logger.Info("game started", "variant", v.ID)
	return nil
}

func (g *Game) updateGame() error {
	s := g.session

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.mode = modeMenu
		return s.Quit()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.camera.Zoom(dy)
	}

	if err := s.Update(time.Second / time.Duration(g.tickRate)); err != nil {
		return err
	}
	if s.LevelState() == core.OutOfLevel {
		g.logger.Info("game ended", "level", s.Level())
		g.mode = modeMenu
		return nil
	}

	g.hover = nil
	mx, my := ebiten.CursorPosition()
	p := g.camera.ToWorld(float64(mx), float64(my))
	c, ok := s.Layout().Pick(p.X, p.Y)
	if !ok {
		return nil
	}
	if t, found := s.Tile(c); found {
		g.hover = &t
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Tap(c)
	}
	return nil
}

// quit ends the running game, saves its stats and closes the window.
func (g *Game) quit() error {
	if g.session != nil {
		if err := g.session.Quit(); err != nil {
			return err
		}
	}
	return ebiten.Termination
}

// record returns the statistics shown in the menus.
func (g *Game) record() stats.TotalGameStats {
	if g.env.Stats != nil {
		return g.env.Stats.Current()
	}
	return stats.Default()
}

// Layout follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.camera.Resize(outsideWidth, outsideHeight) && g.session != nil {
		g.camera.Fit(g.session.Layout())
	}
	return outsideWidth, outsideHeight
}

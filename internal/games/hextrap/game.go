// Package hextrap adapts the hextrap rules to the platform: it registers
// the board variants, maps input frames to taps and renders the board into
// a character screen.
package hextrap

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hextrap/internal/config"
	platformcore "github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/games/hextrap/core"
	"github.com/vovakirdan/hextrap/internal/hexgrid"
	"github.com/vovakirdan/hextrap/internal/registry"
)

// Game implements registry.Game for one board variant.
type Game struct {
	variant config.VariantConfig
	env     registry.Env
	logger  *log.Logger

	session *core.Session
	cursor  hexgrid.Coord

	screenW  int
	screenH  int
	tickRate int
	tick     uint64

	paused   bool
	tooSmall bool
	err      error
}

var builtinVariants = []config.VariantConfig{
	{ID: "classic", Title: "Classic 7x12", Cols: 7, Rows: 12},
	{ID: "wide", Title: "Wide 11x12", Cols: 11, Rows: 12},
}

func init() {
	for _, v := range builtinVariants {
		registry.Register(v.ID, v.Title, factory(v))
	}
}

func factory(fallback config.VariantConfig) registry.Factory {
	return func(env registry.Env) registry.Game {
		return New(fallback, env)
	}
}

// RegisterConfigVariants registers every configured variant that is not
// registered yet.
func RegisterConfigVariants(cfg config.Config) {
	for _, v := range cfg.Variants {
		if registry.Exists(v.ID) {
			continue
		}
		registry.Register(v.ID, v.Title, factory(v))
	}
}

// New creates a game for the variant. A variant of the same ID in
// env.Config overrides the given dimensions.
func New(v config.VariantConfig, env registry.Env) *Game {
	if configured, ok := env.Config.Variant(v.ID); ok {
		v = configured
	}
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		variant: v,
		env:     env,
		logger:  logger.With("variant", v.ID),
	}
}

// ParamsFor converts a configured variant into session parameters.
func ParamsFor(cfg config.Config, v config.VariantConfig) (core.Params, error) {
	o, err := hexgrid.ParseOrientation(cfg.Board.Orientation)
	if err != nil {
		return core.Params{}, err
	}
	p := core.Params{
		Variant:       v.ID,
		Size:          v.Size(),
		F2F:           cfg.Board.F2F,
		Orientation:   o,
		TrapRatio:     cfg.Traps.Ratio,
		TrapReliefCap: cfg.Traps.ReliefCap,
		WinDwell:      cfg.Timing.WinDwell,
		LoseDwell:     cfg.Timing.LoseDwell,
	}
	if p.F2F == 0 {
		p = withDefaults(p)
	}
	return p, p.Validate()
}

// withDefaults fills a zero config (for example registry.Env{}) from the
// built-in parameters.
func withDefaults(p core.Params) core.Params {
	d := core.DefaultParams()
	d.Variant = p.Variant
	d.Size = p.Size
	return d
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset builds a fresh session and starts a run at level 1.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.paused = false
	g.err = nil

	params, err := ParamsFor(g.env.Config, g.variant)
	if err != nil {
		g.err = fmt.Errorf("hextrap: variant %s: %w", g.variant.ID, err)
		return
	}

	opts := []core.Option{
		core.WithSeed(cfg.Seed),
		core.WithLogger(g.logger),
	}
	if cfg.Player != "" {
		opts = append(opts, core.WithPlayer(cfg.Player))
	}
	if g.env.Stats != nil {
		opts = append(opts, core.WithStats(g.env.Stats))
	}
	if g.env.History != nil {
		opts = append(opts, core.WithRecorder(g.env.History))
	}

	g.session, err = core.NewSession(params, opts...)
	if err != nil {
		g.err = err
		return
	}
	g.session.StartGame()
	g.cursor = params.Size.Center()
	g.checkScreenSize()
}

// Resize adapts the game to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	if g.session == nil {
		return
	}
	v := g.view()
	g.tooSmall = v.boardW+2 > g.screenW || v.boardH+hudLines+footerLines+2 > g.screenH
}

// Session exposes the running session to frontends that draw it themselves.
func (g *Game) Session() *core.Session {
	return g.session
}

// Cursor returns the keyboard cursor.
func (g *Game) Cursor() hexgrid.Coord {
	return g.cursor
}

// Step advances the game by one tick. A tap is answered by the rustacean
// on the following tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.err != nil || g.session == nil {
		return platformcore.StepResult{State: g.State(), Err: g.err}
	}
	g.tick++

	if in.Has(platformcore.ActionPause) && g.session.LevelState() == core.InLevel {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	dt := time.Second / time.Duration(g.tickRate)
	if err := g.session.Update(dt); err != nil {
		g.err = err
		g.logger.Error("cannot save stats", "err", err)
		return platformcore.StepResult{State: g.State(), Err: err}
	}

	g.moveCursor(in)

	if in.Has(platformcore.ActionConfirm) {
		g.session.Tap(g.cursor)
	}
	if in.Click != nil {
		if c, ok := g.tileAt(in.Click.X, in.Click.Y); ok {
			g.cursor = c
			g.session.Tap(c)
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// moveCursor moves the cursor across the rendered board. Screen rows are
// grid columns, so up/down walk X and left/right walk Y.
func (g *Game) moveCursor(in platformcore.InputFrame) {
	size := g.session.Size()
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.X--
	case in.Has(platformcore.ActionDown):
		g.cursor.X++
	case in.Has(platformcore.ActionLeft):
		g.cursor.Y--
	case in.Has(platformcore.ActionRight):
		g.cursor.Y++
	}
	g.cursor.X = platformcore.Clamp(g.cursor.X, 0, size.Cols-1)
	g.cursor.Y = platformcore.Clamp(g.cursor.Y, 0, size.Rows-1)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true}
	}
	return platformcore.GameState{
		Level:    g.session.Level(),
		Taps:     g.session.LevelTaps(),
		GameOver: g.session.LevelState() == core.OutOfLevel,
		Paused:   g.paused || g.tooSmall,
	}
}

// Quit abandons the run and saves statistics.
func (g *Game) Quit() error {
	if g.session == nil {
		return nil
	}
	return g.session.Quit()
}

// Snapshot returns the session snapshot for determinism checks.
func (g *Game) Snapshot() core.Snapshot {
	if g.session == nil {
		return core.Snapshot{}
	}
	return g.session.Snapshot()
}

package ebitenloop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/motion"
)

// RunConfig configures a Game.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ClearColor fills the screen before DrawFunc. Nil leaves the screen as
	// ebiten provides it.
	ClearColor color.Color
	// UpdateFunc runs after the motion frame on every tick.
	UpdateFunc func() error
	// DrawFunc renders the game.
	DrawFunc func(screen *ebiten.Image)
}

// Game is an ebiten.Game that produces one motion frame per tick before
// calling the configured update function.
type Game struct {
	cfg       RunConfig
	scheduler *Scheduler
	clock     *TickClock
	fps       *fpsOverlay
}

// NewGame builds a Game from cfg.
func NewGame(cfg RunConfig) *Game {
	g := &Game{
		cfg:       cfg,
		scheduler: NewScheduler(),
		clock:     NewTickClock(),
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay(g.scheduler)
	}
	return g
}

// Scheduler returns the game's frame scheduler.
func (g *Game) Scheduler() *Scheduler {
	return g.scheduler
}

// Clock returns the game's tick clock.
func (g *Game) Clock() *TickClock {
	return g.clock
}

// Options returns the controller options that bind a controller to the game
// loop.
func (g *Game) Options(extra ...motion.Option) []motion.Option {
	opts := []motion.Option{
		motion.WithScheduler(g.scheduler),
		motion.WithClock(g.clock),
	}
	return append(opts, extra...)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := g.clock.Tick()
	g.scheduler.Update()
	if g.fps != nil {
		g.fps.update(dt.Seconds())
	}
	if g.cfg.UpdateFunc != nil {
		return g.cfg.UpdateFunc()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != nil {
		screen.Fill(g.cfg.ClearColor)
	}
	if g.cfg.DrawFunc != nil {
		g.cfg.DrawFunc(screen)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. A configured size is used as the logical
// screen size; otherwise the outside size is used.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the game until it exits.
func (g *Game) Run() error {
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	}
	return ebiten.RunGame(g)
}

// Run is NewGame(cfg).Run().
func Run(cfg RunConfig) error {
	return NewGame(cfg).Run()
}

// Package ebitenloop drives motion controllers from an Ebitengine game loop.
//
// Ebitengine calls Update at a fixed tick rate (ebiten.TPS). The Scheduler in
// this package produces one motion frame per Update, and TickClock advances
// by exactly one tick per Update so frame deltas match the game's simulation
// step instead of wall-clock jitter.
//
//	game := ebitenloop.NewGame(ebitenloop.RunConfig{Title: "demo", Width: 640, Height: 480})
//	ctrl := motion.Create(state, anim, game.Options()...)
//	ctrl.Start()
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
package ebitenloop

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/motion"
)

// Scheduler is a motion.FrameScheduler flushed once per game tick.
type Scheduler struct {
	motion.FrameQueue
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Update runs the frame callbacks requested since the previous Update. Call
// it from ebiten.Game.Update when not using Game.
func (s *Scheduler) Update() int {
	return s.Flush()
}

// TickClock is a motion.Clock that advances by one game tick per call to
// Tick.
type TickClock struct {
	mu  sync.Mutex
	now time.Time
	tps func() int
}

// NewTickClock returns a clock driven by ebiten.TPS.
func NewTickClock() *TickClock {
	return newTickClock(ebiten.TPS)
}

func newTickClock(tps func() int) *TickClock {
	return &TickClock{now: time.Unix(0, 0), tps: tps}
}

// Now returns the simulated time.
func (c *TickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Tick advances the clock by one tick and returns the tick length.
func (c *TickClock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	tps := c.tps()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := time.Second / time.Duration(tps)
	c.now = c.now.Add(dt)
	return dt
}

package ebitenloop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the number of queued motion frames. The text
// is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	scheduler *Scheduler
	img       *ebiten.Image
	since     float64
	text      string
}

func newFPSOverlay(s *Scheduler) *fpsOverlay {
	return &fpsOverlay{scheduler: s, since: 0.5}
}

func (o *fpsOverlay) update(dt float64) {
	o.since += dt
	if o.since < 0.5 {
		return
	}
	o.since = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nFrames: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), o.scheduler.Pending())
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	if o.img == nil {
		// 110x48 fits three short lines of debug text.
		o.img = ebiten.NewImage(110, 48)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}

package lexisphere

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSOverlay is a small corner widget showing the current FPS and TPS,
// refreshed every ~0.5 seconds. Attach it through RunConfig.ShowFPS or
// draw it manually after Scene.Draw.
type FPSOverlay struct {
	img   *ebiten.Image
	since float64
}

// NewFPSOverlay creates the overlay. 100x32 is enough for
// "FPS: 60.0\nTPS: 60.0".
func NewFPSOverlay() *FPSOverlay {
	return &FPSOverlay{img: ebiten.NewImage(100, 32)}
}

// Update advances the refresh timer; dt is seconds since the last tick.
func (o *FPSOverlay) Update(dt float64) {
	o.since += dt
	if o.since < 0.5 {
		return
	}
	o.since = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw blits the overlay at the top-left corner.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

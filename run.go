package lexisphere

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable allows the user to resize the window; the camera
	// viewport follows.
	Resizable bool
	// ExitWhenScriptDone stops the loop once an attached TestRunner has
	// executed its last step. Used for headless scripted runs.
	ExitWhenScriptDone bool
}

// Run creates a window and drives the scene with a standard game loop.
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "lexisphere"
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{scene: scene, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = NewFPSOverlay()
	}
	return ebiten.RunGame(g)
}

// scriptDoneError signals a clean exit after a scripted run completes.
type scriptDoneError struct{}

func (scriptDoneError) Error() string { return "script complete" }

// IsScriptDone reports whether the error returned by Run means an
// attached test script finished cleanly.
func IsScriptDone(err error) bool {
	_, ok := err.(scriptDoneError)
	return ok
}

type game struct {
	scene *Scene
	cfg   RunConfig
	fps   *FPSOverlay
}

func (g *game) Update() error {
	g.scene.Update()
	if g.fps != nil {
		g.fps.Update(1.0 / float64(ebiten.TPS()))
	}
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() &&
		len(g.scene.screenshotQueue) == 0 {
		return scriptDoneError{}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Camera().Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Package lexisphere is an interactive 3D viewer for term graphs, built on
// [Ebitengine].
//
// A scene holds a focused term at the origin with its synonyms arranged
// around it in three dimensions. The user rotates the whole constellation
// by dragging, with decaying inertia after release, hovers to highlight,
// and clicks a synonym to travel to it: the camera glides to the chosen
// node while its own neighborhood is fetched and faded in, and the old
// neighborhood fades out.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop for you:
//
//	scene := lexisphere.NewScene(960, 720)
//	scene.Transitions().SetLoader(loader)
//	scene.BuildGraph(record)
//	lexisphere.Run(scene, lexisphere.RunConfig{
//		Title: "Lexisphere", Width: 960, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *lexisphere.Scene }
//
//	func (g *Game) Update() error              { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Interaction model
//
// All interaction state is advanced on the frame tick in a fixed order:
// input classification, rotation and inertia, then transition steps.
// Every mutable value has exactly one writer, so the package needs no
// locks; term records are fetched on background goroutines and handed to
// the frame tick over a channel.
//
// Scripted interaction for automated testing goes through [Scene.InjectClick],
// [Scene.InjectDrag], and friends, or a JSON-scripted [TestRunner].
//
// [Ebitengine]: https://ebitengine.org
package lexisphere

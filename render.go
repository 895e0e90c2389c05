package lexisphere

import (
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// nodeRadiusPx is the on-screen radius of a node disc at depth 1.
const nodeRadiusPx = 6.0

// drawItem is one projected node queued for the painter pass.
type drawItem struct {
	node  *Node
	sx    float64
	sy    float64
	depth float64
	scale float64
}

// Draw renders the scene onto screen: focus-to-neighbor edges first, then
// node discs and labels as billboards, depth-sorted back to front. Nodes
// behind the camera or fully transparent are skipped.
func (s *Scene) Draw(screen *ebiten.Image) {
	start := time.Now()

	s.drawEdges(screen)

	s.drawBuf = s.drawBuf[:0]
	for _, n := range s.nodes {
		if n.IsDisposed() || !n.Visible || n.Alpha <= 0 {
			continue
		}
		world := n.WorldPosition(s.orientation)
		sx, sy, depth, visible := s.camera.WorldToScreen(world)
		if !visible {
			continue
		}
		s.drawBuf = append(s.drawBuf, drawItem{
			node:  n,
			sx:    sx,
			sy:    sy,
			depth: depth,
			scale: s.camera.PerspectiveScale(depth) * n.Scale,
		})
	}

	// Painter's order: farthest first.
	sort.SliceStable(s.drawBuf, func(i, j int) bool {
		return s.drawBuf[i].depth > s.drawBuf[j].depth
	})

	for i := range s.drawBuf {
		s.drawNode(screen, &s.drawBuf[i])
	}

	if s.debug {
		s.frameStats.record(time.Since(start))
		s.frameStats.maybeReport()
	}

	s.flushScreenshots(screen)
}

// drawEdges draws a line from the focused node to each of its visible
// neighbors, under the node discs.
func (s *Scene) drawEdges(screen *ebiten.Image) {
	focus := s.focus
	if focus == nil || focus.IsDisposed() {
		return
	}
	fw := focus.WorldPosition(s.orientation)
	fx, fy, _, fvis := s.camera.WorldToScreen(fw)
	if !fvis {
		return
	}

	for _, n := range s.nodes {
		if n == focus || n.IsDisposed() || !n.Visible || n.Alpha <= 0 {
			continue
		}
		nx, ny, _, nvis := s.camera.WorldToScreen(n.WorldPosition(s.orientation))
		if !nvis {
			continue
		}
		drawLine(screen, fx, fy, nx, ny, edgeColor(n))
	}
}

// edgeColor dims the edge by the neighbor's fade alpha so entering and
// departing nodes carry their edges with them.
func edgeColor(n *Node) Color {
	c := ColorWhite
	c.A = 0.25 * n.Alpha
	return c
}

// drawLine stretches the shared white pixel into a 1px segment.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 float64, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, 1)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x0, y0)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	screen.DrawImage(WhitePixel, op)
}

// drawNode draws one projected node: a tinted disc billboard with its
// term label to the right.
func (s *Scene) drawNode(screen *ebiten.Image, item *drawItem) {
	n := item.node
	size := nodeRadiusPx * 2 * item.scale
	if size < 1 {
		size = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(item.sx-size/2, item.sy-size/2)
	tint := n.Color
	tint.A *= n.Alpha
	op.ColorScale.Scale(float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A))
	screen.DrawImage(WhitePixel, op)

	label := n.labelImage()
	if label == nil {
		return
	}
	lb := label.Bounds()
	lop := &ebiten.DrawImageOptions{}
	lop.GeoM.Scale(item.scale, item.scale)
	lop.GeoM.Translate(item.sx+size/2+3, item.sy-float64(lb.Dy())*item.scale/2)
	lop.ColorScale.ScaleAlpha(float32(n.Alpha))
	screen.DrawImage(label, lop)
}

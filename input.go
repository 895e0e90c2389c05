package lexisphere

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// defaultClickThreshold is the per-axis pixel displacement between press
// and release within which the gesture still counts as a click. Either
// axis exceeding it reclassifies the gesture as a drag.
const defaultClickThreshold = 4.0

// pointerState tracks one press/drag/release gesture across frames.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// PointerEvent describes one gesture event delivered to OnPointer
// listeners. Node is set only for EventClick, to the node the click
// resolved to (nil for a click on empty space).
type PointerEvent struct {
	Type EventType
	X, Y float64
	Node *Node
}

// processInput reads the pointer for this frame, classifies the gesture,
// and routes it: hover picking while idle, rotation while dragging, node
// selection on a click release. Injected synthetic events, when queued,
// replace the real device for the frame.
func (s *Scene) processInput() {
	if len(s.injectQueue) > 0 {
		s.processInjectedInput()
		return
	}

	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	s.processPointer(float64(x), float64(y), pressed, justPressed)
}

// processPointer is the device-independent gesture state machine. Both the
// real cursor and injected events funnel through here.
//
// While the button is held, frame-to-frame deltas feed the rotation
// controller immediately. Click-vs-drag is decided only at release: a
// total per-axis displacement within the threshold is a click, resolved
// by a fresh pick at the release coordinates. The hover highlight
// follows the pointer in every state, button held or not.
func (s *Scene) processPointer(x, y float64, pressed, justPressed bool) {
	switch {
	case justPressed || (pressed && !s.pointer.down):
		s.pointer.down = true
		s.pointer.dragging = false
		s.pointer.startX, s.pointer.startY = x, y
		s.pointer.lastX, s.pointer.lastY = x, y
		s.rotation.ResetVelocity()
		s.emitPointer(PointerEvent{Type: EventPointerDown, X: x, Y: y})
		s.refreshHover(x, y)

	case pressed && s.pointer.down:
		dx := x - s.pointer.lastX
		dy := y - s.pointer.lastY
		s.pointer.lastX, s.pointer.lastY = x, y
		if dx != 0 || dy != 0 {
			s.rotation.Drag(dx, dy)
			if !s.pointer.dragging && !s.isClick(x, y) {
				s.pointer.dragging = true
				s.emitPointer(PointerEvent{Type: EventDragStart, X: x, Y: y})
			}
			if s.pointer.dragging {
				s.emitPointer(PointerEvent{Type: EventDrag, X: x, Y: y})
			}
		}
		// Hover feedback keeps tracking the pointer mid-drag; the scene
		// rotates under the cursor, so this re-picks even without movement.
		s.refreshHover(x, y)

	case !pressed && s.pointer.down:
		s.pointer.down = false
		s.emitPointer(PointerEvent{Type: EventPointerUp, X: x, Y: y})
		if s.isClick(x, y) {
			s.rotation.ResetVelocity()
			var picked *Node
			if hit := s.PickAtScreen(x, y); hit != nil {
				picked = hit.Node
			}
			s.emitPointer(PointerEvent{Type: EventClick, X: x, Y: y, Node: picked})
			if picked != nil {
				s.selectNode(picked)
			}
		} else {
			s.emitPointer(PointerEvent{Type: EventDragEnd, X: x, Y: y})
		}
		s.pointer.dragging = false

	default:
		if x != s.pointer.lastX || y != s.pointer.lastY {
			s.pointer.lastX, s.pointer.lastY = x, y
			s.emitPointer(PointerEvent{Type: EventPointerMove, X: x, Y: y})
		}
		s.refreshHover(x, y)
	}
}

// refreshHover re-picks at the pointer position and hands the result to
// the hover highlighter. Runs in every pointer state, dragging included.
func (s *Scene) refreshHover(x, y float64) {
	var hovered *Node
	if hit := s.PickAtScreen(x, y); hit != nil {
		hovered = hit.Node
	}
	s.hover.update(hovered)
}

// isClick reports whether a gesture released at (x, y) stayed within the
// click threshold on both axes.
func (s *Scene) isClick(x, y float64) bool {
	return abs(x-s.pointer.startX) <= s.clickThreshold &&
		abs(y-s.pointer.startY) <= s.clickThreshold
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

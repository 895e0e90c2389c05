package lexisphere

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// defaultCameraDistance places the camera far enough back that a full
// LayoutScale neighborhood fits in view.
const defaultCameraDistance = 220.0

// Scene is the top-level object for the term-graph viewer. It owns the node
// set, the world orientation quaternion, the camera, and the interaction
// components, and enforces the fixed per-frame ordering between them.
//
// Ownership discipline replaces locks: the orientation is written only by
// the rotation controller, the camera position only by the transition
// machine, the angular velocity only by the rotation controller, and the
// hovered-node reference only by the hover highlighter. All of them run on
// the same cooperative frame tick, in a fixed order.
type Scene struct {
	// World state. orientation is the unit quaternion applied to every
	// node's layout position.
	orientation Quaternion
	nodes       []*Node
	byID        map[string]*Node
	nextOrder   int
	focus       *Node

	camera      *Camera
	rotation    *RotationController
	hover       hoverHighlighter
	transitions *TransitionMachine

	// Input state
	pointer        pointerState
	clickThreshold float64
	hitTolerance   float64
	injectQueue    []syntheticPointerEvent
	onSelect       []func(*Node)
	onPointer      []func(PointerEvent)

	// Scripted runs and capture
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	debug      bool
	frameStats frameStats

	// Render buffers
	drawBuf []drawItem
}

// NewScene creates a scene rendering through a camera of the given viewport
// size, positioned back along +Z looking at the origin.
func NewScene(width, height int) *Scene {
	cam := NewCamera(width, height)
	cam.Position = Vector3{0, 0, defaultCameraDistance}

	s := &Scene{
		orientation:    QuaternionIdentity(),
		byID:           map[string]*Node{},
		camera:         cam,
		clickThreshold: defaultClickThreshold,
		hitTolerance:   defaultHitTolerance,
		ScreenshotDir:  "screenshots",
	}
	s.rotation = newRotationController(s)
	s.hover.highlight = ColorHighlight
	s.transitions = newTransitionMachine(s)
	return s
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Rotation returns the rotation/inertia controller for tuning.
func (s *Scene) Rotation() *RotationController {
	return s.rotation
}

// Transitions returns the transition machine for tuning and selection.
func (s *Scene) Transitions() *TransitionMachine {
	return s.transitions
}

// Orientation returns the current world orientation quaternion.
func (s *Scene) Orientation() Quaternion {
	return s.orientation
}

// SetOrientation resets the world orientation. Intended for setup and
// tests; during a run the rotation controller owns this value.
func (s *Scene) SetOrientation(q Quaternion) {
	s.orientation = q.Unit()
}

// Focus returns the currently focused node, or nil.
func (s *Scene) Focus() *Node {
	return s.focus
}

func (s *Scene) setFocus(n *Node) {
	s.focus = n
}

// Nodes returns the scene's node set. The returned slice MUST NOT be
// mutated.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// NodeByID returns the live node with the given term id, or nil.
func (s *Scene) NodeByID(id string) *Node {
	return s.byID[id]
}

// AddNode inserts a node into the pickable set. Insertion order is the
// deterministic tie-break for coincident pick hits.
func (s *Scene) AddNode(n *Node) {
	n.order = s.nextOrder
	s.nextOrder++
	s.nodes = append(s.nodes, n)
	if n.ID != "" {
		s.byID[n.ID] = n
	}
}

// OnSelect registers a callback fired when a click resolves to a node,
// before the transition machine starts moving toward it.
func (s *Scene) OnSelect(fn func(*Node)) {
	s.onSelect = append(s.onSelect, fn)
}

// OnPointer registers a listener for raw gesture events. Listeners run
// during input processing, before selection callbacks.
func (s *Scene) OnPointer(fn func(PointerEvent)) {
	s.onPointer = append(s.onPointer, fn)
}

func (s *Scene) emitPointer(evt PointerEvent) {
	for _, fn := range s.onPointer {
		fn(evt)
	}
}

// SetClickThreshold sets the per-axis pixel displacement within which a
// press/release pair still counts as a click rather than a drag.
func (s *Scene) SetClickThreshold(pixels float64) {
	s.clickThreshold = pixels
}

// SetDebugMode enables per-frame timing stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetTestRunner attaches a scripted interaction runner. The runner's step
// method is called at the top of Update each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Update advances the scene by one frame in the fixed order that keeps
// every shared value single-writer within a frame: scripted steps, then
// gesture classification and hover/pick, then the rotation/inertia tick,
// then transition steps. Rendering happens afterward in Draw.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.testRunner != nil && !s.testRunner.Done() {
		s.testRunner.step(s)
	}

	s.processInput()
	s.rotation.Tick(s.pointer.down)
	s.transitions.Tick(dt)

	s.sweepDisposed()
}

// sweepDisposed removes disposed nodes from the node set and drops any
// dangling focus/hover references to them.
func (s *Scene) sweepDisposed() {
	live := s.nodes[:0]
	for _, n := range s.nodes {
		if n.IsDisposed() {
			delete(s.byID, n.ID)
			if s.focus == n {
				s.focus = nil
			}
			if s.hover.hovered == n {
				s.hover.drop()
			}
			continue
		}
		live = append(live, n)
	}
	s.nodes = live
}

// selectNode resolves a completed click: user callbacks first, then the
// transition machine takes over.
func (s *Scene) selectNode(n *Node) {
	if s.debug {
		debugCheckDisposed(n, "select")
	}
	for _, fn := range s.onSelect {
		fn(n)
	}
	s.transitions.Select(n)
}

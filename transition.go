package lexisphere

import (
	"context"
	"log/slog"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition timing defaults, in seconds.
const (
	defaultTranslateDuration = 1.0
	defaultExpandDuration    = 0.8
	// defaultStandoff is how far the camera stops short of the focused node.
	defaultStandoff = 60.0
)

// TransitionToken is an opaque handle for one in-flight node-focus
// transition. A cancelled token is poisoned: every animation step checks the
// flag before mutating and a poisoned token never touches the scene again,
// even if the term load it was waiting on resolves later.
type TransitionToken struct {
	targetID  string
	mode      TransitionMode
	cancelled bool
}

// TargetID returns the id of the node this transition focuses.
func (t *TransitionToken) TargetID() string { return t.targetID }

// Mode returns the sequencing mode the token was started with.
func (t *TransitionToken) Mode() TransitionMode { return t.mode }

// Cancel poisons the token. Safe to call more than once.
func (t *TransitionToken) Cancel() { t.cancelled = true }

// Cancelled reports whether the token has been poisoned.
func (t *TransitionToken) Cancelled() bool { return t.cancelled }

// cameraTween animates the camera position along all three axes.
type cameraTween struct {
	x, y, z *gween.Tween
}

func newCameraTween(from, to Vector3, duration float32) *cameraTween {
	return &cameraTween{
		x: gween.New(float32(from.X), float32(to.X), duration, ease.InOutQuad),
		y: gween.New(float32(from.Y), float32(to.Y), duration, ease.InOutQuad),
		z: gween.New(float32(from.Z), float32(to.Z), duration, ease.InOutQuad),
	}
}

// update advances the tween and writes the camera position. Returns true
// once all three axes have finished.
func (c *cameraTween) update(pos *Vector3, dt float32) bool {
	vx, doneX := c.x.Update(dt)
	vy, doneY := c.y.Update(dt)
	vz, doneZ := c.z.Update(dt)
	pos.X = float64(vx)
	pos.Y = float64(vy)
	pos.Z = float64(vz)
	return doneX && doneY && doneZ
}

// nodeFade animates one node's alpha (and optionally scale) during the
// expansion phase.
type nodeFade struct {
	node  *Node
	alpha *gween.Tween
	scale *gween.Tween
	done  bool
}

func (f *nodeFade) update(dt float32) {
	if f.done {
		return
	}
	va, doneA := f.alpha.Update(dt)
	f.node.Alpha = float64(va)
	doneS := true
	if f.scale != nil {
		vs, d := f.scale.Update(dt)
		f.node.Scale = float64(vs)
		doneS = d
	}
	f.done = doneA && doneS
}

// expandTimeline is the neighborhood-expansion half of a transition: new
// related nodes fade and scale into place while nodes leaving the
// neighborhood fade out.
type expandTimeline struct {
	entering  []*nodeFade
	departing []*nodeFade
}

// update advances every fade by dt. Returns true when all fades finished.
func (e *expandTimeline) update(dt float32) bool {
	all := true
	for _, f := range e.entering {
		f.update(dt)
		all = all && f.done
	}
	for _, f := range e.departing {
		f.update(dt)
		all = all && f.done
	}
	return all
}

// finish disposes the fully faded-out departing nodes. Only called on
// completion, never on cancellation, so a cancelled transition leaves
// partially faded nodes alive for the next transition to pick up.
func (e *expandTimeline) finish() {
	for _, f := range e.departing {
		f.node.Dispose()
	}
}

// loadResult carries the outcome of the asynchronous term load back onto
// the frame tick.
type loadResult struct {
	record *TermRecord
	err    error
}

// activeTransition is the per-token runtime state.
type activeTransition struct {
	token  *TransitionToken
	target *Node

	translate     *cameraTween
	translateDone bool

	loadCh      chan loadResult
	loadPending bool
	record      *TermRecord
	loadErr     error

	expand     *expandTimeline
	expandDone bool
}

// TransitionMachine orchestrates the animated move from the current focal
// node to a newly selected one: a camera translate toward the target,
// then (serial) or alongside (parallel) the expansion of the target's
// neighborhood. Selecting a node cancels every in-flight transition first,
// so at most the most recent uncancelled token drives scene mutation.
//
// All mutation happens inside Tick on the frame goroutine; the only
// off-tick work is the term load, whose result is polled at a step boundary.
type TransitionMachine struct {
	scene  *Scene
	loader TermLoader
	logger *slog.Logger
	active []*activeTransition

	// Mode selects serial or parallel sequencing for new tokens.
	Mode TransitionMode
	// TranslateDuration and ExpandDuration are the fixed lengths of the two
	// animation phases, in seconds.
	TranslateDuration float32
	ExpandDuration    float32
	// Standoff is the camera's resting distance from the focused node.
	Standoff float64
}

func newTransitionMachine(scene *Scene) *TransitionMachine {
	return &TransitionMachine{
		scene:             scene,
		logger:            slog.Default(),
		TranslateDuration: defaultTranslateDuration,
		ExpandDuration:    defaultExpandDuration,
		Standoff:          defaultStandoff,
	}
}

// SetLoader sets the term loader used to fetch the neighborhood of a newly
// focused node. Without a loader, transitions only translate the camera.
func (m *TransitionMachine) SetLoader(loader TermLoader) {
	m.loader = loader
}

// SetLogger replaces the logger used for load failures.
func (m *TransitionMachine) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Idle reports whether no transition is in flight.
func (m *TransitionMachine) Idle() bool {
	return len(m.active) == 0
}

// CancelAll poisons every active token and drops them. In-flight term loads
// for dropped tokens resolve into a buffered channel nobody reads.
func (m *TransitionMachine) CancelAll() {
	for _, at := range m.active {
		at.token.cancelled = true
	}
	m.active = m.active[:0]
}

// Select starts a transition to the given node, cancelling all in-flight
// transitions first. The camera destination is captured from the node's
// world position at call time; later scene rotation does not retarget a
// translation already in flight.
func (m *TransitionMachine) Select(node *Node) *TransitionToken {
	m.CancelAll()

	token := &TransitionToken{targetID: node.ID, mode: m.Mode}
	at := &activeTransition{token: token, target: node}

	cam := m.scene.camera
	dest := node.WorldPosition(m.scene.orientation).Sub(cam.Forward().Scale(m.Standoff))
	at.translate = newCameraTween(cam.Position, dest, m.TranslateDuration)

	if m.loader != nil {
		at.loadCh = make(chan loadResult, 1)
		at.loadPending = true
		go func(id string, ch chan<- loadResult) {
			rec, err := m.loader.LoadTermByID(context.Background(), id)
			ch <- loadResult{record: rec, err: err}
		}(node.ID, at.loadCh)
	}

	m.active = append(m.active, at)
	m.scene.setFocus(node)
	return token
}

// Tick advances every active transition by one frame. Runs after the
// rotation/inertia tick and before rendering.
func (m *TransitionMachine) Tick(dt float32) {
	remaining := m.active[:0]
	for _, at := range m.active {
		if m.step(at, dt) {
			remaining = append(remaining, at)
		}
	}
	m.active = remaining
}

// step advances one transition by one frame. Returns false when the
// transition is finished or poisoned and should be discarded.
func (m *TransitionMachine) step(at *activeTransition, dt float32) bool {
	// Poisoned tokens stop mutating on their very next scheduled step.
	if at.token.cancelled {
		return false
	}

	if !at.translateDone {
		at.translateDone = at.translate.update(&m.scene.camera.Position, dt)
	}

	if at.loadPending {
		select {
		case res := <-at.loadCh:
			at.loadPending = false
			at.record, at.loadErr = res.record, res.err
			if at.loadErr != nil {
				// The transition settles back to idle below; the partial
				// camera translate stays applied.
				m.logger.Error("neighborhood load failed",
					"term", at.token.targetID, "error", at.loadErr)
			}
		default:
		}
	}

	if at.expand == nil && at.record != nil && at.loadErr == nil {
		// Serial mode holds the expansion until the translate has fully
		// finished; parallel starts it the moment the record is in.
		if at.token.mode == TransitionParallel || at.translateDone {
			at.expand = m.scene.beginExpansion(at.record, at.target, m.ExpandDuration)
		}
	}

	if at.expand != nil && !at.expandDone {
		at.expandDone = at.expand.update(dt)
		if at.expandDone {
			at.expand.finish()
		}
	}

	if !at.translateDone || at.loadPending {
		return true
	}
	if at.loadErr != nil || at.record == nil {
		// Load failed, or no loader configured: nothing to expand.
		return false
	}
	return !at.expandDone
}

package lexisphere

import "github.com/hajimehoshi/ebiten/v2"

// Node is a single term sprite: a screen-facing billboard labeled with a
// lexical term, positioned in the scene's layout space. A flat struct is
// used for all nodes to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID           string // term record id; stable across sessions
	Term         string // display text
	PartOfSpeech string
	Definition   string

	// LocalPos is the node's position in layout space, before the scene
	// orientation is applied. Written by the graph builder and layout only.
	LocalPos Vector3

	// HitRadius is the billboard's pick radius in world units.
	HitRadius float64

	// Tinting. Color is the current tint (written by the hover highlighter);
	// BaseColor is what the hover highlighter restores on leave.
	Color     Color
	BaseColor Color

	// Animation state, written by the transition machine's expansion
	// timeline. Alpha fades the label; Scale grows it into place.
	Alpha float64
	Scale float64

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// order is the insertion index into the scene's node set, used as the
	// deterministic tie-break for coincident pick hits.
	order int

	// label is the rasterized term text, built lazily on first draw.
	label      *ebiten.Image
	labelDirty bool

	disposed bool
}

// NewNode creates a visible, interactable node for the given term.
func NewNode(id, term string) *Node {
	return &Node{
		ID:           id,
		Term:         term,
		HitRadius:    defaultHitRadius,
		Color:        ColorWhite,
		BaseColor:    ColorWhite,
		Alpha:        1,
		Scale:        1,
		Visible:      true,
		Interactable: true,
		labelDirty:   true,
	}
}

// defaultHitRadius is half the typical label width in world units. Sprites
// are picked against a sphere of this radius (times the scene's hit
// tolerance) rather than exact geometry, so small labels stay clickable.
const defaultHitRadius = 6.0

// SetTerm changes the display text and invalidates the cached label image.
func (n *Node) SetTerm(term string) {
	if n.Term == term {
		return
	}
	n.Term = term
	n.labelDirty = true
}

// WorldPosition returns the node's position after the given scene
// orientation is applied to its layout position.
func (n *Node) WorldPosition(orientation Quaternion) Vector3 {
	return orientation.RotateVector(n.LocalPos)
}

// Pickable reports whether the node participates in ray tests this frame.
func (n *Node) Pickable() bool {
	return !n.disposed && n.Visible && n.Interactable && n.Alpha > 0
}

// Dispose marks the node as dead and releases its label image. Disposed
// nodes are skipped by picking and rendering and removed from the scene at
// the end of the frame.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	if n.label != nil {
		n.label.Deallocate()
		n.label = nil
	}
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

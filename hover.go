package lexisphere

// hoverHighlighter re-tints the node currently under the pointer and
// restores the previous one. It holds a weak reference (identity only, no
// ownership) to at most one node, and is the only writer of node tint
// colors outside of setup code.
type hoverHighlighter struct {
	hovered   *Node
	highlight Color
}

// update applies the hover tint change for this frame's ray hit. A nil hit
// restores the last-hovered node and clears the reference. No-op when the
// hit node is unchanged. Runs on every pointer move, including mid-drag, so
// hover feedback never freezes during a drag.
func (h *hoverHighlighter) update(hit *Node) {
	if hit == h.hovered {
		return
	}
	if h.hovered != nil && !h.hovered.IsDisposed() {
		h.hovered.Color = h.hovered.BaseColor
	}
	if hit != nil {
		hit.Color = h.highlight
	}
	h.hovered = hit
}

// drop clears the hover reference without touching tints. Called when the
// hovered node is disposed out from under the highlighter.
func (h *hoverHighlighter) drop() {
	h.hovered = nil
}

// Hovered returns the node currently under the pointer, or nil.
func (s *Scene) Hovered() *Node {
	return s.hover.hovered
}

// SetHighlightColor sets the tint applied to the hovered node.
func (s *Scene) SetHighlightColor(c Color) {
	s.hover.highlight = c
}

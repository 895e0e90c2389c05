package lexisphere

import (
	"testing"
)

func addNodeAt(s *Scene, id string, pos Vector3) *Node {
	n := NewNode(id, id)
	n.LocalPos = pos
	s.AddNode(n)
	return n
}

func TestPickHitsNodeUnderCursor(t *testing.T) {
	s := newTestScene()
	n := addNodeAt(s, "a", Vector3{})

	hit := s.PickAtScreen(400, 300)
	if hit == nil {
		t.Fatal("expected a hit at screen center")
	}
	if hit.Node != n {
		t.Errorf("hit %v, want node a", hit.Node.ID)
	}
	// Entry point is on the near side of the pick sphere.
	if hit.Distance() <= 0 || hit.Distance() >= defaultCameraDistance {
		t.Errorf("implausible hit distance %v", hit.Distance())
	}
}

func TestPickMissReturnsNil(t *testing.T) {
	s := newTestScene()
	addNodeAt(s, "a", Vector3{})

	if hit := s.PickAtScreen(10, 10); hit != nil {
		t.Errorf("expected a miss at the screen corner, hit %v", hit.Node.ID)
	}
}

func TestPickNearestWins(t *testing.T) {
	s := newTestScene()
	far := addNodeAt(s, "far", Vector3{0, 0, -50})
	near := addNodeAt(s, "near", Vector3{0, 0, 50})
	_ = far

	hit := s.PickAtScreen(400, 300)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.Node != near {
		t.Errorf("hit %v, want the nearer node", hit.Node.ID)
	}
}

func TestPickTieBreaksByInsertionOrder(t *testing.T) {
	s := newTestScene()
	first := addNodeAt(s, "first", Vector3{})
	addNodeAt(s, "second", Vector3{})

	hit := s.PickAtScreen(400, 300)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.Node != first {
		t.Errorf("coincident hit resolved to %v, want the first inserted", hit.Node.ID)
	}
}

func TestPickRespectsOrientation(t *testing.T) {
	s := newTestScene()
	// Node off to the right; after a half turn about Y it sits on the left.
	n := addNodeAt(s, "a", Vector3{80, 0, 0})

	sx, sy, _, ok := s.Camera().WorldToScreen(n.WorldPosition(s.Orientation()))
	if !ok {
		t.Fatal("node should project")
	}
	if hit := s.PickAtScreen(sx, sy); hit == nil || hit.Node != n {
		t.Fatal("expected hit at projected position before rotation")
	}

	s.SetOrientation(QuaternionFromAxisAngle(VecUp, 3.14159265))
	if hit := s.PickAtScreen(sx, sy); hit != nil {
		t.Error("node should have rotated away from the old position")
	}
	sx2, _, _, _ := s.Camera().WorldToScreen(n.WorldPosition(s.Orientation()))
	if sx2 >= 400 {
		t.Errorf("rotated node projects at x=%v, want left of center", sx2)
	}
}

func TestPickSkipsUnpickable(t *testing.T) {
	s := newTestScene()

	tests := []struct {
		name  string
		prep  func(n *Node)
		wantN bool
	}{
		{"visible and interactable", func(n *Node) {}, true},
		{"invisible", func(n *Node) { n.Visible = false }, false},
		{"not interactable", func(n *Node) { n.Interactable = false }, false},
		{"fully faded", func(n *Node) { n.Alpha = 0 }, false},
		{"disposed", func(n *Node) { n.Dispose() }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene()
			n := addNodeAt(s, "a", Vector3{})
			tt.prep(n)
			hit := s.PickAtScreen(400, 300)
			if got := hit != nil; got != tt.wantN {
				t.Errorf("pickable = %v, want %v", got, tt.wantN)
			}
		})
	}
	_ = s
}

func TestHitToleranceWidensSphere(t *testing.T) {
	s := newTestScene()
	addNodeAt(s, "a", Vector3{})

	// A point that misses the exact radius but lands inside the widened
	// sphere. At depth 220 one world unit is ~2.36px, so the exact 6-unit
	// radius covers ~14px and the default 1.5 tolerance ~21px.
	s.SetHitTolerance(1.0)
	if hit := s.PickAtScreen(400+18, 300); hit != nil {
		t.Fatal("18px off-center should miss at tolerance 1.0")
	}
	s.SetHitTolerance(1.5)
	if hit := s.PickAtScreen(400+18, 300); hit == nil {
		t.Fatal("18px off-center should hit at tolerance 1.5")
	}
}

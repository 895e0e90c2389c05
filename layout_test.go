package lexisphere

import (
	"math"
	"testing"
)

func starEdges(n int) [][2]int {
	edges := make([][2]int, n-1)
	for i := 1; i < n; i++ {
		edges[i-1] = [2]int{0, i}
	}
	return edges
}

func TestSpringLayoutDeterministic(t *testing.T) {
	a := SpringLayout3D(8, starEdges(8), 100, 42)
	b := SpringLayout3D(8, starEdges(8), 100, 42)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d moved between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSpringLayoutSeedChangesResult(t *testing.T) {
	a := SpringLayout3D(8, starEdges(8), 100, 42)
	b := SpringLayout3D(8, starEdges(8), 100, 43)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical layout")
	}
}

func TestSpringLayoutFitsScale(t *testing.T) {
	pos := SpringLayout3D(12, starEdges(12), 100, 42)
	for i, p := range pos {
		if r := p.Magnitude(); r > 100+1e-9 {
			t.Errorf("node %d at radius %v exceeds scale", i, r)
		}
	}
}

func TestSpringLayoutSpreadsNodes(t *testing.T) {
	pos := SpringLayout3D(6, starEdges(6), 100, 42)
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			if d := pos[i].DistanceTo(pos[j]); d < 1 {
				t.Errorf("nodes %d and %d nearly coincide (distance %v)", i, j, d)
			}
		}
	}
}

func TestSpringLayoutUsesAllThreeDimensions(t *testing.T) {
	pos := SpringLayout3D(10, starEdges(10), 100, 42)
	var spreadX, spreadY, spreadZ float64
	for _, p := range pos {
		spreadX = math.Max(spreadX, math.Abs(p.X))
		spreadY = math.Max(spreadY, math.Abs(p.Y))
		spreadZ = math.Max(spreadZ, math.Abs(p.Z))
	}
	if spreadX < 1 || spreadY < 1 || spreadZ < 1 {
		t.Errorf("layout is degenerate: spreads %v %v %v", spreadX, spreadY, spreadZ)
	}
}

func TestSpringLayoutEdgeCases(t *testing.T) {
	if got := SpringLayout3D(0, nil, 100, 42); len(got) != 0 {
		t.Error("empty graph should produce no positions")
	}
	if got := SpringLayout3D(1, nil, 100, 42); len(got) != 1 || !got[0].IsZero() {
		t.Error("single node should sit at the origin")
	}
}

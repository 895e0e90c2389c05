package lexisphere

import (
	"math"
	"math/rand"
)

// layoutSeed fixes the force layout's random initialization so a given
// graph always lays out the same way across sessions.
const layoutSeed = 42

// layoutIterations balances layout quality against startup cost for the
// neighborhood sizes a thesaurus entry produces (tens of nodes).
const layoutIterations = 50

// SpringLayout3D computes a force-directed 3D layout for a graph of n
// nodes and the given edges (pairs of node indices). It is a
// Fruchterman-Reingold spring embedder: all node pairs repel, edges
// attract, and a cooling temperature caps per-iteration movement. The
// result is scaled so the layout fits within a sphere of radius scale.
// Deterministic for a fixed seed.
func SpringLayout3D(n int, edges [][2]int, scale float64, seed int64) []Vector3 {
	pos := make([]Vector3, n)
	if n == 0 {
		return pos
	}
	if n == 1 {
		return pos // single node sits at the origin
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range pos {
		pos[i] = Vector3{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
	}

	// Optimal pairwise distance for a unit-volume layout.
	k := math.Cbrt(1.0 / float64(n))
	temp := 0.1
	cool := temp / float64(layoutIterations+1)

	disp := make([]Vector3, n)

	for iter := 0; iter < layoutIterations; iter++ {
		for i := range disp {
			disp[i] = Vector3{}
		}

		// Repulsion between every pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := pos[i].Sub(pos[j])
				dist := delta.Magnitude()
				if dist < 1e-9 {
					dist = 1e-9
					delta = Vector3{X: 1e-9}
				}
				force := k * k / dist
				push := delta.Scale(force / dist)
				disp[i] = disp[i].Add(push)
				disp[j] = disp[j].Sub(push)
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			a, b := e[0], e[1]
			if a < 0 || b < 0 || a >= n || b >= n {
				continue
			}
			delta := pos[a].Sub(pos[b])
			dist := delta.Magnitude()
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			pull := delta.Scale(force / dist)
			disp[a] = disp[a].Sub(pull)
			disp[b] = disp[b].Add(pull)
		}

		// Apply displacement, capped by the current temperature.
		for i := 0; i < n; i++ {
			d := disp[i]
			mag := d.Magnitude()
			if mag > temp {
				d = d.Scale(temp / mag)
			}
			pos[i] = pos[i].Add(d)
		}
		temp -= cool
	}

	// Rescale so the farthest node sits at radius scale.
	var maxDist float64
	for _, p := range pos {
		if m := p.Magnitude(); m > maxDist {
			maxDist = m
		}
	}
	if maxDist > 0 {
		f := scale / maxDist
		for i := range pos {
			pos[i] = pos[i].Scale(f)
		}
	}
	return pos
}

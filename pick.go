package lexisphere

import "math"

// defaultHitTolerance widens each sprite's pick sphere so small labels are
// easier to hit. 1.0 means exact radius.
const defaultHitTolerance = 1.5

// RayHit is the result of a pick test.
type RayHit struct {
	// Node is the struck node.
	Node *Node
	// Position is the world-space point where the ray entered the node's
	// pick sphere.
	Position Vector3

	distance float64
}

// Distance returns the distance from the ray origin to the struck position.
func (h RayHit) Distance() float64 {
	return h.distance
}

// raySphereTest intersects a ray with a sphere and returns the entry point.
// Rays starting inside the sphere hit at their origin.
func raySphereTest(ray Ray, center Vector3, radius, maxDist float64) (Vector3, float64, bool) {
	m := ray.Origin.Sub(center)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - radius*radius

	// Origin outside and pointing away: no hit.
	if c > 0 && b > 0 {
		return Vector3{}, 0, false
	}

	discr := b*b - c
	if discr < 0 {
		return Vector3{}, 0, false
	}

	t := -b - math.Sqrt(discr)
	if t < 0 {
		t = 0
	}
	if t > maxDist {
		return Vector3{}, 0, false
	}

	return ray.Origin.Add(ray.Direction.Scale(t)), t, true
}

// RayPick casts a ray against the pickable nodes and returns the nearest
// hit, or nil if the ray misses everything (a miss is a valid empty result,
// not an error). Nodes are tested as spheres of HitRadius * Scale *
// tolerance around their oriented world positions. For coincident
// intersections the node nearest the ray origin wins; exact ties resolve to
// the node inserted into the scene first. RayPick has no side effects.
func RayPick(ray Ray, orientation Quaternion, nodes []*Node, tolerance, maxDist float64) *RayHit {
	var best *RayHit
	bestOrder := 0

	for _, n := range nodes {
		if !n.Pickable() {
			continue
		}
		center := n.WorldPosition(orientation)
		radius := n.HitRadius * n.Scale * tolerance
		if radius <= 0 {
			continue
		}
		pos, dist, ok := raySphereTest(ray, center, radius, maxDist)
		if !ok {
			continue
		}
		if best == nil || dist < best.distance || (dist == best.distance && n.order < bestOrder) {
			best = &RayHit{Node: n, Position: pos, distance: dist}
			bestOrder = n.order
		}
	}

	return best
}

// PickAt casts a ray from the camera through the given normalized device
// coordinate against the scene's node set.
func (s *Scene) PickAt(ndc Vec2) *RayHit {
	ray := s.camera.RayThrough(ndc)
	return RayPick(ray, s.orientation, s.nodes, s.hitTolerance, s.camera.Far)
}

// PickAtScreen is PickAt for raw pixel coordinates.
func (s *Scene) PickAtScreen(sx, sy float64) *RayHit {
	return s.PickAt(s.camera.ScreenToNDC(sx, sy))
}

// SetHitTolerance sets the multiplier applied to every node's pick radius.
func (s *Scene) SetHitTolerance(tolerance float64) {
	s.hitTolerance = tolerance
}

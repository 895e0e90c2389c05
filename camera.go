package lexisphere

import "math"

// Ray is a world-space half-line with a unit direction.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// Camera is a perspective camera. The viewer rotates the scene's orientation
// rather than the camera, so the camera's own orientation is usually
// identity (looking down -Z); transitions translate Position toward the
// focused node.
type Camera struct {
	// Position is the camera's world-space position. Written only by the
	// transition machine (and by callers during setup).
	Position Vector3
	// Orientation rotates the camera's local basis into world space.
	Orientation Quaternion

	// FOV is the vertical field of view in radians.
	FOV float64
	// Near and Far bound the view range in world units.
	Near, Far float64

	width, height float64
}

// NewCamera creates a perspective camera rendering to a viewport of the given
// pixel size, with a 60 degree vertical field of view.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Orientation: QuaternionIdentity(),
		FOV:         math.Pi / 3,
		Near:        0.1,
		Far:         2000,
		width:       float64(width),
		height:      float64(height),
	}
}

// Resize updates the viewport size used for aspect ratio and screen mapping.
func (c *Camera) Resize(width, height int) {
	c.width = float64(width)
	c.height = float64(height)
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (width, height int) {
	return int(c.width), int(c.height)
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float64 {
	if c.height == 0 {
		return 1
	}
	return c.width / c.height
}

// Forward returns the camera's forward axis in world space (-Z rotated by
// the camera orientation).
func (c *Camera) Forward() Vector3 {
	return c.Orientation.RotateVector(Vector3{0, 0, -1})
}

// Right returns the camera's right axis in world space.
func (c *Camera) Right() Vector3 {
	return c.Orientation.RotateVector(VecRight)
}

// Up returns the camera's up axis in world space.
func (c *Camera) Up() Vector3 {
	return c.Orientation.RotateVector(VecUp)
}

// ScreenToNDC converts pixel coordinates (origin top-left, +Y down) to
// normalized device coordinates in [-1, 1] on both axes with +Y up.
func (c *Camera) ScreenToNDC(sx, sy float64) Vec2 {
	if c.width == 0 || c.height == 0 {
		return Vec2{}
	}
	return Vec2{
		X: sx/c.width*2 - 1,
		Y: 1 - sy/c.height*2,
	}
}

// RayThrough returns the world-space ray from the camera position through
// the given normalized device coordinate.
func (c *Camera) RayThrough(ndc Vec2) Ray {
	halfH := math.Tan(c.FOV / 2)
	halfW := halfH * c.AspectRatio()

	dir := c.Forward().
		Add(c.Right().Scale(ndc.X * halfW)).
		Add(c.Up().Scale(ndc.Y * halfH)).
		Unit()

	return Ray{Origin: c.Position, Direction: dir}
}

// WorldToScreen projects a world-space point to pixel coordinates. The third
// return value is the depth of the point along the camera's forward axis in
// world units; points at or behind the near plane report visible == false.
func (c *Camera) WorldToScreen(point Vector3) (sx, sy, depth float64, visible bool) {
	rel := point.Sub(c.Position)
	z := rel.Dot(c.Forward())
	if z <= c.Near {
		return 0, 0, z, false
	}

	x := rel.Dot(c.Right())
	y := rel.Dot(c.Up())

	halfH := math.Tan(c.FOV/2) * z
	halfW := halfH * c.AspectRatio()

	ndcX := x / halfW
	ndcY := y / halfH

	sx = (ndcX + 1) / 2 * c.width
	sy = (1 - ndcY) / 2 * c.height
	return sx, sy, z, z <= c.Far
}

// PerspectiveScale returns the on-screen scale factor for an object at the
// given depth: pixels per world unit.
func (c *Camera) PerspectiveScale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.height / (2 * math.Tan(c.FOV/2) * depth)
}

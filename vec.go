package lexisphere

import "math"

// Vec2 is a 2D vector used for screen positions and deltas.
type Vec2 struct {
	X, Y float64
}

// Vector3 is a 3D vector used for positions, directions, and the angular
// velocity of the rotation controller. All methods return copies, so calls
// can be chained without mutating the receiver.
type Vector3 struct {
	X, Y, Z float64
}

// Unit vectors for the right-handed coordinate system (+X right, +Y up,
// +Z toward the viewer).
var (
	VecRight = Vector3{1, 0, 0}
	VecUp    = Vector3{0, 1, 0}
	VecBack  = Vector3{0, 0, 1}
)

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

// Scale returns v multiplied by the scalar s.
func (v Vector3) Scale(s float64) Vector3 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of v and other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// MagnitudeSquared returns the squared length of the vector. Cheaper than
// Magnitude when only comparing distances.
func (v Vector3) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Unit returns the normalized vector. A zero vector is returned unchanged.
func (v Vector3) Unit() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Scale(1 / m)
}

// DistanceTo returns the distance between v and other.
func (v Vector3) DistanceTo(other Vector3) float64 {
	return other.Sub(v).Magnitude()
}

// DistanceSquaredTo returns the squared distance between v and other.
func (v Vector3) DistanceSquaredTo(other Vector3) float64 {
	return other.Sub(v).MagnitudeSquared()
}

// Lerp linearly interpolates from v to other by t in [0, 1].
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return v.Add(other.Sub(v).Scale(t))
}

// IsZero reports whether all components are exactly zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

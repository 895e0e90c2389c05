package lexisphere

import "math"

// Quaternion represents a rotation. The identity quaternion is {0, 0, 0, 1}.
// Like Vector3, all methods return copies.
type Quaternion struct {
	X, Y, Z, W float64
}

// QuaternionIdentity returns the identity (no rotation) quaternion.
func QuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// QuaternionFromAxisAngle builds a quaternion rotating angle radians about
// the given axis. The axis does not need to be normalized.
func QuaternionFromAxisAngle(axis Vector3, angle float64) Quaternion {
	axis = axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(angle / 2),
	}
}

// Mul returns the Hamilton product q * other: the rotation other followed
// by the rotation q. Pre-multiplying a world-space increment onto a scene
// orientation is therefore increment.Mul(orientation).
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Dot returns the 4D dot product of q and other.
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Magnitude returns the 4D length of the quaternion.
func (q Quaternion) Magnitude() float64 {
	return math.Sqrt(q.Dot(q))
}

// Unit returns the normalized quaternion. Degenerate zero quaternions
// normalize to the identity.
func (q Quaternion) Unit() Quaternion {
	m := q.Magnitude()
	if m == 0 {
		return QuaternionIdentity()
	}
	return Quaternion{q.X / m, q.Y / m, q.Z / m, q.W / m}
}

// Conjugate returns the conjugate of q, which for a unit quaternion is its
// inverse rotation.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// RotateVector rotates vec by q.
func (q Quaternion) RotateVector(vec Vector3) Vector3 {
	// v' = v + 2q_v x (q_v x v + w*v)
	qv := Vector3{q.X, q.Y, q.Z}
	t := qv.Cross(vec).Scale(2)
	return vec.Add(t.Scale(q.W)).Add(qv.Cross(t))
}

// ToAxisAngle decomposes q into a rotation axis and an angle in radians.
// The angle returned is in [0, pi]; the axis flips sign to compensate.
// ok is false when the rotation angle is too close to zero for the axis to
// be well defined (the sine denominator degenerates); callers must not use
// the returned axis in that case.
func (q Quaternion) ToAxisAngle() (axis Vector3, angle float64, ok bool) {
	q = q.Unit()
	w := q.W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	angle = 2 * math.Acos(w)
	if angle > math.Pi {
		angle = 2*math.Pi - angle
		q = q.Conjugate()
	}
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return Vector3{}, angle, false
	}
	return Vector3{q.X / s, q.Y / s, q.Z / s}, angle, true
}

// Slerp spherically interpolates from q to other by t in [0, 1], taking the
// shortest arc.
func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return other
	}

	cos := q.Dot(other)
	if cos < 0 {
		other = Quaternion{-other.X, -other.Y, -other.Z, -other.W}
		cos = -cos
	}
	if cos >= 1 {
		return q
	}

	sinHalfTheta := math.Sqrt(1 - cos*cos)
	if sinHalfTheta < 1e-9 {
		// Nearly identical orientations: fall back to nlerp.
		return Quaternion{
			X: q.X + (other.X-q.X)*t,
			Y: q.Y + (other.Y-q.Y)*t,
			Z: q.Z + (other.Z-q.Z)*t,
			W: q.W + (other.W-q.W)*t,
		}.Unit()
	}

	halfTheta := math.Atan2(sinHalfTheta, cos)
	ratioA := math.Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(t*halfTheta) / sinHalfTheta

	return Quaternion{
		X: q.X*ratioA + other.X*ratioB,
		Y: q.Y*ratioA + other.Y*ratioB,
		Z: q.Z*ratioA + other.Z*ratioB,
		W: q.W*ratioA + other.W*ratioB,
	}
}

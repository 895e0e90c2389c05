package lexisphere

// Rotation/inertia defaults. DragSensitivity is radians of scene rotation
// per pixel of pointer travel.
const (
	defaultDragSensitivity = 0.005
	defaultInertiaDecay    = 0.95
	defaultVelocityEpsilon = 1e-4

	// degenerateAngle is the incremental rotation below which no axis can be
	// derived (the sine denominator collapses); such frames skip the
	// velocity update entirely.
	degenerateAngle = 1e-8
)

// RotationController converts per-frame drag deltas into incremental
// world-space rotations of the scene orientation, and carries the resulting
// angular velocity through a geometric decay once the drag is released.
//
// It is the only writer of both the scene orientation (outside transitions)
// and the angular velocity vector. The velocity is axis-angle encoded:
// direction is the rotation axis, magnitude is radians per frame.
type RotationController struct {
	scene *Scene

	// DragSensitivity scales pixels of pointer travel to radians.
	DragSensitivity float64
	// Decay is the per-frame multiplicative inertia falloff, in (0, 1).
	Decay float64
	// Epsilon is the velocity magnitude at or below which inertia is
	// considered stopped and the residual velocity is left untouched.
	Epsilon float64
	// InvertX and InvertY flip the rotation direction for each drag axis.
	InvertX, InvertY bool

	velocity Vector3
}

func newRotationController(scene *Scene) *RotationController {
	return &RotationController{
		scene:           scene,
		DragSensitivity: defaultDragSensitivity,
		Decay:           defaultInertiaDecay,
		Epsilon:         defaultVelocityEpsilon,
	}
}

// Velocity returns the current angular velocity (axis-angle encoded,
// radians per frame).
func (r *RotationController) Velocity() Vector3 {
	return r.velocity
}

// ResetVelocity zeroes the angular velocity. Called on pointer-down so a new
// drag starts clean, with no residual inertia underneath it.
func (r *RotationController) ResetVelocity() {
	r.velocity = Vector3{}
}

// Drag applies one frame's pointer delta (in pixels) as an incremental
// rotation of the scene orientation, and stores the increment's axis-angle
// form as the new angular velocity so inertia continues in the direction
// the drag was moving at release.
//
// Yaw is taken about the camera's up axis proportional to dx; pitch about
// the camera's right axis proportional to dy. The composed increment is
// pre-multiplied onto the orientation, i.e. applied in world space.
func (r *RotationController) Drag(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}

	cam := r.scene.camera
	yawAngle := dx * r.DragSensitivity
	pitchAngle := dy * r.DragSensitivity
	if r.InvertX {
		yawAngle = -yawAngle
	}
	if r.InvertY {
		pitchAngle = -pitchAngle
	}

	yaw := QuaternionFromAxisAngle(cam.Up(), yawAngle)
	pitch := QuaternionFromAxisAngle(cam.Right(), pitchAngle)

	// Yaw first, then pitch.
	incr := pitch.Mul(yaw)
	r.scene.orientation = incr.Mul(r.scene.orientation).Unit()

	// Near-zero increments have no well-defined axis; keep the previous
	// velocity rather than storing a degenerate one.
	if axis, angle, ok := incr.ToAxisAngle(); ok && angle > degenerateAngle {
		r.velocity = axis.Scale(angle)
	}
}

// Tick advances inertia for one non-dragging frame: rotate the scene by the
// current velocity, then decay it. Once the magnitude falls at or below
// Epsilon the residual velocity is frozen until the next drag resets it.
// While dragging, Tick is a no-op (Drag owns the orientation writes).
func (r *RotationController) Tick(dragging bool) {
	if dragging {
		return
	}

	mag := r.velocity.Magnitude()
	if mag <= r.Epsilon {
		return
	}

	incr := QuaternionFromAxisAngle(r.velocity, mag)
	r.scene.orientation = incr.Mul(r.scene.orientation).Unit()
	r.velocity = r.velocity.Scale(r.Decay)
}

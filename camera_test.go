package lexisphere

import (
	"math"
	"testing"
)

func TestWorldToScreenCenter(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = Vector3{0, 0, 200}

	sx, sy, depth, visible := cam.WorldToScreen(Vector3{})
	if !visible {
		t.Fatal("origin in front of the camera should be visible")
	}
	if math.Abs(sx-400) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Errorf("projected to (%v, %v), want viewport center (400, 300)", sx, sy)
	}
	if math.Abs(depth-200) > 1e-9 {
		t.Errorf("depth = %v, want 200", depth)
	}
}

func TestWorldToScreenOffsets(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = Vector3{0, 0, 200}

	// +X moves right on screen, +Y moves up (screen Y decreases).
	rx, _, _, _ := cam.WorldToScreen(Vector3{30, 0, 0})
	if rx <= 400 {
		t.Errorf("point at +X projected to sx=%v, want > 400", rx)
	}
	_, uy, _, _ := cam.WorldToScreen(Vector3{0, 30, 0})
	if uy >= 300 {
		t.Errorf("point at +Y projected to sy=%v, want < 300", uy)
	}

	// Symmetric offsets project symmetrically about the center.
	lx, _, _, _ := cam.WorldToScreen(Vector3{-30, 0, 0})
	if math.Abs((rx-400)-(400-lx)) > 1e-9 {
		t.Errorf("asymmetric projection: +X at %v, -X at %v", rx, lx)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = Vector3{0, 0, 200}

	if _, _, _, visible := cam.WorldToScreen(Vector3{0, 0, 500}); visible {
		t.Error("point behind the camera must not be visible")
	}
	if _, _, _, visible := cam.WorldToScreen(Vector3{0, 0, 200}); visible {
		t.Error("point at the camera position must not be visible")
	}
	if _, _, _, visible := cam.WorldToScreen(Vector3{0, 0, -3000}); visible {
		t.Error("point past the far plane must not be visible")
	}
}

func TestScreenRayRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = Vector3{0, 0, 200}

	// Project a world point, then cast a ray back through the resulting
	// pixel: the ray should pass within a hair of the original point.
	points := []Vector3{
		{0, 0, 0},
		{25, -40, 10},
		{-60, 12, -35},
	}
	for _, p := range points {
		sx, sy, _, visible := cam.WorldToScreen(p)
		if !visible {
			t.Fatalf("point %v unexpectedly invisible", p)
		}
		ray := cam.RayThrough(cam.ScreenToNDC(sx, sy))
		toPoint := p.Sub(ray.Origin)
		along := toPoint.Dot(ray.Direction)
		closest := ray.Origin.Add(ray.Direction.Scale(along))
		if dist := closest.DistanceTo(p); dist > 1e-6 {
			t.Errorf("ray misses %v by %v", p, dist)
		}
	}
}

func TestPerspectiveScale(t *testing.T) {
	cam := NewCamera(800, 600)

	near := cam.PerspectiveScale(100)
	far := cam.PerspectiveScale(200)
	if math.Abs(near-2*far) > 1e-9 {
		t.Errorf("doubling depth should halve the scale: %v vs %v", near, far)
	}
	if cam.PerspectiveScale(0) != 0 {
		t.Error("non-positive depth should scale to zero")
	}
}

func TestCameraResize(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Position = Vector3{0, 0, 200}
	cam.Resize(400, 400)

	if w, h := cam.Size(); w != 400 || h != 400 {
		t.Fatalf("Size() = %dx%d after resize", w, h)
	}
	sx, sy, _, _ := cam.WorldToScreen(Vector3{})
	if math.Abs(sx-200) > 1e-9 || math.Abs(sy-200) > 1e-9 {
		t.Errorf("center projected to (%v, %v) after resize, want (200, 200)", sx, sy)
	}
}

func TestCameraBasisUnderRotation(t *testing.T) {
	cam := NewCamera(800, 600)
	// Quarter turn about +Y: forward -Z becomes -X.
	cam.Orientation = QuaternionFromAxisAngle(VecUp, math.Pi/2)

	if !vecClose(cam.Forward(), Vector3{-1, 0, 0}, 1e-9) {
		t.Errorf("Forward() = %v, want -X", cam.Forward())
	}
	if !vecClose(cam.Right(), Vector3{0, 0, -1}, 1e-9) {
		t.Errorf("Right() = %v, want -Z", cam.Right())
	}
	if !vecClose(cam.Up(), VecUp, 1e-9) {
		t.Errorf("Up() = %v, want +Y", cam.Up())
	}
}

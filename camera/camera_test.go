package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCameraPositionDistance(t *testing.T) {
	cam := New(10)

	pos := cam.Position()
	if d := r3.Norm(r3.Sub(pos, cam.Target)); math.Abs(d-cam.Distance) > 1e-9 {
		t.Errorf("expected distance %f, got %f", cam.Distance, d)
	}

	cam.Rotate(1.3, -0.4)
	pos = cam.Position()
	if d := r3.Norm(r3.Sub(pos, cam.Target)); math.Abs(d-cam.Distance) > 1e-9 {
		t.Errorf("rotation changed distance: %f vs %f", d, cam.Distance)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	cam := New(10)

	cam.Rotate(0, 10)
	if cam.Pitch >= math.Pi/2 {
		t.Errorf("pitch not clamped below the pole: %f", cam.Pitch)
	}
	cam.Rotate(0, -20)
	if cam.Pitch <= -math.Pi/2 {
		t.Errorf("pitch not clamped above the pole: %f", cam.Pitch)
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := New(10)

	for i := 0; i < 100; i++ {
		cam.Zoom(0.5)
	}
	if cam.Distance < cam.MinDistance {
		t.Errorf("zoom in past minimum: %f < %f", cam.Distance, cam.MinDistance)
	}

	for i := 0; i < 100; i++ {
		cam.Zoom(2)
	}
	if cam.Distance > cam.MaxDistance {
		t.Errorf("zoom out past maximum: %f > %f", cam.Distance, cam.MaxDistance)
	}
}

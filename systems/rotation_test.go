package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const rotTol = 1e-9

func vecsClose(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) < tol
}

func TestRotationBetween(t *testing.T) {
	cases := []struct{ a, b r3.Vec }{
		{r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{r3.Vec{Y: 1}, r3.Vec{Z: 1}},
		{r3.Vec{X: 1}, r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1})},
	}
	for _, c := range cases {
		q := RotationBetween(c.a, c.b)
		if got := RotateVec(q, c.a); !vecsClose(got, c.b, rotTol) {
			t.Errorf("RotationBetween(%v,%v): rotated to %v", c.a, c.b, got)
		}
	}
}

func TestRotationBetweenDegenerate(t *testing.T) {
	a := r3.Vec{X: 1}

	// Identical vectors: identity rotation.
	q := RotationBetween(a, a)
	if got := RotateVec(q, a); !vecsClose(got, a, rotTol) {
		t.Errorf("identity case rotated to %v", got)
	}

	// Opposite vectors: any half turn that lands on -a.
	q = RotationBetween(a, r3.Scale(-1, a))
	if got := RotateVec(q, a); !vecsClose(got, r3.Scale(-1, a), 1e-6) {
		t.Errorf("opposite case rotated to %v", got)
	}
}

func TestLookRotationFrames(t *testing.T) {
	for _, dir := range sphereSamples(50) {
		forward := tangentOf(dir)
		q := LookRotation(forward, dir)

		if got := Forward(q); !vecsClose(got, forward, 1e-6) {
			t.Fatalf("dir %v: forward came back as %v, want %v", dir, got, forward)
		}
		if got := Up(q); !vecsClose(got, dir, 1e-6) {
			t.Fatalf("dir %v: up came back as %v", dir, got)
		}
	}
}

// tangentOf returns a deterministic unit tangent for a direction.
func tangentOf(dir r3.Vec) r3.Vec {
	ref := r3.Vec{X: 1}
	if math.Abs(dir.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(dir, ref))
}

func TestSlerpEndpoints(t *testing.T) {
	a := quat.Number{Real: 1}
	b := quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{Y: 1}))

	if got := Slerp(a, b, 0); got != a {
		t.Errorf("t=0: expected a, got %v", got)
	}
	if got := Slerp(a, b, 1); got != b {
		t.Errorf("t=1: expected b, got %v", got)
	}
}

func TestSlerpMidpointUnit(t *testing.T) {
	a := quat.Number{Real: 1}
	b := quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{Y: 1}))

	mid := Slerp(a, b, 0.5)
	if n := quat.Abs(mid); math.Abs(n-1) > 1e-9 {
		t.Errorf("midpoint not unit length: %f", n)
	}

	// Half the rotation: a quarter turn around Y becomes an eighth turn.
	v := RotateVec(mid, r3.Vec{X: 1})
	want := r3.Vec{X: math.Cos(math.Pi / 4), Z: -math.Sin(math.Pi / 4)}
	if !vecsClose(v, want, 1e-9) {
		t.Errorf("midpoint rotated X to %v, want %v", v, want)
	}
}

func TestSlerpNearParallel(t *testing.T) {
	a := quat.Number{Real: 1}
	b := Normalize(quat.Number{Real: 1, Jmag: 1e-4})

	mid := Slerp(a, b, 0.5)
	if n := quat.Abs(mid); math.Abs(n-1) > 1e-9 {
		t.Errorf("near-parallel midpoint not unit length: %f", n)
	}
}

func TestNormalizeZero(t *testing.T) {
	q := Normalize(quat.Number{})
	if q != (quat.Number{Real: 1}) {
		t.Errorf("zero quaternion should normalize to identity, got %v", q)
	}
}

package systems

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reference frame for agent orientations: local up is +Y, forward is +Z.
var (
	refUp      = r3.Vec{Y: 1}
	refForward = r3.Vec{Z: 1}
)

// RotateVec applies a unit quaternion rotation to a vector.
func RotateVec(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// RotationBetween returns a unit quaternion rotating unit vector a onto b.
func RotationBetween(a, b r3.Vec) quat.Number {
	axis := r3.Cross(a, b)
	sin := r3.Norm(axis)
	cos := r3.Dot(a, b)

	if sin < 1e-12 {
		if cos > 0 {
			return quat.Number{Real: 1}
		}
		// Opposite vectors, pick any perpendicular axis for the half turn.
		perp := r3.Cross(a, r3.Vec{X: 1})
		if r3.Norm(perp) < 1e-12 {
			perp = r3.Cross(a, r3.Vec{Y: 1})
		}
		return quat.Number(r3.NewRotation(math.Pi, r3.Unit(perp)))
	}
	return quat.Number(r3.NewRotation(math.Atan2(sin, cos), r3.Scale(1/sin, axis)))
}

// LookRotation builds the orientation whose local up is up and whose local
// forward is forward, both unit and mutually perpendicular. It composes the
// tilt taking the reference up onto up with a twist around up that aligns
// the tilted forward.
func LookRotation(forward, up r3.Vec) quat.Number {
	tilt := RotationBetween(refUp, up)
	f := RotateVec(tilt, refForward)

	twistAngle := math.Atan2(r3.Dot(r3.Cross(f, forward), up), r3.Dot(f, forward))
	twist := quat.Number(r3.NewRotation(twistAngle, up))

	return Normalize(quat.Mul(twist, tilt))
}

// Forward returns the local forward (+Z of the reference frame) of an
// orientation.
func Forward(q quat.Number) r3.Vec {
	return RotateVec(q, refForward)
}

// Up returns the local up (+Y of the reference frame) of an orientation.
func Up(q quat.Number) r3.Vec {
	return RotateVec(q, refUp)
}

// Normalize scales a quaternion to unit length. Zero quaternions return
// identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Slerp interpolates between two unit quaternions along the shortest arc.
func Slerp(a, b quat.Number, t float64) quat.Number {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	if dot < 0 {
		b = quat.Scale(-1, b)
		dot = -dot
	}

	// Near-parallel quaternions fall back to a normalized lerp.
	if dot > 0.9995 {
		return Normalize(quat.Add(quat.Scale(1-t, a), quat.Scale(t, b)))
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return quat.Add(quat.Scale(wa, a), quat.Scale(wb, b))
}

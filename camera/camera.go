// Package camera provides an orbit camera for viewing the planet.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera orbits a target point at a fixed distance, controlled by yaw,
// pitch and zoom. All math is presentation-agnostic; the render layer
// converts Position/Target to its own vector types.
type Camera struct {
	// Target is the orbit center in world coordinates
	Target r3.Vec

	// Yaw is the horizontal orbit angle in radians
	Yaw float64
	// Pitch is the vertical orbit angle in radians, clamped to avoid poles
	Pitch float64
	// Distance from the target
	Distance float64

	// Distance constraints
	MinDistance, MaxDistance float64
}

// maxPitch keeps the camera off the orbit poles where the up vector flips.
const maxPitch = math.Pi/2 - 0.05

// New creates a camera orbiting the origin at a distance scaled from the
// planet radius.
func New(planetRadius float64) *Camera {
	return &Camera{
		Yaw:         0.6,
		Pitch:       0.35,
		Distance:    planetRadius * 3,
		MinDistance: planetRadius * 1.2,
		MaxDistance: planetRadius * 10,
	}
}

// Rotate adjusts yaw and pitch by deltas in radians.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Zoom scales the orbit distance by a factor and clamps it to the
// configured range.
func (c *Camera) Zoom(factor float64) {
	c.Distance *= factor
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Position returns the camera's world position for the current orbit.
func (c *Camera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	offset := r3.Vec{
		X: cp * math.Cos(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Sin(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, offset))
}

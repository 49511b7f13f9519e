// Package components defines the ECS components for replicators.
package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Position is a replicator's location on the planet surface.
type Position struct {
	Point r3.Vec // displaced surface point, radius * (1 + height*magnitude)
}

// Orientation is a replicator's rotation from the reference frame to its
// local tangent frame.
type Orientation struct {
	Rot quat.Number
}

// DeathCause records why a replicator was removed.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
	CauseH2SDepletion
	CauseCO2Depletion
)

func (c DeathCause) String() string {
	switch c {
	case CauseOldAge:
		return "old_age"
	case CauseStarvation:
		return "starvation"
	case CauseH2SDepletion:
		return "h2s_depletion"
	case CauseCO2Depletion:
		return "co2_depletion"
	default:
		return "none"
	}
}

// Vitals holds a replicator's life state.
type Vitals struct {
	Age      float64 // seconds lived
	Lifespan float64 // seconds until old-age death
	Energy   float64
	Size     float64
	Alive    bool
	Cause    DeathCause // set when Alive flips to false
}

// Traits holds a replicator's behavioral gates, inherited by offspring.
type Traits struct {
	SeaOnlySpawn     bool
	SeaOnlyReproduce bool
	SeaOnlyMove      bool
	LandSpeedFactor  float64 // movement speed multiplier off-sea
}

// Motion holds a replicator's wander state.
type Motion struct {
	Seed float64 // per-agent noise offset, children jitter the parent's
	Dir  r3.Vec  // unit direction from planet center, cached between ticks
}

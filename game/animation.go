package game

import "math"

// Animation constants
const (
	SpinRate  = 0.8 // radians per second
	BobRate   = 1.5 // radians per second
	BobHeight = 0.3
)

// Animate computes an agent's transform at absolute time t (seconds since
// the world was built). The agent's level offsets the bob phase so avatars
// do not move in lockstep. Pure in t and level.
func Animate(t float64, level int) Transform {
	return Transform{
		Rotation: normalizeAngle(t * SpinRate),
		Height:   BaseHeight + math.Sin(BobPhase(t, level))*BobHeight,
	}
}

// BobPhase is the argument of the vertical bob at time t
func BobPhase(t float64, level int) float64 {
	return t*BobRate + float64(level)
}

// normalizeAngle wraps an angle into [0, 2π)
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

package physics

import (
	"math"

	"github.com/gazed/vu/math/lin"
	"github.com/mark3labs/agentworld/game/shared"
)

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    shared.Position `json:"origin"`
	Direction shared.Position `json:"direction"`
}

// NewRay creates a ray from origin towards the given direction
func NewRay(origin, direction shared.Position) Ray {
	return Ray{
		Origin:    origin,
		Direction: fromV3(toV3(direction).Unit()),
	}
}

// At returns the point at distance d along the ray
func (r Ray) At(d float64) shared.Position {
	p := lin.NewV3().Scale(toV3(r.Direction), d)
	return fromV3(p.Add(p, toV3(r.Origin)))
}

// intersectSphere returns the distance from the ray origin to the first
// point where the ray enters the sphere. An origin inside the sphere
// reports the exit point.
func (r Ray) intersectSphere(center shared.Position, radius float64) (float64, bool) {
	dir := toV3(r.Direction)

	// Vector from sphere center to ray origin
	oc := lin.NewV3().Sub(toV3(r.Origin), toV3(center))

	// Quadratic coefficients; a is 1 for a unit direction
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	sq := math.Sqrt(discriminant)
	t1 := (-b - sq) / 2
	t2 := (-b + sq) / 2

	switch {
	case t1 >= 0:
		return t1, true
	case t2 >= 0:
		return t2, true
	default:
		// Sphere is behind the ray
		return 0, false
	}
}

func toV3(p shared.Position) *lin.V3 {
	return lin.NewV3S(p.X, p.Y, p.Z)
}

func fromV3(v *lin.V3) shared.Position {
	return shared.Position{X: v.X, Y: v.Y, Z: v.Z}
}

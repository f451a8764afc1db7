package physics

import (
	"errors"
	"math"

	"github.com/gazed/vu/math/lin"
	"github.com/mark3labs/agentworld/game/shared"
)

// Camera is a perspective camera looking from Position at Target.
// FOV is the vertical field of view in degrees.
type Camera struct {
	Position shared.Position `json:"position"`
	Target   shared.Position `json:"target"`
	Up       shared.Position `json:"up"`
	FOV      float64         `json:"fov"`
	Aspect   float64         `json:"aspect"`
	Near     float64         `json:"near"`
	Far      float64         `json:"far"`
}

// DefaultCamera returns the overview camera used by the world page
func DefaultCamera() Camera {
	return Camera{
		Position: shared.Position{X: 0, Y: 18, Z: 22},
		Target:   shared.Position{X: 0, Y: 0, Z: 0},
		Up:       shared.Position{X: 0, Y: 1, Z: 0},
		FOV:      60,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
}

// Validate checks the projection parameters
func (c Camera) Validate() error {
	var errs []error
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, errors.New("camera fov must be in (0, 180) degrees"))
	}
	if c.Aspect <= 0 {
		errs = append(errs, errors.New("camera aspect must be positive"))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, errors.New("camera clip planes must satisfy 0 < near < far"))
	}
	if c.Position == c.Target {
		errs = append(errs, errors.New("camera position and target must differ"))
	}
	return errors.Join(errs...)
}

// Resize updates the aspect ratio for a drawing surface of the given size.
// Degenerate sizes leave the camera unchanged.
func (c *Camera) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// basis returns the camera forward, right and up unit vectors
func (c Camera) basis() (forward, right, up *lin.V3) {
	forward = lin.NewV3().Sub(toV3(c.Target), toV3(c.Position)).Unit()

	worldUp := toV3(c.Up)
	if worldUp.Len() == 0 {
		worldUp = lin.NewV3S(0, 1, 0)
	}

	right = lin.NewV3().Cross(forward, worldUp)
	if right.Len() < 1e-9 {
		// Looking straight along the up axis
		right = lin.NewV3S(1, 0, 0)
	}
	right.Unit()
	up = lin.NewV3().Cross(right, forward).Unit()
	return forward, right, up
}

// RayFromNDC unprojects a point in normalized device coordinates into a
// world space ray starting at the camera position.
func (c Camera) RayFromNDC(ndc NDC) Ray {
	forward, right, up := c.basis()
	tanHalf := math.Tan(c.FOV * math.Pi / 360)

	dir := lin.NewV3().Set(forward)
	dir.Add(dir, lin.NewV3().Scale(right, ndc.X*tanHalf*c.Aspect))
	dir.Add(dir, lin.NewV3().Scale(up, ndc.Y*tanHalf))

	return NewRay(c.Position, fromV3(dir))
}

// Project maps a world position to normalized device coordinates.
// The second result is false for points behind the camera.
func (c Camera) Project(p shared.Position) (NDC, bool) {
	forward, right, up := c.basis()
	rel := lin.NewV3().Sub(toV3(p), toV3(c.Position))

	depth := rel.Dot(forward)
	if depth <= 0 {
		return NDC{}, false
	}

	tanHalf := math.Tan(c.FOV * math.Pi / 360)
	return NDC{
		X: rel.Dot(right) / (depth * tanHalf * c.Aspect),
		Y: rel.Dot(up) / (depth * tanHalf),
	}, true
}

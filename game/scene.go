package game

import (
	"fmt"

	"github.com/mark3labs/agentworld/utils"
)

// Avatar and light defaults
const (
	AgentRadius        = 1.2
	LightIntensity     = 1.5
	LightDistance      = 8.0
	emissiveShadeLevel = 0.6
)

// Mesh is the renderable body of an avatar
type Mesh struct {
	Position Position `json:"position"`
	Rotation float64  `json:"rotation"`
	Radius   float64  `json:"radius"`
	Color    string   `json:"color"`
	Emissive string   `json:"emissive"`
}

// PointLight is a local light attached to an avatar
type PointLight struct {
	Position  Position `json:"position"`
	Color     string   `json:"color"`
	Intensity float64  `json:"intensity"`
	Distance  float64  `json:"distance"`
}

// Visual is the scene representation of one agent: a mesh and its light
type Visual struct {
	ID        string     `json:"id"`
	AgentName string     `json:"agentName"`
	Mesh      Mesh       `json:"mesh"`
	Light     PointLight `json:"light"`
}

// PickID implements shared.Pickable
func (v *Visual) PickID() string {
	return v.AgentName
}

// Bounds implements shared.Pickable
func (v *Visual) Bounds() (Position, float64) {
	return v.Mesh.Position, v.Mesh.Radius
}

// apply moves the mesh and its light to the animated transform
func (v *Visual) apply(tr Transform) {
	v.Mesh.Rotation = tr.Rotation
	v.Mesh.Position.Y = tr.Height
	v.Light.Position = v.Mesh.Position
}

// Transform reports the visual's current animated pose
func (v *Visual) Transform() Transform {
	return Transform{Rotation: v.Mesh.Rotation, Height: v.Mesh.Position.Y}
}

// Scene is the graph of visuals handed to the renderer
type Scene struct {
	visuals []*Visual
	nextID  int
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// Place creates a visual for an agent at pos, lit by a point light of the
// same color
func (s *Scene) Place(agentName string, pos Position, color string) *Visual {
	if normalized, err := utils.NormalizeColor(color); err == nil {
		color = normalized
	}

	s.nextID++
	v := &Visual{
		ID:        fmt.Sprintf("visual_%d", s.nextID),
		AgentName: agentName,
		Mesh: Mesh{
			Position: pos,
			Radius:   AgentRadius,
			Color:    color,
			Emissive: utils.ShadeColor(color, emissiveShadeLevel),
		},
		Light: PointLight{
			Position:  pos,
			Color:     color,
			Intensity: LightIntensity * (1.5 - utils.Luminance(color)),
			Distance:  LightDistance,
		},
	}
	s.visuals = append(s.visuals, v)
	return v
}

// Visuals returns the live visuals in placement order
func (s *Scene) Visuals() []*Visual {
	return s.visuals
}

// Snapshot copies every visual
func (s *Scene) Snapshot() []Visual {
	out := make([]Visual, len(s.visuals))
	for i, v := range s.visuals {
		out[i] = *v
	}
	return out
}

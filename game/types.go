package game

import (
	"time"

	"github.com/mark3labs/agentworld/game/physics"
	"github.com/mark3labs/agentworld/game/shared"
)

// Position represents a 3D position
type Position = shared.Position

// BaseHeight is the resting height of every agent avatar above the ground
const BaseHeight = 1.5

// Category is the role tag of an agent template
type Category string

// Agent categories
const (
	CategoryLogic    Category = "LOGIC"
	CategoryGateway  Category = "GATEWAY"
	CategoryCompute  Category = "COMPUTE"
	CategoryVision   Category = "VISION"
	CategoryMemory   Category = "MEMORY"
	CategorySecurity Category = "SECURITY"
)

// Categories lists every known category
var Categories = []Category{
	CategoryLogic,
	CategoryGateway,
	CategoryCompute,
	CategoryVision,
	CategoryMemory,
	CategorySecurity,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Zone is a fixed named region of the world with a roster of agents
type Zone struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Emoji  string   `json:"emoji" yaml:"emoji"`
	Color  string   `json:"color" yaml:"color"`
	X      float64  `json:"x" yaml:"x"`
	Z      float64  `json:"z" yaml:"z"`
	Agents []string `json:"agents" yaml:"agents"`
}

// AgentTemplate is the static stat block of a named agent
type AgentTemplate struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Color    string   `json:"color" yaml:"color"`
	Level    int      `json:"level" yaml:"level"`
	HP       int      `json:"hp" yaml:"hp"`
	MaxHP    int      `json:"maxHp" yaml:"maxHp"`
}

// Agent is the live instantiation of a template in its zone.
// Stats and Position never change after the world is built; only the
// visual transform is animated.
type Agent struct {
	AgentTemplate
	Zone     string   `json:"zone"`
	Position Position `json:"position"`
	VisualID string   `json:"visualId"`

	visual *Visual
}

// Transform is the animated part of an agent's visual
type Transform struct {
	Rotation float64 `json:"rotation"`
	Height   float64 `json:"height"`
}

// WorldState is a point-in-time copy of everything the renderer needs
type WorldState struct {
	Elapsed float64        `json:"elapsed"`
	Camera  physics.Camera `json:"camera"`
	Surface Surface        `json:"surface"`
	Zones   []Zone         `json:"zones"`
	Agents  []Agent        `json:"agents"`
	Visuals []Visual       `json:"visuals"`
}

// Surface is the size of the drawing surface in pixels
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pointer is the latest pointer position relative to the drawing surface
type Pointer struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Valid bool    `json:"valid"`
}

// EventType represents the type of world event
type EventType string

// Event types
const (
	EventAgentSelected EventType = "AGENT_SELECTED"
)

// SelectionEvent is emitted once for every successful pick. Transform is
// the avatar's animated pose at pick time when the pick came from the scene.
type SelectionEvent struct {
	ID        string     `json:"id"`
	Type      EventType  `json:"type"`
	Agent     Agent      `json:"agent"`
	Transform *Transform `json:"transform,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// TimeStamper is a utility function type for getting current time
type TimeStamper func() int64

// DefaultTimeStamper returns the current time in milliseconds
func DefaultTimeStamper() int64 {
	return time.Now().UnixMilli()
}

package physics

import (
	"github.com/mark3labs/agentworld/game/shared"
)

// ColliderType represents the type of collider
type ColliderType string

const (
	// ColliderAgent is an agent avatar collider
	ColliderAgent ColliderType = "agent"
)

// Collider represents a pickable bounding sphere
type Collider struct {
	Position shared.Position
	Radius   float64
	Type     ColliderType
	ID       string // Logical entity the sphere belongs to
}

// NewCollider snapshots the current bounds of a pickable object
func NewCollider(p shared.Pickable) Collider {
	center, radius := p.Bounds()
	return Collider{
		Position: center,
		Radius:   radius,
		Type:     ColliderAgent,
		ID:       p.PickID(),
	}
}

// GetColliders creates colliders for every pickable object
func GetColliders[T shared.Pickable](items []T) []Collider {
	colliders := make([]Collider, 0, len(items))
	for _, item := range items {
		colliders = append(colliders, NewCollider(item))
	}
	return colliders
}

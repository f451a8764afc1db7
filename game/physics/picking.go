package physics

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/agentworld/game/shared"
)

// NDC is a point in normalized device coordinates. Both axes span [-1, 1]
// with +Y pointing up.
type NDC struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointerToNDC converts a pointer position relative to the top-left corner
// of a drawing surface into normalized device coordinates
func PointerToNDC(x, y, width, height float64) NDC {
	if width <= 0 || height <= 0 {
		return NDC{}
	}
	return NDC{
		X: (x/width)*2 - 1,
		Y: -(y/height)*2 + 1,
	}
}

// Pointer converts normalized device coordinates back to surface coordinates
func (n NDC) Pointer(width, height float64) (x, y float64) {
	return (n.X + 1) / 2 * width, (1 - n.Y) / 2 * height
}

// Hit is a single ray intersection
type Hit struct {
	ID       string          `json:"id"`
	Distance float64         `json:"distance"`
	Point    shared.Position `json:"point"`
}

// Intersect tests the ray against every collider and returns the hits
// nearest first. Equal distances are ordered by collider ID.
func Intersect(ray Ray, colliders []Collider) []Hit {
	var hits []Hit
	for _, collider := range colliders {
		distance, ok := ray.intersectSphere(collider.Position, collider.Radius)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			ID:       collider.ID,
			Distance: distance,
			Point:    ray.At(distance),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}

// Resolve casts a ray from the camera through the pointer and returns the
// ID of the nearest intersected object. A miss returns false.
func Resolve(ndc NDC, camera Camera, colliders []Collider) (string, bool) {
	ray := camera.RayFromNDC(ndc)
	hits := Intersect(ray, colliders)
	if len(hits) == 0 {
		log.Debug("Pick missed", "ndcX", ndc.X, "ndcY", ndc.Y)
		return "", false
	}

	log.Debug("Pick resolved", "id", hits[0].ID, "distance", hits[0].Distance, "hits", len(hits))
	return hits[0].ID, true
}

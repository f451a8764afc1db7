package shared

// Position represents a 3D position
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pickable is anything the picking resolver can test a ray against
type Pickable interface {
	PickID() string
	Bounds() (center Position, radius float64)
}

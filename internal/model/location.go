package model

// Location is a point in the world, in block units.
// Value type, passed by value (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation creates a Location with the given coordinates.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// WithCoordinates returns a new Location with updated coordinates (immutable pattern).
func (l Location) WithCoordinates(x, y, z float64) Location {
	l.X = x
	l.Y = y
	l.Z = z
	return l
}

// DistanceSquared returns the squared distance to another point (no sqrt on the hot path).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Within reports whether other lies inside a sphere of the given radius around l.
func (l Location) Within(other Location, radius float64) bool {
	if radius <= 0 {
		return false
	}
	return l.DistanceSquared(other) <= radius*radius
}

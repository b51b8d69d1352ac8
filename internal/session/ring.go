package session

import "math"

// Ring is the geometry of a circular progress indicator drawn as a dashed
// stroke.
type Ring struct {
	Radius float64
}

func (ring Ring) Circumference() float64 {
	return 2 * math.Pi * ring.Radius
}

// Offset returns the dash offset for progress in [0, 1]. A full timer has no
// offset; an empty one hides the whole stroke.
func (ring Ring) Offset(progress float64) float64 {
	progress = math.Max(0, math.Min(1, progress))
	circumference := ring.Circumference()
	return circumference - progress*circumference
}

package component

import (
	"math"

	"github.com/falldown/falldown/internal/collision"
)

// Transform is an entity's world-space position and orientation.
type Transform struct {
	X, Y     float64
	Rotation float64 // radians, counter-clockwise
}

func (t *Transform) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// Rotate turns the transform by angle radians, kept within (-π, π].
func (t *Transform) Rotate(angle float64) {
	r := math.Remainder(t.Rotation+angle, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	t.Rotation = r
}

func (t *Transform) Isometry() collision.Isometry {
	return collision.Isometry{
		Translation: collision.Vec2{X: t.X, Y: t.Y},
		Rotation:    t.Rotation,
	}
}

package lights

import (
	"fmt"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// PointLight is an infinitesimal light that casts hard shadows
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit direction from point toward the light and
// the distance between them
func (l *PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	return toLight.Normalize(), toLight.Length()
}

// Validate checks that the light contributes positive intensity
func (l *PointLight) Validate() error {
	if l.Intensity <= 0 {
		return fmt.Errorf("light at %v: intensity must be positive, got %f", l.Position, l.Intensity)
	}
	return nil
}

package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// RayIntersect returns the distance along the ray to the nearest
// non-negative intersection. The ray direction must be unit length.
func (s *Sphere) RayIntersect(ray core.Ray) (float64, bool) {
	// Project the center onto the ray, then measure how far off the ray it sits
	toCenter := s.Center.Subtract(ray.Origin)
	tca := toCenter.Dot(ray.Direction)
	d2 := toCenter.Dot(toCenter) - tca*tca
	radius2 := s.Radius * s.Radius
	if d2 > radius2 {
		return 0, false
	}

	thc := math.Sqrt(radius2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t0 < 0 {
		t0 = t1
	}
	if t0 < 0 {
		return 0, false
	}
	return t0, true
}

// NormalAt returns the outward unit normal at a point on the surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Validate checks that the sphere is geometrically well formed
func (s *Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("sphere at %v: radius must be positive, got %f", s.Center, s.Radius)
	}
	if s.Material == nil {
		return fmt.Errorf("sphere at %v: missing material", s.Center)
	}
	if err := s.Material.Validate(); err != nil {
		return fmt.Errorf("sphere at %v: %w", s.Center, err)
	}
	return nil
}

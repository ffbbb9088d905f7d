package integrator

import "github.com/df07/go-tiny-raytracer/pkg/core"

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// CastRay returns the color seen along ray at the given recursion depth
	CastRay(ray core.Ray, depth int) core.Vec3
}

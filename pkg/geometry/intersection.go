package geometry

import (
	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/material"
)

// Intersection describes the first surface struck along a ray
type Intersection struct {
	Point    core.Vec3          // World-space hit point
	Normal   core.Vec3          // Unit normal facing out of the struck surface
	Material *material.Material // Material of the struck surface
}

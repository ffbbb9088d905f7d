package integrator

import (
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// Reflect mirrors dir about normal: d - 2(d·n)n
func Reflect(dir, normal core.Vec3) core.Vec3 {
	return dir.Subtract(normal.Multiply(2.0 * dir.Dot(normal)))
}

// Refract bends dir through a surface by Snell's law. etaT is the index on
// the far side of the surface and etaI the index the ray travels in. A ray
// leaving the medium (dir·normal > 0) is handled by flipping the normal and
// swapping the indices.
//
// Under total internal reflection there is no refracted ray; the fixed
// direction (1,0,0) is returned instead. It has no physical meaning.
func Refract(dir, normal core.Vec3, etaT, etaI float64) core.Vec3 {
	cosi := -max(-1.0, min(1.0, dir.Dot(normal)))
	if cosi < 0 {
		return Refract(dir, normal.Negate(), etaI, etaT)
	}

	eta := etaI / etaT
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.NewVec3(1, 0, 0)
	}
	return dir.Multiply(eta).Add(normal.Multiply(eta*cosi - math.Sqrt(k)))
}

// offsetOrigin nudges point off the surface toward the side dir points to,
// so a secondary ray does not immediately re-hit the surface it left
func offsetOrigin(point, normal, dir core.Vec3) core.Vec3 {
	if dir.Dot(normal) < 0 {
		return point.Subtract(normal.Multiply(surfaceOffset))
	}
	return point.Add(normal.Multiply(surfaceOffset))
}

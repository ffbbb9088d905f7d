package integrator

import (
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

const (
	// surfaceOffset is how far secondary ray origins are pushed off a surface
	surfaceOffset = 1e-3

	// airRefractiveIndex is the index of the medium the camera sits in
	airRefractiveIndex = 1.0
)

// Whitted is a recursive ray caster combining Phong shading, hard shadows,
// and mirror reflection and refraction. A Whitted value keeps a ray counter
// and must not be shared between goroutines; the scene it reads may be.
type Whitted struct {
	scene    *scene.Scene
	raysCast int
}

// NewWhitted creates a new recursive ray caster for the scene
func NewWhitted(s *scene.Scene) *Whitted {
	return &Whitted{scene: s}
}

// RaysCast returns the number of rays traced so far, including shadow rays
func (w *Whitted) RaysCast() int {
	return w.raysCast
}

// CastRay returns the color seen along ray. The ray direction must be unit
// length. Past the scene's max depth the background is returned without
// testing for intersections.
func (w *Whitted) CastRay(ray core.Ray, depth int) core.Vec3 {
	if depth > w.scene.MaxDepth {
		return w.scene.Background
	}

	w.raysCast++
	ixn, isHit := w.scene.Intersect(ray)
	if !isHit {
		return w.scene.Background
	}

	reflectColor := w.reflectedColor(ray, ixn, depth)
	refractColor := w.refractedColor(ray, ixn, depth)
	diffuse, specular := w.directLighting(ray, ixn)

	mat := ixn.Material
	return mat.DiffuseColor.Multiply(diffuse * mat.Albedo.X).
		Add(core.NewVec3(1, 1, 1).Multiply(specular * mat.Albedo.Y)).
		Add(reflectColor.Multiply(mat.Albedo.Z)).
		Add(refractColor.Multiply(mat.Albedo.W))
}

// reflectedColor traces the mirror bounce one level deeper
func (w *Whitted) reflectedColor(ray core.Ray, ixn geometry.Intersection, depth int) core.Vec3 {
	dir := Reflect(ray.Direction, ixn.Normal).Normalize()
	origin := offsetOrigin(ixn.Point, ixn.Normal, dir)
	return w.CastRay(core.NewRay(origin, dir), depth+1)
}

// refractedColor traces the transmitted ray one level deeper
func (w *Whitted) refractedColor(ray core.Ray, ixn geometry.Intersection, depth int) core.Vec3 {
	dir := Refract(ray.Direction, ixn.Normal, ixn.Material.RefractiveIndex, airRefractiveIndex).Normalize()
	origin := offsetOrigin(ixn.Point, ixn.Normal, dir)
	return w.CastRay(core.NewRay(origin, dir), depth+1)
}

// directLighting sums diffuse and specular intensity over every light that
// is not occluded from the hit point
func (w *Whitted) directLighting(ray core.Ray, ixn geometry.Intersection) (diffuse, specular float64) {
	for _, light := range w.scene.Lights {
		lightDir, lightDistance := light.DirectionFrom(ixn.Point)
		if w.inShadow(ixn, lightDir, lightDistance) {
			continue
		}

		diffuse += light.Intensity * max(0, lightDir.Dot(ixn.Normal))
		highlight := max(0, Reflect(lightDir.Negate(), ixn.Normal).Negate().Dot(ray.Direction))
		specular += math.Pow(highlight, ixn.Material.SpecularExponent) * light.Intensity
	}
	return diffuse, specular
}

// inShadow reports whether any surface lies strictly between the hit point
// and a light at lightDistance along lightDir
func (w *Whitted) inShadow(ixn geometry.Intersection, lightDir core.Vec3, lightDistance float64) bool {
	origin := offsetOrigin(ixn.Point, ixn.Normal, lightDir)

	w.raysCast++
	blocker, isHit := w.scene.Intersect(core.NewRay(origin, lightDir))
	return isHit && blocker.Point.Subtract(origin).Length() < lightDistance
}

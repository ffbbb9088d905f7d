package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/lights"
)

// DefaultMaxDepth is the deepest recursion level that still traces a ray
const DefaultMaxDepth = 4

// CameraConfig contains the pinhole camera and image settings
type CameraConfig struct {
	Width  int     // Image width in pixels
	Height int     // Image height in pixels
	FOV    float64 // Vertical field of view in radians
}

// DefaultCameraConfig returns the reference 1024x768, 60 degree camera
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:  1024,
		Height: 768,
		FOV:    math.Pi / 3.0,
	}
}

// DegreesToRadians converts a field of view angle. Dividing pi by 180/deg
// keeps whole fractions of 180 bit-identical to math.Pi/n, so 60 degrees
// equals DefaultCameraConfig's math.Pi/3 exactly.
func DegreesToRadians(deg float64) float64 {
	if deg == 0 {
		return 0
	}
	return math.Pi / (180.0 / deg)
}

// RadiansToDegrees is the inverse of DegreesToRadians
func RadiansToDegrees(rad float64) float64 {
	if rad == 0 {
		return 0
	}
	return 180.0 / (math.Pi / rad)
}

// Scene contains all the elements needed for rendering. It is read-only
// once rendering starts and may be shared between workers.
type Scene struct {
	Spheres      []*geometry.Sphere
	Checkerboard *geometry.Checkerboard // Optional tiled ground plane
	Lights       []*lights.PointLight
	Background   core.Vec3 // Color returned for rays that escape or exceed MaxDepth
	Camera       CameraConfig
	MaxDepth     int
}

// Intersect finds the nearest surface along the ray. Spheres are tested in
// list order and then the checkerboard; only a strictly closer hit replaces
// an earlier one. The boolean is false when nothing was struck.
func (s *Scene) Intersect(ray core.Ray) (geometry.Intersection, bool) {
	var ixn geometry.Intersection
	hitAnything := false
	closestSoFar := math.MaxFloat64

	for _, sphere := range s.Spheres {
		dist, isHit := sphere.RayIntersect(ray)
		if !isHit || dist >= closestSoFar {
			continue
		}
		closestSoFar = dist
		hit := ray.At(dist)
		ixn = geometry.Intersection{
			Point:    hit,
			Normal:   sphere.NormalAt(hit),
			Material: sphere.Material,
		}
		hitAnything = true
	}

	if s.Checkerboard != nil {
		if dist, isHit := s.Checkerboard.RayIntersect(ray); isHit && dist < closestSoFar {
			hit := ray.At(dist)
			ixn = geometry.Intersection{
				Point:    hit,
				Normal:   s.Checkerboard.Normal,
				Material: s.Checkerboard.MaterialAt(hit),
			}
			hitAnything = true
		}
	}

	return ixn, hitAnything
}

// Validate checks the scene and camera for values the renderer cannot handle
func (s *Scene) Validate() error {
	if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", s.Camera.Width, s.Camera.Height)
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= math.Pi {
		return fmt.Errorf("field of view must be between 0 and pi radians, got %f", s.Camera.FOV)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", s.MaxDepth)
	}

	for i, sphere := range s.Spheres {
		if err := sphere.Validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	if s.Checkerboard != nil {
		if err := s.Checkerboard.Validate(); err != nil {
			return err
		}
	}
	return nil
}

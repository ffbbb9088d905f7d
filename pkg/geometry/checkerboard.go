package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/material"
)

// parallelEpsilon is the smallest |dir.y| for which the plane is tested
const parallelEpsilon = 1e-3

// Checkerboard is a horizontal plane at y = Height, clipped to the rectangle
// |x| < HalfWidth, Far < z < Near, tiled with two alternating materials.
type Checkerboard struct {
	Height    float64 // Plane equation y = Height
	HalfWidth float64 // Tiles span -HalfWidth < x < HalfWidth
	Near      float64 // Upper z bound (closest to the camera)
	Far       float64 // Lower z bound
	Even      *material.Material
	Odd       *material.Material
	Normal    core.Vec3 // Always "up"
}

// NewCheckerboard creates a checkerboard with the reference bounds
func NewCheckerboard(even, odd *material.Material) *Checkerboard {
	return &Checkerboard{
		Height:    -4,
		HalfWidth: 10,
		Near:      -10,
		Far:       -30,
		Even:      even,
		Odd:       odd,
		Normal:    core.NewVec3(0, 1, 0),
	}
}

// RayIntersect returns the distance to the plane if the ray strikes it in
// front of the origin and inside the tiled rectangle.
func (c *Checkerboard) RayIntersect(ray core.Ray) (float64, bool) {
	// Near-parallel rays never count as hits
	if math.Abs(ray.Direction.Y) <= parallelEpsilon {
		return 0, false
	}

	dist := -(ray.Origin.Y - c.Height) / ray.Direction.Y
	if dist <= 0 {
		return 0, false
	}

	hit := ray.At(dist)
	if math.Abs(hit.X) >= c.HalfWidth || hit.Z >= c.Near || hit.Z <= c.Far {
		return 0, false
	}
	return dist, true
}

// MaterialAt returns the tile material under a point on the plane.
// The +1000 offset keeps the x tile index positive so parity is stable
// on both sides of the origin.
func (c *Checkerboard) MaterialAt(point core.Vec3) *material.Material {
	tile := int(math.Floor(0.5*point.X+1000)) + int(math.Floor(0.5*point.Z))
	if tile&1 == 1 {
		return c.Odd
	}
	return c.Even
}

// Validate checks that the checkerboard bounds and materials are usable
func (c *Checkerboard) Validate() error {
	if c.HalfWidth <= 0 {
		return fmt.Errorf("checkerboard: half width must be positive, got %f", c.HalfWidth)
	}
	if c.Far >= c.Near {
		return fmt.Errorf("checkerboard: far bound %f must be below near bound %f", c.Far, c.Near)
	}
	if c.Even == nil || c.Odd == nil {
		return fmt.Errorf("checkerboard: both tile materials are required")
	}
	if err := c.Even.Validate(); err != nil {
		return fmt.Errorf("checkerboard even tile: %w", err)
	}
	if err := c.Odd.Validate(); err != nil {
		return fmt.Errorf("checkerboard odd tile: %w", err)
	}
	return nil
}

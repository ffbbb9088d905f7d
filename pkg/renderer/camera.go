package renderer

import (
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// Camera is a pinhole camera at the origin looking down -Z
type Camera struct {
	origin core.Vec3
	width  int
	height int
	dirZ   float64 // Distance to the image plane, in pixel units
}

// NewCamera creates a camera for the given image settings
func NewCamera(config scene.CameraConfig) *Camera {
	return &Camera{
		origin: core.NewVec3(0, 0, 0),
		width:  config.Width,
		height: config.Height,
		dirZ:   -float64(config.Height) / (2.0 * math.Tan(config.FOV/2.0)),
	}
}

// GetRay returns the unit-direction primary ray through the center of pixel
// (i, j). Row 0 is the top of the image.
func (c *Camera) GetRay(i, j int) core.Ray {
	dirX := (float64(i) + 0.5) - float64(c.width)/2.0
	dirY := -(float64(j) + 0.5) + float64(c.height)/2.0
	return core.NewRay(c.origin, core.NewVec3(dirX, dirY, c.dirZ).Normalize())
}

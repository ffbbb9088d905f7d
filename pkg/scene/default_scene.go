package scene

import (
	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/lights"
	"github.com/df07/go-tiny-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: four spheres over a bounded
// checkerboard, lit by three point lights
func NewDefaultScene(cameraOverrides ...CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	// Create materials
	ivory := material.NewIvory()
	glass := material.NewGlass()
	redRubber := material.NewRedRubber()
	mirror := material.NewMirror()

	return &Scene{
		Spheres: []*geometry.Sphere{
			geometry.NewSphere(core.NewVec3(-3, 0, -16), 2, ivory),
			geometry.NewSphere(core.NewVec3(-1.0, -1.5, -12), 2, glass),
			geometry.NewSphere(core.NewVec3(1.5, -0.5, -18), 3, redRubber),
			geometry.NewSphere(core.NewVec3(7, 5, -18), 4, mirror),
		},
		Checkerboard: geometry.NewCheckerboard(material.NewCheckerLight(), material.NewCheckerDark()),
		Lights: []*lights.PointLight{
			lights.NewPointLight(core.NewVec3(-20, 20, 20), 1.5),
			lights.NewPointLight(core.NewVec3(30, 50, -25), 1.8),
			lights.NewPointLight(core.NewVec3(30, 20, 30), 1.7),
		},
		Background: core.NewVec3(0.2, 0.7, 0.8),
		Camera:     cameraConfig,
		MaxDepth:   DefaultMaxDepth,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.FOV != 0 {
		result.FOV = override.FOV
	}
	return result
}

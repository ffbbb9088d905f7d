package integrator

import (
	"testing"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/lights"
	"github.com/df07/go-tiny-raytracer/pkg/material"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

var testBackground = core.NewVec3(0.2, 0.7, 0.8)

// createTestScene creates a scene with a single sphere and no lights
func createTestScene(spheres ...*geometry.Sphere) *scene.Scene {
	return &scene.Scene{
		Spheres:    spheres,
		Background: testBackground,
		Camera:     scene.DefaultCameraConfig(),
		MaxDepth:   scene.DefaultMaxDepth,
	}
}

// createGroundScene creates a large sphere whose top is at the origin, lit
// from directly above
func createGroundScene(mat *material.Material) *scene.Scene {
	ground := geometry.NewSphere(core.NewVec3(0, -100, 0), 100, mat)
	s := createTestScene(ground)
	s.Background = core.NewVec3(0, 0, 0)
	s.Lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 20, 0), 1)}
	return s
}

func assertColorNear(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	if actual.Subtract(expected).Length() > 1e-6 {
		t.Errorf("Expected color %v, got %v", expected, actual)
	}
}

func TestWhitted_DepthGuardReturnsBackground(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewIvory())
	w := NewWhitted(createTestScene(sphere))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	color := w.CastRay(ray, 5)
	if color != testBackground {
		t.Errorf("Expected background %v at depth 5, got %v", testBackground, color)
	}
	if w.RaysCast() != 0 {
		t.Errorf("Expected no intersection tests past max depth, got %d", w.RaysCast())
	}
}

func TestWhitted_MissReturnsBackground(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewIvory())
	w := NewWhitted(createTestScene(sphere))

	color := w.CastRay(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0)
	if color != testBackground {
		t.Errorf("Expected background %v, got %v", testBackground, color)
	}
}

func TestWhitted_DiffuseLighting(t *testing.T) {
	mat := material.NewMaterial(1.0, core.NewVec4(1, 0, 0, 0), core.NewVec3(0.5, 0.25, 0.1), 0)
	w := NewWhitted(createGroundScene(mat))
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	// Light straight above the hit point: diffuse factor is the intensity
	assertColorNear(t, mat.DiffuseColor, w.CastRay(ray, 0))
}

func TestWhitted_ShadowRemovesLightContribution(t *testing.T) {
	tests := []struct {
		name string
		mat  *material.Material
		lit  core.Vec3
	}{
		{
			name: "diffuse",
			mat:  material.NewMaterial(1.0, core.NewVec4(1, 0, 0, 0), core.NewVec3(0.5, 0.25, 0.1), 0),
			lit:  core.NewVec3(0.5, 0.25, 0.1),
		},
		{
			name: "specular",
			mat:  material.NewMaterial(1.0, core.NewVec4(0, 1, 0, 0), core.NewVec3(0, 0, 0), 10),
			lit:  core.NewVec3(1, 1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

			unoccluded := NewWhitted(createGroundScene(tt.mat)).CastRay(ray, 0)
			assertColorNear(t, tt.lit, unoccluded)

			// Opaque sphere between the hit point and the light, above the camera
			occluded := createGroundScene(tt.mat)
			occluded.Spheres = append(occluded.Spheres,
				geometry.NewSphere(core.NewVec3(0, 10, 0), 1, material.NewRedRubber()))

			assertColorNear(t, core.NewVec3(0, 0, 0), NewWhitted(occluded).CastRay(ray, 0))
		})
	}
}

func TestWhitted_OccluderBeyondLightDoesNotShadow(t *testing.T) {
	mat := material.NewMaterial(1.0, core.NewVec4(1, 0, 0, 0), core.NewVec3(0.5, 0.25, 0.1), 0)
	s := createGroundScene(mat)
	s.Spheres = append(s.Spheres, geometry.NewSphere(core.NewVec3(0, 30, 0), 1, material.NewRedRubber()))

	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	assertColorNear(t, mat.DiffuseColor, NewWhitted(s).CastRay(ray, 0))
}

func TestWhitted_MirrorReflectsBackground(t *testing.T) {
	mirror := material.NewMaterial(1.0, core.NewVec4(0, 0, 1, 0), core.NewVec3(0, 0, 0), 0)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror)
	w := NewWhitted(createTestScene(sphere))

	color := w.CastRay(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0)
	assertColorNear(t, testBackground, color)
}

func TestWhitted_RefractionThroughIndexOne(t *testing.T) {
	clear := material.NewMaterial(1.0, core.NewVec4(0, 0, 0, 1), core.NewVec3(0, 0, 0), 0)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, clear)
	w := NewWhitted(createTestScene(sphere))

	// Enter and exit without bending, then escape to the background
	color := w.CastRay(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0)
	assertColorNear(t, testBackground, color)
}

func TestWhitted_RecursionIsBounded(t *testing.T) {
	// Two facing mirrors would bounce forever without the depth guard
	mirror := material.NewMaterial(1.0, core.NewVec4(0, 0, 1, 0), core.NewVec3(0, 0, 0), 0)
	s := createTestScene(
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror),
		geometry.NewSphere(core.NewVec3(0, 0, 5), 1, mirror),
	)
	w := NewWhitted(s)

	color := w.CastRay(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0)
	assertColorNear(t, testBackground, color)

	// Each hit spawns a reflection and a refraction ray: at most 2^5 - 1 hits
	if w.RaysCast() > 63 {
		t.Errorf("Expected a bounded call tree, got %d rays", w.RaysCast())
	}
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/material"
)

func TestSphere_RayIntersect_TowardCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"straight down -z", core.NewVec3(0, 0, -16), 2, core.NewVec3(0, 0, 0)},
		{"offset origin", core.NewVec3(-3, 0, -16), 2, core.NewVec3(1, 2, 3)},
		{"large sphere", core.NewVec3(7, 5, -18), 4, core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, material.NewIvory())
			direction := tt.center.Subtract(tt.origin).Normalize()
			ray := core.NewRay(tt.origin, direction)

			dist, isHit := sphere.RayIntersect(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expected := tt.center.Subtract(tt.origin).Length() - tt.radius
			if math.Abs(dist-expected) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", expected, dist)
			}
		})
	}
}

func TestSphere_RayIntersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 1, material.NewIvory())

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"pointing away", core.NewVec3(0, 0, 1)},
		{"passing beside", core.NewVec3(1, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			if dist, isHit := sphere.RayIntersect(ray); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", dist)
			}
		})
	}
}

func TestSphere_RayIntersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2, material.NewGlass())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	dist, isHit := sphere.RayIntersect(ray)
	if !isHit {
		t.Fatal("Expected far-side hit from inside, but got miss")
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("Expected distance 2, got %f", dist)
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 2, material.NewIvory())
	normal := sphere.NormalAt(core.NewVec3(1, 3, 1))

	if normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,1,0), got %v", normal)
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name      string
		sphere    *Sphere
		expectErr bool
	}{
		{"valid", NewSphere(core.NewVec3(0, 0, -5), 1, material.NewIvory()), false},
		{"zero radius", NewSphere(core.NewVec3(0, 0, -5), 0, material.NewIvory()), true},
		{"negative radius", NewSphere(core.NewVec3(0, 0, -5), -1, material.NewIvory()), true},
		{"nil material", NewSphere(core.NewVec3(0, 0, -5), 1, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sphere.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Expected error=%t, got %v", tt.expectErr, err)
			}
		})
	}
}

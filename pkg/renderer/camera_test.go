package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{Width: 4, Height: 2, FOV: math.Pi / 2})

	tests := []struct {
		name      string
		i, j      int
		checkSign func(x, y float64) bool
	}{
		{"top left", 0, 0, func(x, y float64) bool { return x < 0 && y > 0 }},
		{"top right", 3, 0, func(x, y float64) bool { return x > 0 && y > 0 }},
		{"bottom left", 0, 1, func(x, y float64) bool { return x < 0 && y < 0 }},
		{"bottom right", 3, 1, func(x, y float64) bool { return x > 0 && y < 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.i, tt.j)

			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
			}
			if ray.Direction.Z >= 0 {
				t.Errorf("Expected ray to look down -Z, got %v", ray.Direction)
			}
			if !tt.checkSign(ray.Direction.X, ray.Direction.Y) {
				t.Errorf("Unexpected quadrant for pixel (%d,%d): %v", tt.i, tt.j, ray.Direction)
			}
			if ray.Origin.Length() != 0 {
				t.Errorf("Expected origin at zero, got %v", ray.Origin)
			}
		})
	}
}

func TestCamera_GetRay_MatchesPinholeFormula(t *testing.T) {
	config := scene.DefaultCameraConfig()
	camera := NewCamera(config)

	ray := camera.GetRay(100, 200)

	dirX := 100.5 - 512.0
	dirY := -200.5 + 384.0
	dirZ := -768.0 / (2 * math.Tan(math.Pi/6))
	length := math.Sqrt(dirX*dirX + dirY*dirY + dirZ*dirZ)

	if math.Abs(ray.Direction.X-dirX/length) > 1e-12 ||
		math.Abs(ray.Direction.Y-dirY/length) > 1e-12 ||
		math.Abs(ray.Direction.Z-dirZ/length) > 1e-12 {
		t.Errorf("Unexpected direction %v", ray.Direction)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	// Pixel centers at the top and bottom edges span almost exactly the fov
	height := 1000
	fov := math.Pi / 3
	camera := NewCamera(scene.CameraConfig{Width: 1, Height: height, FOV: fov})

	top := camera.GetRay(0, 0).Direction
	bottom := camera.GetRay(0, height-1).Direction
	angle := math.Acos(top.Dot(bottom))

	if math.Abs(angle-fov) > 0.01 {
		t.Errorf("Expected vertical span near %f, got %f", fov, angle)
	}
}

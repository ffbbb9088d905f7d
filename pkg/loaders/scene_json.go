package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/lights"
	"github.com/df07/go-tiny-raytracer/pkg/material"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// SceneFile is the JSON representation of a scene. Materials are declared
// once by name and referenced from spheres and the checkerboard, so every
// surface naming a material shares the same *material.Material.
type SceneFile struct {
	Name         string                  `json:"name,omitempty"`
	Description  string                  `json:"description,omitempty"`
	Camera       CameraFile              `json:"camera"`
	Background   *[3]float64             `json:"background,omitempty"`
	MaxDepth     *int                    `json:"maxDepth,omitempty"`
	Materials    map[string]MaterialFile `json:"materials"`
	Spheres      []SphereFile            `json:"spheres"`
	Lights       []LightFile             `json:"lights"`
	Checkerboard *CheckerboardFile       `json:"checkerboard,omitempty"`
}

// CameraFile holds image settings; zero fields fall back to the defaults
type CameraFile struct {
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	FOVDegrees float64 `json:"fovDegrees,omitempty"` // Degrees are friendlier than radians in JSON
}

type MaterialFile struct {
	RefractiveIndex  float64    `json:"refractiveIndex"`
	Albedo           [4]float64 `json:"albedo"`
	DiffuseColor     [3]float64 `json:"diffuseColor"`
	SpecularExponent float64    `json:"specularExponent"`
}

type SphereFile struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

type LightFile struct {
	Position  [3]float64 `json:"position"`
	Intensity float64    `json:"intensity"`
}

// CheckerboardFile describes the tiled ground. Omitted bounds use the
// reference values.
type CheckerboardFile struct {
	Height    *float64 `json:"height,omitempty"`
	HalfWidth *float64 `json:"halfWidth,omitempty"`
	Near      *float64 `json:"near,omitempty"`
	Far       *float64 `json:"far,omitempty"`
	Even      string   `json:"even"`
	Odd       string   `json:"odd"`
}

// LoadScene reads and validates a JSON scene file
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := DecodeScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DecodeScene parses a JSON scene, resolves material references, and
// validates the result
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	s, err := sf.Build()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return s, nil
}

// Build converts the file representation into a scene
func (sf *SceneFile) Build() (*scene.Scene, error) {
	materials := make(map[string]*material.Material, len(sf.Materials))
	for name, mf := range sf.Materials {
		materials[name] = material.NewMaterial(
			mf.RefractiveIndex,
			core.NewVec4(mf.Albedo[0], mf.Albedo[1], mf.Albedo[2], mf.Albedo[3]),
			vec3(mf.DiffuseColor),
			mf.SpecularExponent,
		)
	}
	lookup := func(name string) (*material.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", name)
		}
		return mat, nil
	}

	cameraConfig := scene.MergeCameraConfig(scene.DefaultCameraConfig(), scene.CameraConfig{
		Width:  sf.Camera.Width,
		Height: sf.Camera.Height,
		FOV:    scene.DegreesToRadians(sf.Camera.FOVDegrees),
	})

	s := &scene.Scene{
		Background: core.NewVec3(0.2, 0.7, 0.8),
		Camera:     cameraConfig,
		MaxDepth:   scene.DefaultMaxDepth,
	}
	if sf.Background != nil {
		s.Background = vec3(*sf.Background)
	}
	if sf.MaxDepth != nil {
		s.MaxDepth = *sf.MaxDepth
	}

	for i, sph := range sf.Spheres {
		mat, err := lookup(sph.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Spheres = append(s.Spheres, geometry.NewSphere(vec3(sph.Center), sph.Radius, mat))
	}

	for _, lf := range sf.Lights {
		s.Lights = append(s.Lights, lights.NewPointLight(vec3(lf.Position), lf.Intensity))
	}

	if cb := sf.Checkerboard; cb != nil {
		even, err := lookup(cb.Even)
		if err != nil {
			return nil, fmt.Errorf("checkerboard: %w", err)
		}
		odd, err := lookup(cb.Odd)
		if err != nil {
			return nil, fmt.Errorf("checkerboard: %w", err)
		}
		board := geometry.NewCheckerboard(even, odd)
		overrideFloat(&board.Height, cb.Height)
		overrideFloat(&board.HalfWidth, cb.HalfWidth)
		overrideFloat(&board.Near, cb.Near)
		overrideFloat(&board.Far, cb.Far)
		s.Checkerboard = board
	}

	return s, nil
}

// EncodeScene writes s as indented JSON. Materials are named material0,
// material1, ... in order of first use; shared materials keep one name.
func EncodeScene(w io.Writer, s *scene.Scene) error {
	sf := NewSceneFile(s)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sf); err != nil {
		return fmt.Errorf("failed to encode scene JSON: %w", err)
	}
	return nil
}

// NewSceneFile converts a scene into its file representation
func NewSceneFile(s *scene.Scene) *SceneFile {
	background := [3]float64{s.Background.X, s.Background.Y, s.Background.Z}
	maxDepth := s.MaxDepth
	sf := &SceneFile{
		Camera: CameraFile{
			Width:      s.Camera.Width,
			Height:     s.Camera.Height,
			FOVDegrees: scene.RadiansToDegrees(s.Camera.FOV),
		},
		Background: &background,
		MaxDepth:   &maxDepth,
		Materials:  make(map[string]MaterialFile),
		Spheres:    []SphereFile{},
		Lights:     []LightFile{},
	}

	names := make(map[*material.Material]string)
	nameOf := func(mat *material.Material) string {
		if name, ok := names[mat]; ok {
			return name
		}
		name := fmt.Sprintf("material%d", len(names))
		names[mat] = name
		sf.Materials[name] = MaterialFile{
			RefractiveIndex:  mat.RefractiveIndex,
			Albedo:           [4]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z, mat.Albedo.W},
			DiffuseColor:     [3]float64{mat.DiffuseColor.X, mat.DiffuseColor.Y, mat.DiffuseColor.Z},
			SpecularExponent: mat.SpecularExponent,
		}
		return name
	}

	for _, sph := range s.Spheres {
		sf.Spheres = append(sf.Spheres, SphereFile{
			Center:   [3]float64{sph.Center.X, sph.Center.Y, sph.Center.Z},
			Radius:   sph.Radius,
			Material: nameOf(sph.Material),
		})
	}
	for _, light := range s.Lights {
		sf.Lights = append(sf.Lights, LightFile{
			Position:  [3]float64{light.Position.X, light.Position.Y, light.Position.Z},
			Intensity: light.Intensity,
		})
	}
	if cb := s.Checkerboard; cb != nil {
		height, halfWidth, near, far := cb.Height, cb.HalfWidth, cb.Near, cb.Far
		sf.Checkerboard = &CheckerboardFile{
			Height:    &height,
			HalfWidth: &halfWidth,
			Near:      &near,
			Far:       &far,
			Even:      nameOf(cb.Even),
			Odd:       nameOf(cb.Odd),
		}
	}

	return sf
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func overrideFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

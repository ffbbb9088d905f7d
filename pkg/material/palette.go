package material

import "github.com/df07/go-tiny-raytracer/pkg/core"

// Reference palette. Each constructor returns a fresh pointer; callers share
// the returned pointer between every surface that uses the material.

// NewIvory returns a mostly diffuse off-white material with a soft highlight
func NewIvory() *Material {
	return NewMaterial(1.0, core.NewVec4(0.6, 0.3, 0.1, 0.0), core.NewVec3(0.4, 0.4, 0.3), 50)
}

// NewGlass returns a refractive material with a sharp highlight
func NewGlass() *Material {
	return NewMaterial(1.5, core.NewVec4(0.0, 0.5, 0.1, 0.8), core.NewVec3(0.6, 0.7, 0.8), 125)
}

// NewRedRubber returns a dull red material
func NewRedRubber() *Material {
	return NewMaterial(1.0, core.NewVec4(0.9, 0.1, 0.0, 0.0), core.NewVec3(0.3, 0.1, 0.1), 10)
}

// NewMirror returns a strongly reflective material
func NewMirror() *Material {
	return NewMaterial(1.0, core.NewVec4(0.0, 10.0, 0.8, 0.0), core.NewVec3(1.0, 1.0, 1.0), 1425)
}

// NewCheckerLight returns the grey checkerboard tile material
func NewCheckerLight() *Material {
	return NewMaterial(1.0, core.NewVec4(1.0, 0.0, 0.0, 0.0), core.NewVec3(0.3, 0.3, 0.3), 0)
}

// NewCheckerDark returns the brown checkerboard tile material
func NewCheckerDark() *Material {
	return NewMaterial(1.0, core.NewVec4(1.0, 0.0, 0.0, 0.0), core.NewVec3(0.3, 0.2, 0.1), 0)
}

package material

import (
	"fmt"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// Material describes how a surface responds to light under the Phong-style
// shading model. Surfaces share materials by pointer and never modify them.
type Material struct {
	RefractiveIndex  float64   // Index of refraction (1.0 for opaque surfaces)
	Albedo           core.Vec4 // Weights: diffuse, specular, reflection, refraction
	DiffuseColor     core.Vec3 // Base color scaled by diffuse light
	SpecularExponent float64   // Phong exponent, larger is a tighter highlight
}

// NewMaterial creates a new material
func NewMaterial(refractiveIndex float64, albedo core.Vec4, diffuseColor core.Vec3, specularExponent float64) *Material {
	return &Material{
		RefractiveIndex:  refractiveIndex,
		Albedo:           albedo,
		DiffuseColor:     diffuseColor,
		SpecularExponent: specularExponent,
	}
}

// Validate reports whether the material can be shaded without producing NaNs
func (m *Material) Validate() error {
	if m.RefractiveIndex <= 0 {
		return fmt.Errorf("refractive index must be positive, got %f", m.RefractiveIndex)
	}
	if m.SpecularExponent < 0 {
		return fmt.Errorf("specular exponent must not be negative, got %f", m.SpecularExponent)
	}
	return nil
}

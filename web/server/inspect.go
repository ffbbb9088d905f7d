package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/geometry"
	"github.com/df07/go-tiny-raytracer/pkg/material"
	"github.com/df07/go-tiny-raytracer/pkg/renderer"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the surface hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Intersection geometry.Intersection
	Distance     float64
	Sphere       *geometry.Sphere // Nil when the checkerboard was hit
}

// inspectPixel casts the primary ray through the center of pixel (x, y) and
// reports the first surface it strikes
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	camera := renderer.NewCamera(sceneObj.Camera)
	ray := camera.GetRay(pixelX, pixelY)

	ixn, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResult{Hit: false}
	}

	result := InspectResult{
		Hit:          true,
		Intersection: ixn,
		Distance:     ixn.Point.Subtract(ray.Origin).Length(),
	}

	// Find the specific sphere that was hit by re-testing each one
	// (the intersector doesn't return the shape, just the hit record)
	for _, sphere := range sceneObj.Spheres {
		if dist, ok := sphere.RayIntersect(ray); ok && ray.At(dist) == ixn.Point {
			result.Sphere = sphere
			break
		}
	}
	return result
}

// extractMaterialInfo lists the shading parameters of a material
func extractMaterialInfo(mat *material.Material) map[string]interface{} {
	return map[string]interface{}{
		"refractiveIndex":  mat.RefractiveIndex,
		"albedo":           [4]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z, mat.Albedo.W},
		"diffuseColor":     vecToArray(mat.DiffuseColor),
		"specularExponent": mat.SpecularExponent,
		"color":            hexColor(mat.DiffuseColor),
	}
}

// extractGeometryInfo describes the struck surface
func extractGeometryInfo(sceneObj *scene.Scene, result InspectResult) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	if sphere := result.Sphere; sphere != nil {
		properties["center"] = vecToArray(sphere.Center)
		properties["radius"] = sphere.Radius
		return "sphere", properties
	}

	if board := sceneObj.Checkerboard; board != nil {
		properties["height"] = board.Height
		properties["halfWidth"] = board.HalfWidth
		properties["near"] = board.Near
		properties["far"] = board.Far
		properties["tile"] = "even"
		if result.Intersection.Material == board.Odd {
			properties["tile"] = "odd"
		}
		return "checkerboard", properties
	}

	return "unknown", properties
}

// hexColor formats a color in [0,1] as #rrggbb
func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create request object for parameter parsing
	inspectReq := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= sceneObj.Camera.Width || pixelY < 0 || pixelY >= sceneObj.Camera.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(sceneObj, result)

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecToArray(result.Intersection.Point),
		Normal:       vecToArray(result.Intersection.Normal),
		Distance:     result.Distance,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(result.Intersection.Material),
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

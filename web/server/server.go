package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/imageio"
	"github.com/df07/go-tiny-raytracer/pkg/loaders"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client. Zero values
// keep the scene's own settings.
type RenderRequest struct {
	Scene      string         // Scene id ("default" or a file name from the scenes directory)
	Width      int            // Image width
	Height     int            // Image height
	FOVDegrees float64        // Vertical field of view
	MaxDepth   int            // Recursion limit, -1 keeps the scene setting
	Format     imageio.Format // Encoding of the returned image
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scenes)
}

// handleSceneConfig returns a scene, with any request overrides applied, in
// the JSON scene file format
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := loaders.EncodeScene(w, sceneObj); err != nil {
		log.Printf("Error encoding scene config: %v", err)
	}
}

// parseCommonSceneParams parses the parameters shared by render, inspect
// and scene-config requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 4096); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 4096); err != nil {
		return err
	}
	if req.FOVDegrees, err = parseFloatParam(query, "fov", 0, 1, 179); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, 0, 16); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}

	sceneObj.Camera = scene.MergeCameraConfig(sceneObj.Camera, scene.CameraConfig{
		Width:  req.Width,
		Height: req.Height,
		FOV:    scene.DegreesToRadians(req.FOVDegrees),
	})
	if req.MaxDepth >= 0 {
		sceneObj.MaxDepth = req.MaxDepth
	}
	return sceneObj, nil
}

// loadScene resolves a scene id against the built-in scenes and the scenes
// directory. Both "glass-row" and "json:glass-row" name the same file.
func (s *Server) loadScene(sceneName string) (*scene.Scene, error) {
	if sceneName == "default" {
		return scene.NewDefaultScene(), nil
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	id := "json:" + strings.TrimPrefix(sceneName, "json:")
	for _, info := range files {
		if info.ID == id {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("Unknown scene: %s", sceneName)
}

// writeJSONError writes {"error": message} with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// vecToArray converts a vector for JSON responses
func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

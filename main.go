package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-tiny-raytracer/pkg/imageio"
	"github.com/df07/go-tiny-raytracer/pkg/loaders"
	"github.com/df07/go-tiny-raytracer/pkg/renderer"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// scenesDir is searched when -scene names a file without a path
const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: 'default', a name from scenes/, or a path to a .json scene file")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene setting)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene setting)")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees (0 = scene setting)")
	depth := flag.Int("depth", -1, "Maximum recursion depth (-1 = scene setting)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	output := flag.String("out", "out.ppm", "Output file; the extension selects ppm, png, bmp or tiff")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting Tiny Raytracer...")

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(selectedScene, *width, *height, *fov, *depth)

	config := renderer.DefaultRenderConfig()
	config.NumWorkers = *workers

	raytracer := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	fb, stats, err := raytracer.Render(context.Background())
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	if stats.ClippedPixels > 0 {
		fmt.Printf("Soft-clipped %d of %d pixels (brightest channel %.2f)\n",
			stats.ClippedPixels, stats.TotalPixels, stats.MaxChannel)
	}

	if err := imageio.Save(*output, fb); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", *output)
}

func showHelp() {
	fmt.Println("Tiny Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
		return
	}
	for _, info := range scenes {
		id := strings.TrimPrefix(info.ID, "json:")
		fmt.Printf("  %-12s - %s\n", id, info.Description)
	}
	fmt.Println()
	fmt.Println("With no options the reference scene is written to out.ppm")
}

// createScene resolves a scene argument: the built-in "default" scene, a
// path to a .json file, or the name of a file in the scenes directory
func createScene(sceneType string) (*scene.Scene, error) {
	switch {
	case sceneType == "default":
		return scene.NewDefaultScene(), nil
	case sceneType == "":
		return nil, fmt.Errorf("scene name must not be empty")
	case strings.HasSuffix(sceneType, ".json"):
		return loaders.LoadScene(sceneType)
	default:
		path := filepath.Join(scenesDir, sceneType+".json")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("unknown scene: %s", sceneType)
		}
		return loaders.LoadScene(path)
	}
}

// applyOverrides replaces scene settings with any flags the user supplied
func applyOverrides(s *scene.Scene, width, height int, fovDegrees float64, depth int) {
	s.Camera = scene.MergeCameraConfig(s.Camera, scene.CameraConfig{
		Width:  width,
		Height: height,
		FOV:    scene.DegreesToRadians(fovDegrees),
	})
	if depth >= 0 {
		s.MaxDepth = depth
	}
}

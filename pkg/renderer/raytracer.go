package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for a render
type RenderConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a scene into a framebuffer
type Raytracer struct {
	scene  *scene.Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  s,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel of the scene's camera. The result does not
// depend on the number of workers. If ctx is cancelled the render stops
// early and returns the context error with no framebuffer.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	startTime := time.Now()
	width, height := rt.scene.Camera.Width, rt.scene.Camera.Height
	fb := NewFramebuffer(width, height)

	pool := NewWorkerPool(rt.scene, fb, rt.config.NumWorkers)
	stats := RenderStats{NumWorkers: pool.GetNumWorkers()}
	rt.logger.Printf("Rendering %dx%d with %d workers\n", width, height, stats.NumWorkers)

	pool.Start(ctx)
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	pool.Stop()

	for result := range pool.Results() {
		if result.Skipped {
			continue
		}
		stats.TotalRows++
		stats.RaysCast += result.RaysCast
	}

	if err := ctx.Err(); err != nil && stats.TotalRows < height {
		return nil, stats, fmt.Errorf("render cancelled after %d of %d rows: %w", stats.TotalRows, height, err)
	}

	collectFramebufferStats(&stats, fb)
	stats.Elapsed = time.Since(startTime)
	rt.logger.Printf("Render completed in %v (%d rays, %d highlights clipped)\n",
		stats.Elapsed, stats.RaysCast, stats.ClippedPixels)

	return fb, stats, nil
}

package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	TotalRows     int           // Rows completed by the worker pool
	NumWorkers    int           // Workers used
	RaysCast      int           // Camera, secondary and shadow rays traced
	ClippedPixels int           // Pixels whose brightest channel exceeded 1.0
	MaxChannel    float64       // Brightest channel value before tone mapping
	Elapsed       time.Duration // Wall time of the render
}

// collectFramebufferStats records highlight statistics for a finished render
func collectFramebufferStats(stats *RenderStats, fb *Framebuffer) {
	stats.TotalPixels = len(fb.Pixels)
	for _, pixel := range fb.Pixels {
		brightest := pixel.MaxComponent()
		stats.MaxChannel = max(stats.MaxChannel, brightest)
		if brightest > 1.0 {
			stats.ClippedPixels++
		}
	}
}

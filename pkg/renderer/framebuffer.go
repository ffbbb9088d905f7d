package renderer

import (
	"image"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// Framebuffer holds one unclamped color per pixel, row-major from the top
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (i, j)
func (fb *Framebuffer) At(i, j int) core.Vec3 {
	return fb.Pixels[i+j*fb.Width]
}

// Set stores the color of pixel (i, j)
func (fb *Framebuffer) Set(i, j int, color core.Vec3) {
	fb.Pixels[i+j*fb.Width] = color
}

// ToImage tone maps every pixel into an 8-bit RGBA image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		for i := 0; i < fb.Width; i++ {
			img.SetRGBA(i, j, ToneMap(fb.At(i, j)))
		}
	}
	return img
}

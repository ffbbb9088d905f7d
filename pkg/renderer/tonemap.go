package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// SoftClip rescales an over-bright color so its brightest channel is 1.0.
// Colors with every channel at or below 1.0 are returned unchanged.
func SoftClip(c core.Vec3) core.Vec3 {
	if brightest := c.MaxComponent(); brightest > 1.0 {
		return c.Multiply(1.0 / brightest)
	}
	return c
}

// ToneMap converts a linear color to 8-bit RGBA: soft-clip highlights, then
// clamp each channel to [0, 1] and round to the byte range
func ToneMap(c core.Vec3) color.RGBA {
	c = SoftClip(c).Clamp(0.0, 1.0)
	return color.RGBA{
		R: channelToByte(c.X),
		G: channelToByte(c.Y),
		B: channelToByte(c.Z),
		A: 255,
	}
}

// channelToByte scales in float32. In float64 255*0.7 is exactly 178.5 and
// would round up; in float32 it is 178.49999 and rounds to 178.
func channelToByte(v float64) uint8 {
	return uint8(math.Round(float64(float32(255) * float32(v))))
}

package core

// Vec4 is a four-component tuple. The renderer only uses it to carry
// per-material albedo weights, so no arithmetic is defined on it.
type Vec4 struct {
	X, Y, Z, W float64
}

// NewVec4 creates a new Vec4
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

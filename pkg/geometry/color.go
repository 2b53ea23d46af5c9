package geometry

// Color is an 8-bit RGBA colour
type Color struct {
	R, G, B, A uint8
}

// Commonly used colours
var (
	Red    = Color{R: 255, A: 255}
	Blue   = Color{B: 255, A: 255}
	Gray   = Color{R: 128, G: 128, B: 128, A: 255}
	Yellow = Color{R: 255, G: 255, A: 255}
)

// NewColor creates a colour from its components
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ARGB packs the colour as (A<<24)|(R<<16)|(G<<8)|B
func (c Color) ARGB() int32 {
	return int32(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// ColorFromARGB unpacks a colour packed by ARGB
func ColorFromARGB(argb int32) Color {
	u := uint32(argb)
	return Color{
		A: uint8(u >> 24),
		R: uint8(u >> 16),
		G: uint8(u >> 8),
		B: uint8(u),
	}
}

// WithAlpha returns the colour with its alpha replaced
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

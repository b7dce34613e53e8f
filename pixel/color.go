package pixel

import "image/color"

// Models for the native color types.
var (
	RGB565Model   color.Model = color.ModelFunc(rgb565Model)
	BGRA8888Model color.Model = color.ModelFunc(bgra8888Model)
)

// RGB565 represents a 16-bit 5-6-5 RGB color.
type RGB565 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c RGB565) RGBA() (r, g, b, a uint32) {
	p := RGB565ToRGBA(c.V)
	r = uint32(p.R)
	g = uint32(p.G)
	b = uint32(p.B)
	// Duplicate the whole value in the high byte.
	r |= r << 8
	g |= g << 8
	b |= b << 8
	return r, g, b, 0xffff
}

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(RGB565); ok {
		return c
	}
	p := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB565{RGBAToRGB565(p.R, p.G, p.B)}
}

// RGB565ToRGBA expands a packed RGB565 value. The fields are shifted into the
// top of each byte without replicating the high bits, alpha is opaque.
func RGB565ToRGBA(v uint16) color.NRGBA {
	return color.NRGBA{
		R: uint8(v>>11) << 3,
		G: uint8(v>>5&0x3f) << 2,
		B: uint8(v&0x1f) << 3,
		A: 0xff,
	}
}

// RGBAToRGB565 truncates each channel to its field width and packs them.
func RGBAToRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// BGRA8888 represents a 32-bit color with blue in the least significant byte
// and alpha in the most significant byte.
type BGRA8888 struct {
	// CAlpha, 8, CRed, 8, CGreen, 8, CBlue, 8
	V uint32
}

func (c BGRA8888) RGBA() (r, g, b, a uint32) {
	return BGRA8888ToRGBA(c.V).RGBA()
}

func bgra8888Model(c color.Color) color.Color {
	if _, ok := c.(BGRA8888); ok {
		return c
	}
	return BGRA8888{RGBAToBGRA8888(color.NRGBAModel.Convert(c).(color.NRGBA))}
}

// BGRA8888ToRGBA unpacks a BGRA8888 value.
func BGRA8888ToRGBA(v uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// RGBAToBGRA8888 packs c, it is the exact inverse of [BGRA8888ToRGBA].
func RGBAToBGRA8888(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

package pixel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BeatGlow/fbtools"
)

// Format is a native pixel encoding.
type Format uint8

// Supported formats.
const (
	FormatUnknown  Format = iota
	FormatRGB565          // 16-bit 5-6-5 RGB
	FormatBGRA8888        // 32-bit BGRA, blue first in memory
)

// FormatForDepth returns the format stored with the given number of bytes per pixel.
func FormatForDepth(bytesPerPixel int) (Format, error) {
	switch bytesPerPixel {
	case 2:
		return FormatRGB565, nil
	case 4:
		return FormatBGRA8888, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %d bytes per pixel", fbtools.ErrUnsupportedFormat, bytesPerPixel)
	}
}

// BytesPerPixel is the storage size of one pixel, 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB565:
		return 2
	case FormatBGRA8888:
		return 4
	default:
		return 0
	}
}

// Model is the color model of the format.
func (f Format) Model() color.Model {
	switch f {
	case FormatRGB565:
		return RGB565Model
	case FormatBGRA8888:
		return BGRA8888Model
	default:
		return color.NRGBAModel
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGB565:
		return "RGB565"
	case FormatBGRA8888:
		return "BGRA8888"
	default:
		return "unknown"
	}
}

// ParseHex parses a "#rrggbb" or "#rrggbbaa" color. Colors without alpha are opaque.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color %q", fbtools.ErrBadParams, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color %q", fbtools.ErrBadParams, s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Package fbtools provides raw access to Linux framebuffer devices and a
// portable RGBA raster, plus the pixel conversions and drawing primitives
// that bridge the two.
//
// The packages are layered:
//
//   - [github.com/BeatGlow/fbtools/pixel] converts between native pixel
//     encodings (RGB565, BGRA8888) and the canonical [color.NRGBA] pixel.
//   - [github.com/BeatGlow/fbtools/raster] is an in-memory grid of canonical pixels.
//   - [github.com/BeatGlow/fbtools/framebuffer] maps a framebuffer device.
//   - [github.com/BeatGlow/fbtools/draw] draws lines and rectangles.
//   - [github.com/BeatGlow/fbtools/blit] copies whole pixel grids between a
//     device and a raster.
package fbtools

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Errors
var (
	// ErrBadParams is returned for invalid arguments. The more specific errors
	// below all wrap it.
	ErrBadParams = errors.New("fbtools: bad parameters")

	// ErrOutOfRange is returned when a coordinate is outside a pixel grid.
	ErrOutOfRange = fmt.Errorf("%w: coordinate out of range", ErrBadParams)

	// ErrUnsupportedFormat is returned for pixel depths other than 16 and 32 bits.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported pixel format", ErrBadParams)

	// ErrClosed is returned when using a device or raster that was already released.
	ErrClosed = fmt.Errorf("%w: buffer is closed", ErrBadParams)

	// ErrSizeMismatch is returned when two pixel grids must have equal dimensions.
	ErrSizeMismatch = fmt.Errorf("%w: dimension mismatch", ErrBadParams)

	// ErrDeviceUnavailable is returned when a device can't be opened, queried or mapped.
	ErrDeviceUnavailable = errors.New("fbtools: device unavailable")

	// ErrAllocation is returned when a pixel buffer can't be allocated.
	ErrAllocation = errors.New("fbtools: allocation failure")
)

// Surface is a grid of pixels with bounds-checked access.
//
// Bounds always starts at the origin. Pixel and SetPixel fail with an error
// wrapping [ErrBadParams] and never touch memory when they do.
type Surface interface {
	// Bounds is the surface bounding box.
	Bounds() image.Rectangle

	// Pixel returns the canonical color at (x, y).
	Pixel(x, y int) (color.NRGBA, error)

	// SetPixel sets the color at (x, y).
	SetPixel(x, y int, c color.NRGBA) error
}

// OutOfRange returns an error wrapping [ErrOutOfRange] for (x, y) outside r.
func OutOfRange(x, y int, r image.Rectangle) error {
	return fmt.Errorf("%w: (%d,%d) not in %s", ErrOutOfRange, x, y, r)
}

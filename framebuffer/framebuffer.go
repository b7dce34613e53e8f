// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The framebuffer
// can be opened with the [Open] call, which maps the device memory into the process.
// Writes are visible on screen immediately, there is no double buffering.
//
// Only 16-bit RGB565 and 32-bit BGRA8888 framebuffers can be read and written.
// Devices with other depths can be opened and queried, pixel access fails with
// [fbtools.ErrUnsupportedFormat].
package framebuffer

import (
	"fmt"
	"strings"
)

// DefaultDevice is the first Linux framebuffer device.
const DefaultDevice = "/dev/fb0"

// BitField describes the position of a color channel within a pixel.
type BitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MSBRight bool   // Most significant bit is right
}

func (f BitField) String() string {
	return fmt.Sprintf("%d@%d", f.Length, f.Offset)
}

// Geometry describes the visible screen and its memory layout.
type Geometry struct {
	// ID is the driver identification string, eg "EFI VGA".
	ID string

	// Width and Height of the visible screen in pixels.
	Width, Height int

	// BitsPerPixel is the color depth.
	BitsPerPixel int

	// BytesPerPixel is BitsPerPixel / 8.
	BytesPerPixel int

	// Stride is the number of bytes between vertically adjacent pixels. It may
	// exceed Width * BytesPerPixel.
	Stride int

	// Channel layout, as reported by the driver.
	Red, Green, Blue, Alpha BitField
}

// Size is the number of bytes covered by the visible screen.
func (g Geometry) Size() int {
	return g.Height * g.Stride
}

func (g Geometry) String() string {
	var s strings.Builder
	if g.ID != "" {
		fmt.Fprintf(&s, "%s ", g.ID)
	}
	fmt.Fprintf(&s, "%dx%d %d bpp stride=%d rgba=%s/%s/%s/%s",
		g.Width, g.Height, g.BitsPerPixel, g.Stride,
		g.Red, g.Green, g.Blue, g.Alpha)
	return s.String()
}

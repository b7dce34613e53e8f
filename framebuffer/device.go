package framebuffer

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/pixel"
)

// Device is an open framebuffer. The pixel memory is owned by the device and
// never handed out; all access is bounds checked.
//
// A Device is not safe for concurrent use.
type Device struct {
	geometry Geometry
	format   pixel.Format
	view     pixel.Image // nil for unsupported formats
	mem      []byte
	release  func() error
}

// NewMemory returns a device backed by process memory instead of a hardware
// framebuffer, for headless rendering and tests. A zero stride means rows are
// tightly packed.
func NewMemory(width, height, stride int, format pixel.Format) (*Device, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %s", fbtools.ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: device size %dx%d", fbtools.ErrBadParams, width, height)
	}
	if stride == 0 {
		stride = width * bpp
	}
	if stride < width*bpp {
		return nil, fmt.Errorf("%w: stride %d is less than %d bytes per row", fbtools.ErrBadParams, stride, width*bpp)
	}
	if height > math.MaxInt32/stride {
		return nil, fmt.Errorf("%w: %d rows of %d bytes", fbtools.ErrAllocation, height, stride)
	}

	g := Geometry{
		ID:            "memory",
		Width:         width,
		Height:        height,
		BitsPerPixel:  bpp * 8,
		BytesPerPixel: bpp,
		Stride:        stride,
	}
	switch format {
	case pixel.FormatRGB565:
		g.Red = BitField{Offset: 11, Length: 5}
		g.Green = BitField{Offset: 5, Length: 6}
		g.Blue = BitField{Offset: 0, Length: 5}
	case pixel.FormatBGRA8888:
		g.Red = BitField{Offset: 16, Length: 8}
		g.Green = BitField{Offset: 8, Length: 8}
		g.Blue = BitField{Offset: 0, Length: 8}
		g.Alpha = BitField{Offset: 24, Length: 8}
	}
	return newDevice(g, make([]byte, g.Size()), func() error { return nil })
}

// newDevice wraps mapped memory. The caller keeps ownership of mem and release
// when newDevice fails.
func newDevice(g Geometry, mem []byte, release func() error) (*Device, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("%w: screen size %dx%d", fbtools.ErrBadParams, g.Width, g.Height)
	}
	if g.Stride < g.Width*g.BytesPerPixel {
		return nil, fmt.Errorf("%w: stride %d is less than %d bytes per row", fbtools.ErrBadParams, g.Stride, g.Width*g.BytesPerPixel)
	}
	if len(mem) < g.Size() {
		return nil, fmt.Errorf("%w: %d bytes mapped, need %d", fbtools.ErrBadParams, len(mem), g.Size())
	}

	d := &Device{
		geometry: g,
		mem:      mem,
		release:  release,
	}

	var err error
	if d.format, err = pixel.FormatForDepth(g.BytesPerPixel); err != nil {
		Logger().Warn("framebuffer: pixel access disabled", slog.String("device", g.ID), slog.Int("bpp", g.BitsPerPixel))
		return d, nil
	}
	if d.view, err = pixel.NewImage(d.format, mem, g.Width, g.Height, g.Stride, binary.NativeEndian); err != nil {
		return nil, err
	}
	return d, nil
}

// Geometry returns the screen geometry.
func (d *Device) Geometry() Geometry {
	return d.geometry
}

// Format returns the native pixel format, [pixel.FormatUnknown] when pixel access is not supported.
func (d *Device) Format() pixel.Format {
	return d.format
}

// Width in pixels.
func (d *Device) Width() int { return d.geometry.Width }

// Height in pixels.
func (d *Device) Height() int { return d.geometry.Height }

// Stride in bytes.
func (d *Device) Stride() int { return d.geometry.Stride }

// BytesPerPixel is the size of a native pixel.
func (d *Device) BytesPerPixel() int { return d.geometry.BytesPerPixel }

// Bounds is the visible screen bounding box.
func (d *Device) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.geometry.Width, d.geometry.Height)
}

// PixelOffset returns the byte offset of the pixel at (x, y) in device memory.
func (d *Device) PixelOffset(x, y int) (int, error) {
	if d.mem == nil {
		return 0, fbtools.ErrClosed
	}
	if x < 0 || y < 0 || x >= d.geometry.Width || y >= d.geometry.Height {
		return 0, fbtools.OutOfRange(x, y, d.Bounds())
	}
	return y*d.geometry.Stride + x*d.geometry.BytesPerPixel, nil
}

func (d *Device) check(x, y int) error {
	if _, err := d.PixelOffset(x, y); err != nil {
		return err
	}
	if d.view == nil {
		return fmt.Errorf("%w: %d bits per pixel", fbtools.ErrUnsupportedFormat, d.geometry.BitsPerPixel)
	}
	return nil
}

// Pixel returns the color at (x, y), converted from the native format.
func (d *Device) Pixel(x, y int) (color.NRGBA, error) {
	if err := d.check(x, y); err != nil {
		return color.NRGBA{}, err
	}
	return d.view.NRGBAAt(x, y), nil
}

// SetPixel converts c to the native format and stores it at (x, y). RGB565
// devices drop the alpha channel.
func (d *Device) SetPixel(x, y int, c color.NRGBA) error {
	if err := d.check(x, y); err != nil {
		return err
	}
	d.view.SetNRGBA(x, y, c)
	return nil
}

// Close releases the device memory and closes the device. Closing twice is an error.
func (d *Device) Close() error {
	if d.mem == nil {
		return fbtools.ErrClosed
	}
	release := d.release
	d.mem, d.view, d.release = nil, nil, nil
	return release()
}

// Interface checks.
var _ fbtools.Surface = (*Device)(nil)

package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/fbtools"
)

// Image is a native format image backed by a strided byte buffer.
type Image interface {
	draw.Image

	// PixOffset returns the index of the first byte of the pixel at (x, y).
	PixOffset(x, y int) int

	// NRGBAAt returns the canonical color at (x, y).
	NRGBAAt(x, y int) color.NRGBA

	// SetNRGBA sets the canonical color at (x, y).
	SetNRGBA(x, y int, c color.NRGBA)
}

// Buffer holds the pixel values and is a container that is used by all image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

// NewImage returns an image of format f on top of pix. The buffer is shared,
// not copied. A zero stride means rows are tightly packed, a nil order means
// the host byte order.
func NewImage(f Format, pix []byte, w, h, stride int, order binary.ByteOrder) (Image, error) {
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %s", fbtools.ErrUnsupportedFormat, f)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", fbtools.ErrBadParams, w, h)
	}
	if stride == 0 {
		stride = w * bpp
	}
	if stride < w*bpp {
		return nil, fmt.Errorf("%w: stride %d is less than %d bytes per row", fbtools.ErrBadParams, stride, w*bpp)
	}
	if need := (h-1)*stride + w*bpp; len(pix) < need {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d", fbtools.ErrBadParams, len(pix), need)
	}
	if order == nil {
		order = binary.NativeEndian
	}

	buf := Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    pix,
		Stride: stride,
	}
	switch f {
	case FormatRGB565:
		return &RGB565Image{Buffer: buf, Order: order}, nil
	default:
		return &BGRA8888Image{Buffer: buf, Order: order}, nil
	}
}

// RGB565Image is a 16-bits per pixel 5-6-5-bit RGB image.
type RGB565Image struct {
	Buffer
	Order binary.ByteOrder
}

func (p *RGB565Image) ColorModel() color.Model {
	return RGB565Model
}

func (p *RGB565Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *RGB565Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return RGB565{p.Order.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *RGB565Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	v := rgb565Model(c).(RGB565).V
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], v)
}

func (p *RGB565Image) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.NRGBA{}
	}
	return RGB565ToRGBA(p.Order.Uint16(p.Pix[p.PixOffset(x, y):]))
}

func (p *RGB565Image) SetNRGBA(x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint16(p.Pix[p.PixOffset(x, y):], RGBAToRGB565(c.R, c.G, c.B))
}

// BGRA8888Image is a 32-bits per pixel BGRA image.
type BGRA8888Image struct {
	Buffer
	Order binary.ByteOrder
}

func (p *BGRA8888Image) ColorModel() color.Model {
	return BGRA8888Model
}

func (p *BGRA8888Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *BGRA8888Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return BGRA8888{p.Order.Uint32(p.Pix[p.PixOffset(x, y):])}
}

func (p *BGRA8888Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	v := bgra8888Model(c).(BGRA8888).V
	p.Order.PutUint32(p.Pix[p.PixOffset(x, y):], v)
}

func (p *BGRA8888Image) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.NRGBA{}
	}
	return BGRA8888ToRGBA(p.Order.Uint32(p.Pix[p.PixOffset(x, y):]))
}

func (p *BGRA8888Image) SetNRGBA(x, y int, c color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Order.PutUint32(p.Pix[p.PixOffset(x, y):], RGBAToBGRA8888(c))
}

// Interface checks.
var (
	_ Image = (*RGB565Image)(nil)
	_ Image = (*BGRA8888Image)(nil)
)

// Package raster implements an in-memory grid of canonical RGBA pixels.
//
// A [Buffer] uses the same byte layout as [image.NRGBA]: four bytes per pixel
// in R, G, B, A order, rows stored top to bottom without padding.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/imagefile"
)

// MaxPixels is the largest number of pixels a Buffer may hold.
const MaxPixels = 1 << 28

// Buffer is a width x height grid of canonical pixels, origin top-left.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// New returns a buffer filled with opaque white.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster size %dx%d", fbtools.ErrBadParams, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: raster size %dx%d exceeds %d pixels", fbtools.ErrAllocation, width, height, MaxPixels)
	}

	pix := make([]byte, width*height*4)
	for i := range pix {
		pix[i] = 0xff
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    pix,
	}, nil
}

// FromEncoded returns a buffer initialised from decoded image bytes, see [Buffer.LoadEncoded].
func FromEncoded(width, height int, data []byte, channels int) (*Buffer, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if err = b.LoadEncoded(width, height, data, channels); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads an image file into a new buffer.
func Load(path string) (*Buffer, error) {
	d, err := imagefile.Decode(path)
	if err != nil {
		return nil, err
	}
	return FromEncoded(d.Width, d.Height, d.Pix, d.Channels)
}

// Save writes the buffer to an image file, the format follows the file extension.
func (b *Buffer) Save(path string) error {
	if b.pix == nil {
		return fbtools.ErrClosed
	}
	return imagefile.Encode(path, b.pix, b.width, b.height)
}

// LoadEncoded replaces all pixels with decoded image data. Four channel data
// is already canonical and copied as is, three channel data is expanded with
// an opaque alpha. Other channel counts are rejected.
func (b *Buffer) LoadEncoded(width, height int, data []byte, channels int) error {
	if b.pix == nil {
		return fbtools.ErrClosed
	}
	if width != b.width || height != b.height {
		return fmt.Errorf("%w: %dx%d data for %dx%d raster", fbtools.ErrSizeMismatch, width, height, b.width, b.height)
	}
	if channels != 3 && channels != 4 {
		return fmt.Errorf("%w: %d channels", fbtools.ErrBadParams, channels)
	}
	n := width * height
	if len(data) < n*channels {
		return fmt.Errorf("%w: %d bytes of data, need %d", fbtools.ErrBadParams, len(data), n*channels)
	}

	if channels == 4 {
		copy(b.pix, data[:n*4])
		return nil
	}
	for i, j := 0, 0; i < n*4; i, j = i+4, j+3 {
		b.pix[i+0] = data[j+0]
		b.pix[i+1] = data[j+1]
		b.pix[i+2] = data[j+2]
		b.pix[i+3] = 0xff
	}
	return nil
}

// Width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bounds is the buffer bounding box.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Pix returns the raw canonical bytes, nil after Release.
func (b *Buffer) Pix() []byte {
	return b.pix
}

func (b *Buffer) offset(x, y int) (int, error) {
	if b.pix == nil {
		return 0, fbtools.ErrClosed
	}
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, fbtools.OutOfRange(x, y, b.Bounds())
	}
	return (y*b.width + x) * 4, nil
}

// Pixel returns the color at (x, y).
func (b *Buffer) Pixel(x, y int) (color.NRGBA, error) {
	i, err := b.offset(x, y)
	if err != nil {
		return color.NRGBA{}, err
	}
	s := b.pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}, nil
}

// SetPixel sets the color at (x, y).
func (b *Buffer) SetPixel(x, y int, c color.NRGBA) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	s := b.pix[i : i+4 : i+4]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	s[3] = c.A
	return nil
}

// Release drops the pixel array. Releasing twice is an error.
func (b *Buffer) Release() error {
	if b.pix == nil {
		return fbtools.ErrClosed
	}
	b.pix = nil
	return nil
}

// ColorModel implements [image.Image].
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements [image.Image], it returns transparent black outside the buffer.
func (b *Buffer) At(x, y int) color.Color {
	c, _ := b.Pixel(x, y)
	return c
}

// Interface checks.
var (
	_ fbtools.Surface = (*Buffer)(nil)
	_ image.Image     = (*Buffer)(nil)
)

// Package imagefile reads and writes image files as canonical RGBA bytes.
//
// Decoding accepts every format registered with [image.Decode]; this package
// registers PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding picks the format from
// the file extension and always writes 4-channel RGBA: .png, .bmp, .tif and
// .tiff are supported.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnknownFormat is returned when encoding to an unsupported file extension.
var ErrUnknownFormat = errors.New("imagefile: unknown image format")

// Decoded is a decoded image in canonical byte layout.
type Decoded struct {
	// Pix are the pixels, row-major, Channels bytes per pixel in R, G, B(, A) order.
	Pix []byte

	// Width and Height in pixels.
	Width, Height int

	// Channels is 3 for opaque images and 4 for images with an alpha channel.
	Channels int
}

// Decode reads the image file at path.
func Decode(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	d, err := DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("imagefile: decode %s: %w", path, err)
	}
	return d, nil
}

// DecodeReader decodes an image from r.
func DecodeReader(r io.Reader) (*Decoded, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromImage(m), nil
}

type opaquer interface {
	Opaque() bool
}

func fromImage(m image.Image) *Decoded {
	var (
		b = m.Bounds()
		d = &Decoded{
			Width:    b.Dx(),
			Height:   b.Dy(),
			Channels: 4,
		}
	)
	if o, ok := m.(opaquer); ok && o.Opaque() {
		d.Channels = 3
	}

	if n, ok := m.(*image.NRGBA); ok && d.Channels == 4 {
		d.Pix = make([]byte, 0, d.Width*d.Height*4)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := n.PixOffset(b.Min.X, y)
			d.Pix = append(d.Pix, n.Pix[i:i+d.Width*4]...)
		}
		return d
	}

	d.Pix = make([]byte, 0, d.Width*d.Height*d.Channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			d.Pix = append(d.Pix, c.R, c.G, c.B)
			if d.Channels == 4 {
				d.Pix = append(d.Pix, c.A)
			}
		}
	}
	return d
}

// Encode writes 4-channel RGBA pixels of a width x height image to path.
func Encode(path string, pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return fmt.Errorf("imagefile: invalid %dx%d image with %d bytes", width, height, len(pix))
	}

	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	m := &image.NRGBA{
		Pix:    pix[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	return writeFile(path, m, encode)
}

// writeFile encodes m to path. A partially written file is removed.
func writeFile(path string, m image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err = encode(f, m); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("imagefile: encode %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

package imagefile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeReaderChannels(t *testing.T) {
	tests := []struct {
		name         string
		alpha        uint8
		wantChannels int
	}{
		{"opaque", 0xff, 3},
		{"translucent", 0x40, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					m.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 9, A: test.alpha})
				}
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, m); err != nil {
				it.Fatal(err)
			}

			d, err := DecodeReader(&buf)
			if err != nil {
				it.Fatal(err)
			}
			if d.Width != 3 || d.Height != 2 {
				it.Fatalf("expected 3x2, got %dx%d", d.Width, d.Height)
			}
			if d.Channels != test.wantChannels {
				it.Fatalf("expected %d channels, got %d", test.wantChannels, d.Channels)
			}
			if v := len(d.Pix); v != 3*2*d.Channels {
				it.Fatalf("expected %d bytes, got %d", 3*2*d.Channels, v)
			}
			// Pixel (2,1).
			i := (1*3 + 2) * d.Channels
			if d.Pix[i] != 2 || d.Pix[i+1] != 1 || d.Pix[i+2] != 9 {
				it.Errorf("unexpected pixel % x", d.Pix[i:i+d.Channels])
			}
			if d.Channels == 4 && d.Pix[i+3] != test.alpha {
				it.Errorf("expected alpha %#02x, got %#02x", test.alpha, d.Pix[i+3])
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error decoding a missing file")
	}
	if _, err := DecodeReader(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestEncodeErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Encode(filepath.Join(dir, "out.xyz"), make([]byte, 16), 2, 2); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected %v, got %v", ErrUnknownFormat, err)
	}
	if err := Encode(filepath.Join(dir, "out.png"), make([]byte, 15), 2, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
	if err := Encode(filepath.Join(dir, "out.png"), nil, 0, 2); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestEncodeFailureRemovesFile(t *testing.T) {
	var (
		path    = filepath.Join(t.TempDir(), "broken.png")
		errDisk = errors.New("disk full")
		m       = image.NewNRGBA(image.Rect(0, 0, 2, 2))
	)
	err := writeFile(path, m, func(w io.Writer, _ image.Image) error {
		if _, err := w.Write([]byte("\x89PNG")); err != nil {
			return err
		}
		return errDisk
	})
	if !errors.Is(err, errDisk) {
		t.Fatalf("expected encoder error, got %v", err)
	}
	if _, err = os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %s to be removed, got %v", path, err)
	}
}

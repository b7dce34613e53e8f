package draw

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/framebuffer"
	"github.com/BeatGlow/fbtools/pixel"
	"github.com/BeatGlow/fbtools/raster"
)

// red and green survive RGB565 quantization unchanged.
var (
	red   = color.NRGBA{R: 0xf8, A: 0xff}
	green = color.NRGBA{G: 0xfc, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newRaster(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newDevice(t *testing.T, w, h int, f pixel.Format) *framebuffer.Device {
	t.Helper()
	d, err := framebuffer.NewMemory(w, h, 0, f)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// count returns the number of pixels with color c and verifies that all
// others have color bg.
func count(t *testing.T, s fbtools.Surface, c, bg color.NRGBA) int {
	t.Helper()
	var n int
	r := s.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v, err := s.Pixel(x, y)
			if err != nil {
				t.Fatal(err)
			}
			switch v {
			case c:
				n++
			case bg:
			default:
				t.Fatalf("pixel (%d,%d) is %+v, expected %+v or %+v", x, y, v, c, bg)
			}
		}
	}
	return n
}

func TestFillRect(t *testing.T) {
	tests := []struct {
		x, y, w, h int
	}{
		{0, 0, 30, 20},
		{5, 3, 10, 4},
		{29, 19, 1, 1},
		{0, 10, 30, 1},
		{12, 0, 1, 20},
	}
	for _, test := range tests {
		t.Run("", func(it *testing.T) {
			b := newRaster(it, 30, 20)
			if err := FillRect(b, test.x, test.y, test.w, test.h, red); err != nil {
				it.Fatal(err)
			}
			for y := 0; y < 20; y++ {
				for x := 0; x < 30; x++ {
					want := white
					if (image.Point{X: x, Y: y}).In(image.Rect(test.x, test.y, test.x+test.w, test.y+test.h)) {
						want = red
					}
					if v, _ := b.Pixel(x, y); v != want {
						it.Fatalf("pixel (%d,%d) is %+v, expected %+v", x, y, v, want)
					}
				}
			}
		})
	}
}

func TestEmptyIsNoop(t *testing.T) {
	b := newRaster(t, 30, 20)
	// Zero extents never fail, even at coordinates outside the surface.
	checks := []error{
		FillRect(b, 0, 0, 0, 20, red),
		FillRect(b, 0, 0, 30, 0, red),
		FillRect(b, 100, 100, 0, 0, red),
		StrokeRect(b, 0, 0, 0, 5, red),
		StrokeRect(b, 0, 0, 5, 0, red),
		HorizontalLine(b, 5, 5, 0, red),
		VerticalLine(b, 5, 5, 0, red),
		HorizontalLine(b, 30, 20, 0, red),
	}
	for i, err := range checks {
		if err != nil {
			t.Errorf("check %d: expected no-op, got %v", i, err)
		}
	}
	if n := count(t, b, red, white); n != 0 {
		t.Errorf("expected no pixels drawn, got %d", n)
	}
}

func TestOutOfBounds(t *testing.T) {
	b := newRaster(t, 30, 20)
	checks := []error{
		FillRect(b, 1, 0, 30, 1, red),
		FillRect(b, 0, 1, 1, 20, red),
		FillRect(b, -1, 0, 2, 2, red),
		FillRect(b, 0, 0, -2, 2, red),
		StrokeRect(b, 25, 15, 6, 5, red),
		StrokeRect(b, 25, 15, 5, 6, red),
		HorizontalLine(b, 25, 0, 6, red),
		HorizontalLine(b, 0, 20, 1, red),
		HorizontalLine(b, 0, 0, -1, red),
		VerticalLine(b, 0, 15, 6, red),
		VerticalLine(b, 30, 0, 1, red),
		Line(b, image.Pt(0, 0), image.Pt(30, 19), red),
		Line(b, image.Pt(-1, 0), image.Pt(29, 19), red),
	}
	for i, err := range checks {
		if !errors.Is(err, fbtools.ErrBadParams) {
			t.Errorf("check %d: expected bad params, got %v", i, err)
		}
	}
	if n := count(t, b, red, white); n != 0 {
		t.Errorf("expected rejected calls to draw nothing, got %d pixels", n)
	}
}

func TestLines(t *testing.T) {
	b := newRaster(t, 30, 20)
	if err := HorizontalLine(b, 2, 3, 28, red); err != nil {
		t.Fatal(err)
	}
	if err := VerticalLine(b, 0, 0, 20, red); err != nil {
		t.Fatal(err)
	}
	if n := count(t, b, red, white); n != 48 {
		t.Errorf("expected 48 pixels, got %d", n)
	}
	for x := 2; x < 30; x++ {
		if v, _ := b.Pixel(x, 3); v != red {
			t.Fatalf("pixel (%d,3) not drawn", x)
		}
	}
}

func TestStrokeRect(t *testing.T) {
	for _, f := range []pixel.Format{pixel.FormatRGB565, pixel.FormatBGRA8888} {
		t.Run(f.String(), func(it *testing.T) {
			d := newDevice(it, 30, 30, f)
			if err := FillRect(d, 0, 0, 30, 30, green); err != nil {
				it.Fatal(err)
			}
			if err := StrokeRect(d, 0, 0, 10, 10, red); err != nil {
				it.Fatal(err)
			}
			if n := count(it, d, red, green); n != 36 {
				it.Fatalf("expected 36 border pixels, got %d", n)
			}
			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					border := x == 0 || y == 0 || x == 9 || y == 9
					if v, _ := d.Pixel(x, y); (v == red) != border {
						it.Fatalf("pixel (%d,%d) is %+v, border=%t", x, y, v, border)
					}
				}
			}
		})
	}
}

func TestStrokeRectDegenerate(t *testing.T) {
	b := newRaster(t, 30, 20)
	if err := StrokeRect(b, 3, 3, 1, 1, red); err != nil {
		t.Fatal(err)
	}
	if n := count(t, b, red, white); n != 1 {
		t.Errorf("expected 1 pixel, got %d", n)
	}
	if err := StrokeRect(b, 0, 10, 30, 1, red); err != nil {
		t.Fatal(err)
	}
	if n := count(t, b, red, white); n != 31 {
		t.Errorf("expected 31 pixels, got %d", n)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		a, b image.Point
		want int
	}{
		{image.Pt(0, 0), image.Pt(0, 0), 1},
		{image.Pt(0, 0), image.Pt(9, 0), 10},
		{image.Pt(3, 9), image.Pt(3, 0), 10},
		{image.Pt(0, 0), image.Pt(9, 9), 10},
		{image.Pt(9, 0), image.Pt(0, 9), 10},
		{image.Pt(0, 0), image.Pt(19, 4), 20},
		{image.Pt(0, 9), image.Pt(19, 4), 20},
		{image.Pt(2, 0), image.Pt(5, 19), 20},
		{image.Pt(5, 0), image.Pt(2, 19), 20},
	}
	for _, test := range tests {
		t.Run(test.a.String()+"-"+test.b.String(), func(it *testing.T) {
			b := newRaster(it, 30, 20)
			if err := Line(b, test.a, test.b, red); err != nil {
				it.Fatal(err)
			}
			if n := count(it, b, red, white); n != test.want {
				it.Errorf("expected %d pixels, got %d", test.want, n)
			}
			for _, p := range []image.Point{test.a, test.b} {
				if v, _ := b.Pixel(p.X, p.Y); v != red {
					it.Errorf("endpoint %s not drawn", p)
				}
			}
		})
	}
}

type failingSurface struct {
	image.Rectangle
	writes int
}

func (s *failingSurface) Bounds() image.Rectangle { return s.Rectangle }

func (s *failingSurface) Pixel(x, y int) (color.NRGBA, error) {
	return color.NRGBA{}, fbtools.ErrUnsupportedFormat
}

func (s *failingSurface) SetPixel(x, y int, c color.NRGBA) error {
	s.writes++
	return fbtools.ErrUnsupportedFormat
}

func TestSurfaceError(t *testing.T) {
	s := &failingSurface{Rectangle: image.Rect(0, 0, 10, 10)}
	if err := FillRect(s, 0, 0, 10, 10, red); !errors.Is(err, fbtools.ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
	if err := Line(s, image.Pt(0, 0), image.Pt(9, 5), red); !errors.Is(err, fbtools.ErrUnsupportedFormat) {
		t.Errorf("expected unsupported format, got %v", err)
	}
	if s.writes != 2 {
		t.Errorf("expected drawing to stop at the first failed write, got %d writes", s.writes)
	}
}

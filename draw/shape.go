// Package draw implements lines and rectangles on a [fbtools.Surface].
//
// Every primitive validates its whole extent before writing, so a call
// either draws completely or fails with [fbtools.ErrBadParams] and leaves the
// surface untouched. Zero length lines and empty rectangles draw nothing.
package draw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/fbtools"
)

// fits reports whether [start, start+length) lies within [0, limit) for a
// positive length, without overflowing.
func fits(start, length, limit int) bool {
	return start >= 0 && length > 0 && start <= limit-length
}

func badExtent(what string, x, y, w, h int, r image.Rectangle) error {
	return fmt.Errorf("%w: %s at (%d,%d) size %dx%d not in %s", fbtools.ErrBadParams, what, x, y, w, h, r)
}

// HorizontalLine draws a line between (x,y) and (x+length-1,y).
func HorizontalLine(dst fbtools.Surface, x, y, length int, c color.NRGBA) error {
	if length == 0 {
		return nil
	}
	r := dst.Bounds()
	if !fits(x, length, r.Dx()) || !fits(y, 1, r.Dy()) {
		return badExtent("horizontal line", x, y, length, 1, r)
	}
	return hline(dst, x, y, length, c)
}

// VerticalLine draws a line between (x,y) and (x,y+length-1).
func VerticalLine(dst fbtools.Surface, x, y, length int, c color.NRGBA) error {
	if length == 0 {
		return nil
	}
	r := dst.Bounds()
	if !fits(x, 1, r.Dx()) || !fits(y, length, r.Dy()) {
		return badExtent("vertical line", x, y, 1, length, r)
	}
	return vline(dst, x, y, length, c)
}

// FillRect draws a filled w x h rectangle with its top-left corner at (x,y).
func FillRect(dst fbtools.Surface, x, y, w, h int, c color.NRGBA) error {
	if w == 0 || h == 0 {
		return nil
	}
	r := dst.Bounds()
	if !fits(x, w, r.Dx()) || !fits(y, h, r.Dy()) {
		return badExtent("rectangle", x, y, w, h, r)
	}
	for i := 0; i < h; i++ {
		if err := hline(dst, x, y+i, w, c); err != nil {
			return err
		}
	}
	return nil
}

// StrokeRect draws the one pixel wide border of a w x h rectangle with its
// top-left corner at (x,y).
func StrokeRect(dst fbtools.Surface, x, y, w, h int, c color.NRGBA) error {
	if w == 0 || h == 0 {
		return nil
	}
	r := dst.Bounds()
	if !fits(x, w, r.Dx()) || !fits(y, h, r.Dy()) {
		return badExtent("rectangle", x, y, w, h, r)
	}
	if err := hline(dst, x, y, w, c); err != nil {
		return err
	}
	if err := hline(dst, x, y+h-1, w, c); err != nil {
		return err
	}
	if err := vline(dst, x, y, h, c); err != nil {
		return err
	}
	return vline(dst, x+w-1, y, h, c)
}

// Line draws a line between two points, both of which must be on the surface.
func Line(dst fbtools.Surface, a, b image.Point, c color.NRGBA) error {
	r := dst.Bounds()
	if !a.In(r) || !b.In(r) {
		return fmt.Errorf("%w: line from %s to %s not in %s", fbtools.ErrBadParams, a, b, r)
	}

	var err error
	bresenham(a.X, a.Y, b.X, b.Y, func(x, y int) {
		if err == nil {
			err = dst.SetPixel(x, y, c)
		}
	})
	return err
}

func hline(dst fbtools.Surface, x, y, w int, c color.NRGBA) error {
	for i := 0; i < w; i++ {
		if err := dst.SetPixel(x+i, y, c); err != nil {
			return err
		}
	}
	return nil
}

func vline(dst fbtools.Surface, x, y, h int, c color.NRGBA) error {
	for i := 0; i < h; i++ {
		if err := dst.SetPixel(x, y+i, c); err != nil {
			return err
		}
	}
	return nil
}

// Generalized with integer
func bresenham(x1, y1, x2, y2 int, set func(x, y int)) {
	var dx, dy, e, slope int

	// Because drawing p1 -> p2 is equivalent to draw p2 -> p1,
	// I sort points in x-axis order to handle only half of possible cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	// Because point is x-axis ordered, dx cannot be negative
	if dy < 0 {
		dy = -dy
	}

	switch {

	// Is line a point ?
	case x1 == x2 && y1 == y2:
		set(x1, y1)

	// Is line an horizontal ?
	case y1 == y2:
		for ; dx != 0; dx-- {
			set(x1, y1)
			x1++
		}
		set(x1, y1)

	// Is line a vertical ?
	case x1 == x2:
		if y1 > y2 {
			y1 = y2
		}
		for ; dy != 0; dy-- {
			set(x1, y1)
			y1++
		}
		set(x1, y1)

	// Is line a diagonal ?
	case dx == dy:
		if y1 < y2 {
			for ; dx != 0; dx-- {
				set(x1, y1)
				x1++
				y1++
			}
		} else {
			for ; dx != 0; dx-- {
				set(x1, y1)
				x1++
				y1--
			}
		}
		set(x1, y1)

	// wider than high ?
	case dx > dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dy, e, slope = 2*dy, dx, 2*dx
		for ; dx != 0; dx-- {
			set(x1, y1)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
		set(x2, y2)

	// higher than wide.
	default:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dx, e, slope = 2*dx, dy, 2*dy
		for ; dy != 0; dy-- {
			set(x1, y1)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
		set(x2, y2)
	}
}

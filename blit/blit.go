// Package blit copies pixels between a screen and an off-screen buffer.
//
// Both directions take any [fbtools.Surface]; in practice the screen is a
// framebuffer device and the buffer a raster. Pixels pass through
// the canonical RGBA form, so a copy between formats converts on the fly.
package blit

import (
	"fmt"
	"image"

	"github.com/BeatGlow/fbtools"
)

// Capture copies every pixel of dev into r. Both surfaces must have the same
// size, otherwise [fbtools.ErrSizeMismatch] is returned and r is unchanged.
func Capture(dev, r fbtools.Surface) error {
	src, dst := dev.Bounds(), r.Bounds()
	if !src.Size().Eq(dst.Size()) {
		return fmt.Errorf("%w: screen is %s, buffer is %s", fbtools.ErrSizeMismatch, src.Size(), dst.Size())
	}
	return copySurface(r, dst.Min, dev, src.Min, src.Size())
}

// Present copies r onto dev. Sizes may differ; only the area both surfaces
// cover, anchored at the top-left corner, is written.
func Present(dev, r fbtools.Surface) error {
	src, dst := r.Bounds(), dev.Bounds()
	size := image.Pt(min(src.Dx(), dst.Dx()), min(src.Dy(), dst.Dy()))
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	return copySurface(dev, dst.Min, r, src.Min, size)
}

func copySurface(dst fbtools.Surface, dp image.Point, src fbtools.Surface, sp image.Point, size image.Point) error {
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c, err := src.Pixel(sp.X+x, sp.Y+y)
			if err != nil {
				return err
			}
			if err = dst.SetPixel(dp.X+x, dp.Y+y, c); err != nil {
				return err
			}
		}
	}
	return nil
}

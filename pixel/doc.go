// Package pixel implements the native framebuffer pixel encodings and their
// conversion to and from the canonical 8-bit straight-alpha [color.NRGBA].
//
// This module provides color models and strided images for the RGB565 and
// BGRA8888 encodings, compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel

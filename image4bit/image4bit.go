// Package image4bit provides the 4-bit grayscale image format consumed by the
// led8x16 scan engine.
//
// Unlike packed display formats, pixels are stored one per byte so a row can
// be sliced directly into bit planes. This package provides the Gray4 color
// type and the Unpacked image implementation.
package image4bit

import (
	"image"
	"image/color"
)

// Gray4 represents a 4-bit grayscale color (0-15 intensity levels).
// Only the lower 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// RGBA converts the Gray4 color to standard RGBA.
// The 4-bit gray value (0-15) is scaled to 16-bit (0-65535).
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF, 0x5 * 0x1111 = 0x5555, etc.
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// toGray4 converts any color.Color to Gray4.
func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	// Standard luminance weighting: 0.299R + 0.587G + 0.114B.
	// RGBA returns 16-bit channels; the result is scaled down to 4 bits.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// Unpacked is a 4-bit grayscale image stored one pixel per byte.
//
// Only the low nibble of each byte is meaningful. The flat layout lets the
// scan engine read one row as a contiguous slice of brightness values.
type Unpacked struct {
	Pix    []byte          // Pixel data, one brightness value per byte
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewUnpacked creates a new Unpacked image with the specified bounds.
func NewUnpacked(r image.Rectangle) *Unpacked {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Unpacked{Rect: r}
	}
	return &Unpacked{
		Pix:    make([]byte, w*h),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Unpacked) ColorModel() color.Model {
	return Gray4Model
}

// Bounds returns the image bounds.
func (p *Unpacked) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Unpacked) At(x, y int) color.Color {
	return p.Gray4At(x, y)
}

// Gray4At returns the Gray4 color of the pixel at (x, y).
func (p *Unpacked) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray4{}
	}
	return Gray4{Y: p.Pix[p.PixOffset(x, y)] & 0x0F}
}

// Set sets the color of the pixel at (x, y).
func (p *Unpacked) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = Gray4Model.Convert(c).(Gray4).Y & 0x0F
}

// SetGray4 sets the Gray4 color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Unpacked) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = c.Y & 0x0F
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *Unpacked) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

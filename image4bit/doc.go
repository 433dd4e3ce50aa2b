// Package image4bit provides a 4-bit grayscale image format for the led8x16
// matrix driver.
//
// The matrix has 16 brightness levels per LED (0-15). Pixels are stored one
// per byte (low nibble only) so the scan engine can slice a whole row into
// bit planes without unpacking.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0    1    2    3
//	Values: 5    10   3    12
//	Bytes:  0x05 0x0A 0x03 0x0C
//
// This package provides:
//
// - Gray4: A color type representing 4-bit grayscale (0-15)
// - Gray4Model: A color model for converting standard Go colors to Gray4
// - Unpacked: An image.Image and draw.Image implementation with this layout
//
// Example usage:
//
//	// Create a 16x8 image
//	img := image4bit.NewUnpacked(image.Rect(0, 0, 16, 8))
//
//	// Set a pixel to gray level 8
//	img.SetGray4(10, 2, image4bit.Gray4{Y: 8})
//
//	// Get a pixel
//	gray := img.Gray4At(10, 2)
//	println(gray.Y)  // Output: 8
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image4bit.Gray4{Y: 15}), image.Point{}, draw.Src)
package image4bit

package image4bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestGray4RGBA(t *testing.T) {
	tests := []struct {
		name string
		gray Gray4
		want uint32
	}{
		{"black", Gray4{Y: 0}, 0x0000},
		{"dark gray", Gray4{Y: 5}, 0x5555},
		{"mid gray", Gray4{Y: 8}, 0x8888},
		{"light gray", Gray4{Y: 10}, 0xAAAA},
		{"white", Gray4{Y: 15}, 0xFFFF},
		{"mask ignored", Gray4{Y: 0x5F}, 0xFFFF}, // Only lower 4 bits used (0x5F & 0x0F = 0x0F = 15)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.gray.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.want, tt.want, tt.want, uint32(0xFFFF))
			}
		})
	}
}

func TestGray4ModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  uint8
	}{
		{"gray4 passthrough", Gray4{Y: 7}, 7},
		{"black", color.Black, 0},
		{"white", color.White, 15},
		{"gray rgb", color.RGBA{0x88, 0x88, 0x88, 0xFF}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Gray4Model.Convert(tt.input).(Gray4)
			if result.Y != tt.want {
				t.Errorf("Gray4Model.Convert(%v).Y = %d, want %d", tt.input, result.Y, tt.want)
			}
		})
	}
}

func TestNewUnpacked(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"16x8 panel", image.Rect(0, 0, 16, 8), 16, 128},
		{"4x2", image.Rect(0, 0, 4, 2), 4, 8},
		{"1x1", image.Rect(0, 0, 1, 1), 1, 1},
		{"offset rect", image.Rect(10, 20, 14, 22), 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewUnpacked(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestUnpackedByteLayout(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 4, 2))

	img.SetGray4(0, 0, Gray4{Y: 5})
	img.SetGray4(1, 0, Gray4{Y: 10})
	img.SetGray4(2, 1, Gray4{Y: 3})
	img.SetGray4(3, 1, Gray4{Y: 12})

	// One pixel per byte, row-major.
	want := []byte{5, 10, 0, 0, 0, 0, 3, 12}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], b)
		}
	}
}

func TestUnpackedSetGet(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 4, 2))

	testCases := [][4]uint8{
		{0, 1, 2, 3},
		{15, 14, 13, 12},
	}

	for y, row := range testCases {
		for x, val := range row {
			img.SetGray4(x, y, Gray4{Y: val})
		}
	}

	for y, row := range testCases {
		for x, wantVal := range row {
			result := img.Gray4At(x, y)
			if result.Y != wantVal {
				t.Errorf("Gray4At(%d, %d).Y = %d, want %d", x, y, result.Y, wantVal)
			}
		}
	}
}

func TestUnpackedAt(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 2, 2))
	img.SetGray4(0, 0, Gray4{Y: 7})

	c := img.At(0, 0)
	g, ok := c.(Gray4)
	if !ok {
		t.Errorf("At(0, 0) returned %T, want Gray4", c)
	}
	if g.Y != 7 {
		t.Errorf("At(0, 0).Y = %d, want 7", g.Y)
	}
}

func TestUnpackedSet(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 2, 2))

	img.Set(0, 0, Gray4{Y: 9})
	if result := img.Gray4At(0, 0); result.Y != 9 {
		t.Errorf("After Set(0, 0, Gray4{9}), Gray4At(0, 0).Y = %d, want 9", result.Y)
	}

	// Convert from standard color
	img.Set(1, 0, color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) // White
	if result := img.Gray4At(1, 0); result.Y != 15 {
		t.Errorf("After Set(1, 0, white), Gray4At(1, 0).Y = %d, want 15", result.Y)
	}
}

func TestUnpackedColorModel(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 4, 4))
	if img.ColorModel() != Gray4Model {
		t.Error("ColorModel() did not return Gray4Model")
	}
}

func TestUnpackedBounds(t *testing.T) {
	rect := image.Rect(10, 20, 14, 24)
	img := NewUnpacked(rect)
	if img.Bounds() != rect {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), rect)
	}
}

func TestUnpackedOutOfBounds(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 4, 4))

	// Out of bounds reads return zero
	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if result := img.Gray4At(pt.X, pt.Y); result.Y != 0 {
			t.Errorf("Gray4At(%d, %d).Y = %d, want 0 (out of bounds)", pt.X, pt.Y, result.Y)
		}
	}

	// Out of bounds writes do nothing
	img.SetGray4(-1, 0, Gray4{Y: 15})
	img.SetGray4(0, -1, Gray4{Y: 15})
	img.SetGray4(4, 0, Gray4{Y: 15})
	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("out-of-bounds Set modified pixel data")
		}
	}
}

func TestUnpackedOffsetRect(t *testing.T) {
	rect := image.Rect(100, 50, 104, 52)
	img := NewUnpacked(rect)

	img.SetGray4(100, 50, Gray4{Y: 11})

	if result := img.Gray4At(100, 50); result.Y != 11 {
		t.Errorf("SetGray4(100, 50, 11) then Gray4At(100, 50).Y = %d, want 11", result.Y)
	}
	if img.Pix[0] != 11 {
		t.Errorf("Pix[0] = %d, want 11", img.Pix[0])
	}
}

func TestUnpackedPixOffset(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 8, 2))

	tests := []struct {
		x, y   int
		offset int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{7, 0, 7},
		{0, 1, 8},
		{3, 1, 11},
	}

	for _, tt := range tests {
		if offset := img.PixOffset(tt.x, tt.y); offset != tt.offset {
			t.Errorf("PixOffset(%d, %d) = %d, want %d", tt.x, tt.y, offset, tt.offset)
		}
	}
}

func TestUnpackedNibbleMask(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 2, 1))

	img.SetGray4(0, 0, Gray4{Y: 0xF5}) // Only 0x5 should be stored
	if result := img.Gray4At(0, 0); result.Y != 0x5 {
		t.Errorf("SetGray4(0, 0, 0xF5) then Gray4At(0, 0).Y = 0x%X, want 0x5", result.Y)
	}
}

func TestUnpackedAllGrayLevels(t *testing.T) {
	img := NewUnpacked(image.Rect(0, 0, 16, 1))

	for level := uint8(0); level < 16; level++ {
		img.SetGray4(int(level), 0, Gray4{Y: level})
	}

	for level := uint8(0); level < 16; level++ {
		result := img.Gray4At(int(level), 0)
		if result.Y != level {
			t.Errorf("Gray4At(%d, 0).Y = %d, want %d", level, result.Y, level)
		}
	}
}

func TestUnpackedDrawImage(t *testing.T) {
	// Unpacked must work as a draw.Draw destination.
	img := NewUnpacked(image.Rect(0, 0, 16, 8))
	draw.Draw(img, img.Bounds(), image.NewUniform(Gray4{Y: 12}), image.Point{}, draw.Src)

	for i, b := range img.Pix {
		if b != 12 {
			t.Fatalf("Pix[%d] = %d, want 12", i, b)
		}
	}
}

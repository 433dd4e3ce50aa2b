// Package led8x16 drives a row-multiplexed 8x16 LED matrix with 16 brightness
// levels per pixel.
//
// The columns sit behind a 16-bit shift register chain with a latch and an
// output-disable line; the rows are selected through a 3-bit binary decoder.
// Brightness is produced by binary-code modulation: each row is decomposed
// into 4 bit planes and each plane is held for a time proportional to its
// bit weight.
//
// See the examples for how to use this package.
package led8x16

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/led8x16/image4bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Matrix geometry and modulation depth. These match the compiled-in hardware:
// a 3-bit binary row decoder and a 16-bit shift-register column driver.
const (
	RowBits   = 3 // Row address lines
	ColBits   = 4 // log2 of the column count
	LayerBits = 4 // Bit planes per row, 2^LayerBits brightness levels

	NumRows    = 1 << RowBits
	NumCols    = 1 << ColBits
	PlaneBytes = NumCols / 8 // Bytes shifted out per bit plane
)

var errHalted = errors.New("led8x16: halted")

// PinError reports a failed digital-output operation on one of the control
// lines.
type PinError struct {
	Line string // "latch", "blank" or "rowN"
	Err  error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("led8x16: pin %s: %v", e.Line, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed byte transfer on the shift-register bus.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("led8x16: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Opts is the hardware configuration for the matrix.
type Opts struct {
	// Rows are the binary row-select lines, least significant address bit
	// first.
	Rows [RowBits]gpio.PinOut

	// Latch commits serially-shifted column data to the driver outputs.
	Latch gpio.PinOut

	// Blank is the output-disable line: while asserted (high) all column
	// outputs are forced off regardless of latched data.
	Blank gpio.PinOut

	// Timer paces the per-plane exposure slots. Optional; when nil, a timer
	// backed by the host monotonic clock is used.
	Timer CountDown
}

// Dev is the device handle for the matrix.
//
// A Dev exclusively owns its pins, bus and timer for its lifetime. All
// methods are fully synchronous and must not be called concurrently; the
// frame is shared with the application under the same single-threaded
// cooperative model.
type Dev struct {
	// Communication
	c     conn.Conn            // Shift-register serial bus
	rows  [RowBits]gpio.PinOut // Row address lines
	latch gpio.PinOut          // Latch line
	blank gpio.PinOut          // Output-disable line
	timer CountDown            // Exposure timer

	// Pixel buffer
	frame *image4bit.Unpacked

	tx [1]byte // Scratch for single-byte transfers

	// State
	halted bool
}

// NewSPI creates a new matrix device with its column driver connected via SPI.
//
// The SPI port is configured for 4MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. All control pins in opts are required and must be configured as
// outputs. The device comes up blanked; nothing is visible until the first
// Scan pass.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		return nil, errors.New("led8x16: opts are required")
	}
	for i, pin := range opts.Rows {
		if pin == nil {
			return nil, fmt.Errorf("led8x16: row select pin %d is required", i)
		}
	}
	if opts.Latch == nil {
		return nil, errors.New("led8x16: latch pin is required")
	}
	if opts.Blank == nil {
		return nil, errors.New("led8x16: blank pin is required")
	}

	timer := opts.Timer
	if timer == nil {
		timer = NewClockTimer()
	}

	// 74HC595-class shift registers are comfortable at 4MHz.
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		c:     c,
		rows:  opts.Rows,
		latch: opts.Latch,
		blank: opts.Blank,
		timer: timer,
		frame: image4bit.NewUnpacked(image.Rect(0, 0, NumCols, NumRows)),
	}

	// Known-safe starting state: outputs disabled, latch released.
	if err := d.blank.Out(gpio.High); err != nil {
		return nil, &PinError{Line: "blank", Err: err}
	}
	if err := d.latch.Out(gpio.Low); err != nil {
		return nil, &PinError{Line: "latch", Err: err}
	}

	return d, nil
}

// encodeRow slices one frame row into LayerBits bit planes.
//
// Plane p carries bit p of each brightness value (taken mod 16). Columns are
// packed most-significant-first: column 0 lands in bit 7 of the first plane
// byte, so the first byte shifted out, MSB first, ends up furthest down the
// shift-register chain. This ordering is the physical wiring contract.
//
// A row index outside [0, NumRows) is caller misuse and panics.
func (d *Dev) encodeRow(row int, planes *[LayerBits][PlaneBytes]byte) {
	if row < 0 || row >= NumRows {
		panic("led8x16: row index out of range")
	}
	pix := d.frame.Pix[row*d.frame.Stride : row*d.frame.Stride+NumCols]

	for p := 0; p < LayerBits; p++ {
		var out uint16
		for _, v := range pix {
			out = out<<1 | uint16((v&0x0F)>>p)&1
		}
		for i := PlaneBytes - 1; i >= 0; i-- {
			planes[p][i] = byte(out)
			out >>= 8
		}
	}
}

// writeLayer shifts one bit plane into the column driver and commits it.
//
// row < 0 re-latches onto the currently selected row. row >= 0 selects a new
// row under blanking: the outputs are disabled before the select lines move
// and re-enabled only after the new column data is latched, so a stale row
// decode is never visible.
//
// The previously armed timer is spin-polled to completion before the commit,
// which guarantees the previous plane got its full exposure slot. Any pin or
// transport failure aborts the sequence immediately.
func (d *Dev) writeLayer(plane []byte, row int) error {
	// Keep shifted data away from the outputs while it moves.
	if err := d.latch.Out(gpio.Low); err != nil {
		return &PinError{Line: "latch", Err: err}
	}

	for _, b := range plane {
		// The column driver outputs are active-low.
		d.tx[0] = ^b
		if err := d.c.Tx(d.tx[:], nil); err != nil {
			return &TransportError{Err: err}
		}
	}

	// Busy-wait for the previous plane's exposure slot to end. This fully
	// occupies the calling goroutine; there is no yielding.
	for !d.timer.Expired() {
	}

	if row < 0 {
		// Same row, just commit the new plane.
		if err := d.latch.Out(gpio.High); err != nil {
			return &PinError{Line: "latch", Err: err}
		}
		return nil
	}

	// Row switch: blank, reselect, latch, unblank.
	if err := d.blank.Out(gpio.High); err != nil {
		return &PinError{Line: "blank", Err: err}
	}
	for i, pin := range d.rows {
		if err := pin.Out(gpio.Level(row>>i&1 == 1)); err != nil {
			return &PinError{Line: fmt.Sprintf("row%d", i), Err: err}
		}
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return &PinError{Line: "latch", Err: err}
	}
	if err := d.blank.Out(gpio.Low); err != nil {
		return &PinError{Line: "blank", Err: err}
	}
	return nil
}

// Scan performs exactly one full refresh pass over the matrix.
//
// Rows are visited in ascending order; within a row the planes are written
// least significant first, and the row address is changed (under blanking)
// only on the first plane. After each write the timer is re-armed with
// base << (LayerBits-1-p) for plane p. The armed value is a frequency, so a
// larger value means a shorter slot: the least significant plane gets the
// shortest exposure and each higher plane doubles it, which is what makes
// the time-averaged brightness track the pixel value.
//
// Scan does not buffer the frame: a mutation that lands mid-pass shows up in
// the rows not yet encoded and is picked up by the next pass for the rest.
// That brief tearing is accepted; the frame and Scan must simply not run on
// separate goroutines.
//
// On error the pass aborts immediately with the hardware left in whatever
// state the last successful step produced. The caller may retry by invoking
// Scan again.
func (d *Dev) Scan(base physic.Frequency) error {
	if d.halted {
		return errHalted
	}
	if base <= 0 {
		return errors.New("led8x16: scan rate must be positive")
	}

	var planes [LayerBits][PlaneBytes]byte
	for row := 0; row < NumRows; row++ {
		d.encodeRow(row, &planes)

		for p := 0; p < LayerBits; p++ {
			sel := -1
			if p == 0 {
				sel = row
			}
			if err := d.writeLayer(planes[p][:], sel); err != nil {
				return err
			}

			// Arm the exposure slot for the plane just committed.
			d.timer.Start(base << (LayerBits - 1 - p))
		}
	}
	return nil
}

// Frame returns the driver-owned pixel grid.
//
// The application writes brightness values (0-15 meaningful) into it between
// scan passes; the driver only reads it while encoding. Access is
// cooperative and unsynchronized.
func (d *Dev) Frame() *image4bit.Unpacked {
	return d.frame
}

// SetBrightness sets a single pixel's brightness level (0-15; higher bits
// are ignored). Out-of-bounds coordinates are a no-op.
func (d *Dev) SetBrightness(x, y int, level uint8) {
	d.frame.SetGray4(x, y, image4bit.Gray4{Y: level})
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Draw composes src into the frame. The result becomes visible on the next
// Scan pass; Draw itself touches no hardware.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst = dst.Intersect(d.frame.Rect)
	if dst.Empty() {
		return nil
	}
	draw.Draw(d.frame, dst, src, sp, draw.Src)
	return nil
}

// Write replaces the frame with raw pixel data in Unpacked format.
// The data must be exactly NumRows * NumCols bytes, one brightness value per
// byte in row-major order.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != len(d.frame.Pix) {
		return 0, errors.New("led8x16: invalid buffer size")
	}
	copy(d.frame.Pix, pixels)
	return len(pixels), nil
}

// Halt blanks the matrix and stops the device. After calling Halt the device
// rejects further operations; create a new Dev to resume.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.blank.Out(gpio.High); err != nil {
		return &PinError{Line: "blank", Err: err}
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("led8x16.Dev{%dx%d}", NumCols, NumRows)
}

// Package led8x16 drives a row-multiplexed 8x16 LED matrix with 4-bit
// brightness control over SPI and GPIO.
//
// # Display Characteristics
//
// - 8 rows x 16 columns, one LED per position
// - 16 brightness levels per LED (0-15) via binary-code modulation
// - Columns driven by a 16-bit shift-register chain (74HC595-class) with
//   latch and output-disable lines
// - Rows selected by a 3-bit binary decoder (74HC138-class)
//
// # Hardware Connection
//
// Connect the matrix board to your system via SPI plus five GPIO lines:
//
//	Board Pin   → System Pin
//	GND         → GND
//	VCC         → 5V
//	SRCLK       → SPI Clock (SCLK)
//	SER         → SPI Data (MOSI)
//	RCLK        → GPIO (latch)
//	OE          → GPIO (blank / output-disable, active high)
//	A0..A2      → GPIO x3 (row select, A0 = least significant bit)
//
// # Basic Usage
//
// Example of creating and refreshing the display:
//
//	package main
//
//	import (
//		"github.com/flavioheleno/led8x16"
//		"github.com/flavioheleno/led8x16/image4bit"
//		"periph.io/x/conn/v3/gpio"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/physic"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Create device
//		dev, _ := led8x16.NewSPI(spiBus, &led8x16.Opts{
//			Rows: [3]gpio.PinOut{
//				gpioreg.ByName("GPIO17"),
//				gpioreg.ByName("GPIO27"),
//				gpioreg.ByName("GPIO22"),
//			},
//			Latch: gpioreg.ByName("GPIO23"),
//			Blank: gpioreg.ByName("GPIO24"),
//		})
//		defer dev.Halt()
//
//		// Draw a horizontal gradient
//		for y := 0; y < 8; y++ {
//			for x := 0; x < 16; x++ {
//				dev.SetBrightness(x, y, uint8(x))
//			}
//		}
//
//		// Refresh continuously; each Scan call is one full pass
//		for {
//			if err := dev.Scan(2 * physic.KiloHertz); err != nil {
//				break
//			}
//		}
//	}
//
// # Refresh Model
//
// The driver is fully synchronous: Scan performs one pass over all 8 rows,
// writing 4 bit planes per row (32 hardware writes), busy-waiting on a
// countdown timer to give each plane its exposure slot. The application owns
// the refresh loop and calls Scan repeatedly; persistence of vision does the
// rest. There is no background goroutine and no interrupt handling.
//
// The base rate passed to Scan sets the slot for the least significant
// plane; each higher plane is held twice as long. Pick the rate so a full
// pass completes well above the flicker-fusion threshold — a pass takes
// 8 rows x 15 slot units, so 2kHz base gives roughly 60 full frames per
// second.
//
// # Brightness Encoding
//
// Each row of the frame is decomposed into 4 binary planes: plane p holds
// bit p of every pixel's brightness value. A plane is shifted out serially
// (bit-inverted, since the column outputs are active-low), latched, and left
// visible for a time proportional to 2^p. The eye integrates the slots into
// 16 perceived brightness levels.
//
// # Row Changes and Ghosting
//
// When the scan moves to a new row, the driver asserts the output-disable
// line before touching the row-select pins and releases it only after the
// new column data is latched. Skipping that blanking window would briefly
// drive the previous row's column pattern onto the newly decoded row, which
// shows up as ghosting.
//
// # Frame Access
//
// Dev.Frame returns the driver-owned image4bit.Unpacked pixel grid. The
// application mutates it between Scan calls; the driver only reads it while
// encoding. Accesses are not synchronized — keep the refresh loop and the
// drawing code on the same goroutine.
//
// # Compatibility with periph.io
//
// Dev implements the display.Drawer interface from periph.io, so standard
// image.Image sources can be composed onto the frame with Dev.Draw.
package led8x16

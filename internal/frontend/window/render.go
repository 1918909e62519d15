// Package window implements a desktop window frontend.
package window

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
)

// bytesPerPixel of the RGBA pixel buffer.
const bytesPerPixel = 4

// newPixelBuffer returns an RGBA buffer for the display.
func newPixelBuffer() []byte {
	return make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*bytesPerPixel)
}

// fillPixels converts the screen into RGBA pixels using the palette colors.
func fillPixels(dst []byte, screen *chip8.Screen, palette config.Palette) {
	for i, lit := range screen {
		c := palette.Background
		if lit {
			c = palette.Foreground
		}
		offset := i * bytesPerPixel
		dst[offset] = c.R
		dst[offset+1] = c.G
		dst[offset+2] = c.B
		dst[offset+3] = c.A
	}
}

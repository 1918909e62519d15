package chip8

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Screen is a row-major snapshot of the display buffer, true means lit.
// Being an array it is copied on assignment, a Screen returned by Machine.Display
// is not affected by later instructions.
type Screen [DisplayWidth * DisplayHeight]bool

// Pixel returns whether the pixel at x, y is lit. Coordinates outside of the
// display are reported as unlit.
func (s *Screen) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return false
	}
	return s[y*DisplayWidth+x]
}

// Lit returns the number of lit pixels.
func (s *Screen) Lit() int {
	n := 0
	for _, p := range s {
		if p {
			n++
		}
	}
	return n
}

// String renders the screen as text, one line per row using '#' for lit
// and '.' for unlit pixels.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if s[y*DisplayWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clear sets all pixels to unlit.
func (s *Screen) clear() {
	*s = Screen{}
}

// toggle XORs the pixel at the wrapped coordinates x, y and reports whether
// it was switched from lit to unlit.
func (s *Screen) toggle(x, y int) bool {
	i := (y%DisplayHeight)*DisplayWidth + x%DisplayWidth
	erased := s[i]
	s[i] = !s[i]
	return erased
}

package cinecanvas

import (
	"fmt"
	"strconv"

	"github.com/dcptools/cinecanvas/internal/ass"
)

// FormatColor renders a color as the CineCanvas "RRGGBBAA" string. The
// alpha byte is complemented at the boundary: ASS stores 0 for opaque,
// CineCanvas stores FF.
func FormatColor(c ass.Color) string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, 255-c.A)
}

// ParseColor reads a CineCanvas color string. Strings shorter than six
// hex digits, or containing non-hex characters, yield opaque white. A
// six-digit string yields an opaque color; eight digits carry an alpha
// byte which is complemented into the ASS convention.
func ParseColor(s string) ass.Color {
	white := ass.Color{R: 255, G: 255, B: 255}
	if len(s) < 6 {
		return white
	}

	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return white
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return white
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return white
	}

	c := ass.Color{R: uint8(r), G: uint8(g), B: uint8(b)}
	if len(s) >= 8 {
		a, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return white
		}
		c.A = 255 - uint8(a)
	}
	return c
}

package model

import (
	"fmt"
	"strings"
)

// DefaultPalette mirrors the colors the editor canvas cycles through.
var DefaultPalette = []string{
	"#4CAF50", // green
	"#2196F3", // blue
	"#FF9800", // orange
	"#9C27B0", // purple
	"#00BCD4", // cyan
	"#F44336", // red
	"#FFEB3B", // yellow
	"#795548", // brown
}

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// FaceColor picks the display color for a face: the seat color when one is
// assigned and valid, otherwise the palette entry for the face id.
func FaceColor(id int, occ Occupancy, palette []string) RGB {
	if seat, ok := occ[id]; ok && seat.Color != "" {
		if c, err := ParseHexColor(seat.Color); err == nil {
			return c
		}
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	idx := id % len(palette)
	if idx < 0 {
		idx = -idx
	}
	c, err := ParseHexColor(palette[idx])
	if err != nil {
		return RGB{R: 128, G: 128, B: 128}
	}
	return c
}

package config

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid color length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// StrokeRGBA returns the configured stroke color, falling back to red.
func (c *Config) StrokeRGBA() color.RGBA {
	if c == nil {
		return color.RGBA{R: 0xff, A: 0xff}
	}
	col, err := ParseHexColor(c.StrokeColor)
	if err != nil {
		return color.RGBA{R: 0xff, A: 0xff}
	}
	return col
}

package vector

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB colour.
type Color struct{ R, G, B uint8 }

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	Black = Color{}
	White = Color{255, 255, 255}
)

var namedColors = map[string]Color{
	"black":        Black,
	"white":        White,
	"red":          {255, 0, 0},
	"green":        {0, 128, 0},
	"blue":         {0, 0, 255},
	"gray":         {128, 128, 128},
	"grey":         {128, 128, 128},
	"silver":       {192, 192, 192},
	"currentcolor": Black,
}

// ParseColor parses #rgb, #rrggbb, rgb(r,g,b) and a few CSS names. The
// second result is false for "none" and "transparent".
func ParseColor(s string) (Color, bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "transparent":
		return Color{}, false, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, true, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, false, fmt.Errorf("bad colour %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false, fmt.Errorf("bad colour %q", s)
		}
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true, nil
	}
	if inner, ok := strings.CutPrefix(s, "rgb("); ok {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 3 {
			return Color{}, false, fmt.Errorf("bad colour %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return Color{}, false, fmt.Errorf("bad colour %q", s)
			}
			rgb[i] = uint8(v)
		}
		return Color{rgb[0], rgb[1], rgb[2]}, true, nil
	}
	return Color{}, false, fmt.Errorf("unsupported colour %q", s)
}

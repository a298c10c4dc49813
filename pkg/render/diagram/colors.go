package diagram

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/render/vector"
)

// Colors is a board colour scheme. Values are CSS colours.
type Colors struct {
	SquareLight string
	SquareDark  string
	Margin      string
	Coord       string
	InnerBorder string
	OuterBorder string
}

// DefaultColors returns the classic brown scheme.
func DefaultColors() Colors {
	return Colors{
		SquareLight: "#ffce9e",
		SquareDark:  "#d18b47",
		Margin:      "#212121",
		Coord:       "#e5e5e5",
		InnerBorder: "#111111",
		OuterBorder: "#111111",
	}
}

var colorKeys = map[string]func(*Colors) *string{
	"square light": func(c *Colors) *string { return &c.SquareLight },
	"square dark":  func(c *Colors) *string { return &c.SquareDark },
	"margin":       func(c *Colors) *string { return &c.Margin },
	"coord":        func(c *Colors) *string { return &c.Coord },
	"inner border": func(c *Colors) *string { return &c.InnerBorder },
	"outer border": func(c *Colors) *string { return &c.OuterBorder },
}

// ColorsFromMap overlays m onto the default scheme. Keys this renderer does
// not draw (last move highlights, arrows) are ignored; unparsable colours
// are rejected.
func ColorsFromMap(m map[string]string) (Colors, error) {
	c := DefaultColors()
	for k, v := range m {
		field, ok := colorKeys[k]
		if !ok {
			continue
		}
		if _, _, err := vector.ParseColor(v); err != nil {
			return Colors{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "board colour %q", k)
		}
		*field(&c) = v
	}
	return c, nil
}

// LoadColors reads a JSON object of colour keys from path.
func LoadColors(path string) (Colors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Colors{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read board colours")
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return Colors{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse board colours %s", path)
	}
	return ColorsFromMap(m)
}

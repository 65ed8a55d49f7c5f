package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "aiotoolsuite/backend/pkg/errors"
)

// ColorConverterInput is the argument object of the color-converter tool
type ColorConverterInput struct {
	Color       string `json:"color"` // #rgb, #rrggbb or rgb(r, g, b)
	PaletteSize int    `json:"paletteSize"`
}

// RGB is a color in 0-255 channels
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL is a color as hue degrees and saturation/lightness percentages
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorConverterOutput is the color in every notation plus a tint/shade palette
type ColorConverterOutput struct {
	Hex       string   `json:"hex"`
	RGB       RGB      `json:"rgb"`
	HSL       HSL      `json:"hsl"`
	RGBString string   `json:"rgbString"`
	HSLString string   `json:"hslString"`
	Tints     []string `json:"tints"`
	Shades    []string `json:"shades"`
}

// ColorConverterLoader returns the loader registered for color-converter
func ColorConverterLoader() Loader {
	return Static(Typed(ConvertColor))
}

// ConvertColor parses a hex or rgb() color and derives the other notations
func ConvertColor(_ context.Context, in ColorConverterInput) (ColorConverterOutput, error) {
	rgb, err := parseColor(in.Color)
	if err != nil {
		return ColorConverterOutput{}, err
	}
	size := in.PaletteSize
	if size == 0 {
		size = 5
	}
	if size < 0 || size > 20 {
		return ColorConverterOutput{}, apperrors.NewInvalidInput("paletteSize", "must be between 1 and 20")
	}

	hsl := rgbToHSL(rgb)
	out := ColorConverterOutput{
		Hex:       rgbToHex(rgb),
		RGB:       rgb,
		HSL:       hsl,
		RGBString: fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B),
		HSLString: fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L),
		Tints:     make([]string, size),
		Shades:    make([]string, size),
	}
	for i := 1; i <= size; i++ {
		f := float64(i) / float64(size+1)
		out.Tints[i-1] = rgbToHex(mix(rgb, RGB{255, 255, 255}, f))
		out.Shades[i-1] = rgbToHex(mix(rgb, RGB{0, 0, 0}, f))
	}
	return out, nil
}

func parseColor(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	invalid := apperrors.NewInvalidInput("color", "must be #rgb, #rrggbb or rgb(r, g, b)")

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return RGB{}, invalid
		}
		var ch [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return RGB{}, invalid
			}
			ch[i] = v
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}

	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, invalid
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, invalid
	}
	return RGB{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, nil
}

func rgbToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func mix(a, b RGB, f float64) RGB {
	blend := func(x, y int) int {
		return int(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return RGB{blend(a.R, b.R), blend(a.G, b.G), blend(a.B, b.B)}
}

func rgbToHSL(c RGB) HSL {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if d := maxC - minC; d != 0 {
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}
	return HSL{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))}
}

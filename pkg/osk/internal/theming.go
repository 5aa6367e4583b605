package internal

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme defines the colours and shape proportions of the keyboard and input
// field. A Theme is a value owned by one engine; there is no global theme.
type Theme struct {
	PanelColor            color.NRGBA // Keyboard panel background
	KeyColor              color.NRGBA // Key background
	KeyHighlightColor     color.NRGBA // Highlighted or pressed key background
	KeyTextColor          color.NRGBA // Key captions and icons
	KeyHighlightTextColor color.NRGBA // Captions and icons on highlighted keys
	InputFocusedColor     color.NRGBA // Input field background while focused
	InputUnfocusedColor   color.NRGBA // Input field background while the grid has focus
	InputTextColor        color.NRGBA // Typed text
	PlaceholderColor      color.NRGBA // Hint shown in an empty input
	SelectionColor        color.NRGBA // Selection band behind selected text
	SelectionTextColor    color.NRGBA // Selected text
	CaretColor            color.NRGBA // Caret bar

	PanelRadiusFraction float64 // Panel corner radius as a fraction of its height
	KeyRadiusFraction   float64 // Key corner radius as a fraction of the row height
	InputRadiusFraction float64 // Input corner radius as a fraction of its height
	KeyMarginFraction   float64 // Gap between keys as a fraction of the panel height
	KeyFontFraction     float64 // Caption size as a fraction of the row height
	InputFontFraction   float64 // Text size as a fraction of the input height

	FontPath string // Optional TTF/OTF file; empty selects the embedded Go Regular face
}

// DefaultTheme is a dark theme with a blue highlight.
func DefaultTheme() Theme {
	return Theme{
		PanelColor:            HexToColor(0x1E1E24),
		KeyColor:              HexToColor(0x3A3A44),
		KeyHighlightColor:     HexToColor(0x6464F0),
		KeyTextColor:          HexToColor(0xF0F0F0),
		KeyHighlightTextColor: HexToColor(0xFFFFFF),
		InputFocusedColor:     HexToColor(0x2C2C34),
		InputUnfocusedColor:   HexToColor(0x24242A),
		InputTextColor:        HexToColor(0xFFFFFF),
		PlaceholderColor:      HexToColor(0x8C8C96),
		SelectionColor:        HexToColor(0x4A4AB8),
		SelectionTextColor:    HexToColor(0xFFFFFF),
		CaretColor:            HexToColor(0xFFFFFF),
		PanelRadiusFraction:   0.04,
		KeyRadiusFraction:     0.18,
		InputRadiusFraction:   0.25,
		KeyMarginFraction:     0.02,
		KeyFontFraction:       0.42,
		InputFontFraction:     0.5,
	}
}

// HexToColor converts a 0xRRGGBB value to an opaque colour.
func HexToColor(hex uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xff,
	}
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA"; the leading '#' is
// optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(s) == 6 {
		return HexToColor(uint32(v)), nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorToHex formats c as "#RRGGBB", appending alpha when it is not opaque.
func ColorToHex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

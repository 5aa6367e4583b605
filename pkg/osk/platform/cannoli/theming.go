// Package cannoli provides a keyboard theme matching the Cannoli custom firmware.
// Cannoli is a community-developed CFW for retro handheld gaming devices.
package cannoli

import (
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// InitCannoliTheme creates a theme with Cannoli's colors and the specified font.
// An empty fontPath keeps the embedded face.
func InitCannoliTheme(fontPath string) internal.Theme {
	t := internal.DefaultTheme()

	t.PanelColor = internal.HexToColor(0x000000)
	t.KeyColor = internal.HexToColor(0x1A1A1A)
	t.KeyHighlightColor = internal.HexToColor(0xFFFFFF)
	t.KeyTextColor = internal.HexToColor(0xFFFFFF)
	t.KeyHighlightTextColor = internal.HexToColor(0x000000)
	t.InputFocusedColor = internal.HexToColor(0x008080)
	t.InputUnfocusedColor = internal.HexToColor(0x1A1A1A)
	t.InputTextColor = internal.HexToColor(0xFFFFFF)
	t.PlaceholderColor = internal.HexToColor(0x9A9A9A)
	t.SelectionColor = internal.HexToColor(0xFFFFFF)
	t.SelectionTextColor = internal.HexToColor(0x000000)
	t.CaretColor = internal.HexToColor(0xFFFFFF)

	t.KeyRadiusFraction = 0.5
	t.InputRadiusFraction = 0.5
	t.FontPath = fontPath
	return t
}

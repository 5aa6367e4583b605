// Package constants defines shared constants, types, and configuration values
// used throughout the osk keyboard engine.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by hosts and the config loader.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
	LocaleEnvVar       = "OSK_LOCALE"
	LogLevelEnvVar     = "OSK_LOG_LEVEL"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// KeyCode identifies a non-character key delivered to Engine.KeyDown.
// Hosts translate their platform key codes into these values.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
	KeyTab
	KeyA
	KeyC
	KeyV
	KeyX
)

func (k KeyCode) GetName() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyTab:
		return "Tab"
	case KeyA:
		return "A"
	case KeyC:
		return "C"
	case KeyV:
		return "V"
	case KeyX:
		return "X"
	default:
		return "Unknown"
	}
}

// IsArrow reports whether the key is one of the four arrow keys.
func (k KeyCode) IsArrow() bool {
	return k == KeyLeft || k == KeyRight || k == KeyUp || k == KeyDown
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const ModNone Modifier = 0

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all bits of m are set.
func (mods Modifier) Has(m Modifier) bool {
	return mods&m == m
}

// MouseButton identifies the button of a mouse event.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Default editing and timing constants.
const (
	DefaultPasteLimit        = 50                     // Maximum runes accepted from the clipboard
	DefaultBlinkToggles      = 10                     // Visibility toggles per caret feedback pulse
	DefaultBlinkInterval     = 90 * time.Millisecond  // Interval between pulse toggles
	DefaultScrollPadding     = 8                      // Pixels kept between caret and text-area edge
	DefaultMeasureBatch      = 16                     // Characters measured per text-measurement call
	DefaultCaretWidth        = 2                      // Caret bar width in pixels
	DefaultConfigReloadDelay = 100 * time.Millisecond // Debounce for config file changes
	DefaultKeyMarginFraction = 0.02                   // Key margin as a fraction of keyboard height
	DefaultInputPadding      = 10                     // Horizontal text inset inside the input field
)

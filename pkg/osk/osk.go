// Package osk provides an on-screen keyboard engine that draws a software
// keyboard and its text input field into an RGBA buffer owned by the host.
//
// The engine is single-threaded: the host feeds it mouse, key and tick events
// from its own loop, then calls DrawKeyboardArea and DrawInputArea after
// repainting the background of those regions, and presents the buffer.
package osk

import (
	"image"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
)

// Aliases for the engine's value types.
type (
	Theme        = internal.Theme
	Captions     = internal.Captions
	Key          = internal.Key
	KeyKind      = internal.KeyKind
	Page         = internal.Page
	TieBreak     = internal.TieBreak
	TextRenderer = internal.TextRenderer
	InkBox       = internal.InkBox
	GlyphMetrics = internal.GlyphMetrics
)

const (
	KeyCharacter      = internal.KeyCharacter
	KeyBackspace      = internal.KeyBackspace
	KeyShift          = internal.KeyShift
	KeySymbolsToggle  = internal.KeySymbolsToggle
	KeySpace          = internal.KeySpace
	KeySubmit         = internal.KeySubmit
	KeyLanguageSwitch = internal.KeyLanguageSwitch
)

const (
	PageLetters  = internal.PageLetters
	PageSymbols1 = internal.PageSymbols1
	PageSymbols2 = internal.PageSymbols2
)

const (
	TieBreakFirstMatch   = internal.TieBreakFirstMatch
	TieBreakNearest      = internal.TieBreakNearest
	TieBreakFirstVisible = internal.TieBreakFirstVisible
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Theme     *Theme         // Colours and proportions; nil uses DefaultTheme
	Keymap    keymap.Service // Layout service; nil installs the built-in layouts
	Renderer  TextRenderer   // Text service; nil loads Theme.FontPath or the embedded Go font
	Clipboard Clipboard      // Clipboard service; nil uses an in-memory clipboard
	Locale    string         // Caption language, e.g. "de"; empty means English
	Captions  *Captions      // Explicit captions; overrides Locale

	TieBreak      TieBreak      // Resolution of ambiguous highlight matches after a rebuild
	PasteLimit    int           // Maximum runes accepted from the clipboard
	BlinkToggles  int           // Caret visibility toggles per feedback pulse
	BlinkInterval time.Duration // Interval between pulse toggles
	ScrollPadding int           // Pixels kept between caret and text-area edge
	MeasureBatch  int           // Characters per text-measurement call
	CaretWidth    int           // Caret bar width in pixels
	DeviceScale   float64       // Multiplies paddings and the caret width

	Clock  func() time.Time // Time source for the blink pulse and key repeat
	Logger *slog.Logger     // Defaults to the internal logger

	OnSubmit        func(text string)            // Submit key or Enter in the input
	OnTextChanged   func(text string)            // Every change of the text
	OnLayoutChanged func(layout keymap.LayoutID) // Active input layout switched
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return internal.DefaultTheme()
}

// DefaultCaptions returns the English key captions.
func DefaultCaptions() Captions {
	return internal.DefaultCaptions()
}

// LoadCaptions returns the key captions for locale, falling back to English.
func LoadCaptions(locale string) (Captions, error) {
	return internal.LoadCaptions(locale)
}

// ParseTieBreak accepts "first-match", "nearest" and "first-visible".
func ParseTieBreak(s string) TieBreak {
	return internal.ParseTieBreak(s)
}

// DefaultRects places the input field and the keyboard inside a window of
// the given size, input above keyboard, together using 85% of the window.
func DefaultRects(windowWidth, windowHeight int) (keyboard, input image.Rectangle) {
	d := internal.CalculateKeyboardDimensions(windowWidth, windowHeight)
	return d.KeyboardRect(), d.TextInputRect()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first engine is created to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// ParseLogLevel converts "debug", "info", "warn" or "error" to a level.
// Anything else is info.
func ParseLogLevel(raw string) slog.Level {
	return internal.ParseLevel(raw)
}

// SetInternalLogLevel sets the minimum level of the engine's own logger.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	internal.CloseLogger()
}

// Package config loads, validates and watches the keyboard engine's
// configuration file.
package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// Config is the on-disk configuration. Zero values in a decoded file keep the
// defaults they were decoded over.
type Config struct {
	Theme      ThemeConfig      `toml:"theme" yaml:"theme" json:"theme"`
	Editing    EditingConfig    `toml:"editing" yaml:"editing" json:"editing"`
	Navigation NavigationConfig `toml:"navigation" yaml:"navigation" json:"navigation"`
	Keymap     KeymapConfig     `toml:"keymap" yaml:"keymap" json:"keymap"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging" json:"logging"`

	Locale      string  `toml:"locale" yaml:"locale" json:"locale"`
	DeviceScale float64 `toml:"device_scale" yaml:"device_scale" json:"device_scale"`
}

// ThemeConfig holds colours as hex strings ("#RRGGBB" or "#RRGGBBAA") and the
// shape proportions of the keyboard.
type ThemeConfig struct {
	Panel            string `toml:"panel" yaml:"panel" json:"panel"`
	Key              string `toml:"key" yaml:"key" json:"key"`
	KeyHighlight     string `toml:"key_highlight" yaml:"key_highlight" json:"key_highlight"`
	KeyText          string `toml:"key_text" yaml:"key_text" json:"key_text"`
	KeyHighlightText string `toml:"key_highlight_text" yaml:"key_highlight_text" json:"key_highlight_text"`
	InputFocused     string `toml:"input_focused" yaml:"input_focused" json:"input_focused"`
	InputUnfocused   string `toml:"input_unfocused" yaml:"input_unfocused" json:"input_unfocused"`
	InputText        string `toml:"input_text" yaml:"input_text" json:"input_text"`
	Placeholder      string `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	Selection        string `toml:"selection" yaml:"selection" json:"selection"`
	SelectionText    string `toml:"selection_text" yaml:"selection_text" json:"selection_text"`
	Caret            string `toml:"caret" yaml:"caret" json:"caret"`

	PanelRadius float64 `toml:"panel_radius" yaml:"panel_radius" json:"panel_radius"`
	KeyRadius   float64 `toml:"key_radius" yaml:"key_radius" json:"key_radius"`
	InputRadius float64 `toml:"input_radius" yaml:"input_radius" json:"input_radius"`
	KeyMargin   float64 `toml:"key_margin" yaml:"key_margin" json:"key_margin"`
	KeyFont     float64 `toml:"key_font" yaml:"key_font" json:"key_font"`
	InputFont   float64 `toml:"input_font" yaml:"input_font" json:"input_font"`

	Font string `toml:"font" yaml:"font" json:"font"`
}

// EditingConfig tunes the text input.
type EditingConfig struct {
	PasteLimit      int `toml:"paste_limit" yaml:"paste_limit" json:"paste_limit"`
	BlinkToggles    int `toml:"blink_toggles" yaml:"blink_toggles" json:"blink_toggles"`
	BlinkIntervalMs int `toml:"blink_interval_ms" yaml:"blink_interval_ms" json:"blink_interval_ms"`
	ScrollPadding   int `toml:"scroll_padding" yaml:"scroll_padding" json:"scroll_padding"`
	MeasureBatch    int `toml:"measure_batch" yaml:"measure_batch" json:"measure_batch"`
	CaretWidth      int `toml:"caret_width" yaml:"caret_width" json:"caret_width"`
}

func (e EditingConfig) BlinkInterval() time.Duration {
	return time.Duration(e.BlinkIntervalMs) * time.Millisecond
}

// NavigationConfig controls key-grid navigation.
type NavigationConfig struct {
	// TieBreak is "first-match", "nearest" or "first-visible".
	TieBreak string `toml:"tie_break" yaml:"tie_break" json:"tie_break"`
}

// KeymapConfig selects the keyboard layouts.
type KeymapConfig struct {
	Files  []string `toml:"files" yaml:"files" json:"files"`    // Extra layout files installed after the built-in ones
	Active string   `toml:"active" yaml:"active" json:"active"` // Layout activated at startup
}

// LoggingConfig configures the slog loggers.
type LoggingConfig struct {
	Level         string `toml:"level" yaml:"level" json:"level"`
	InternalLevel string `toml:"internal_level" yaml:"internal_level" json:"internal_level"`
	File          string `toml:"file" yaml:"file" json:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeFrom(internal.DefaultTheme()),
		Editing: EditingConfig{
			PasteLimit:      constants.DefaultPasteLimit,
			BlinkToggles:    constants.DefaultBlinkToggles,
			BlinkIntervalMs: int(constants.DefaultBlinkInterval / time.Millisecond),
			ScrollPadding:   constants.DefaultScrollPadding,
			MeasureBatch:    constants.DefaultMeasureBatch,
			CaretWidth:      constants.DefaultCaretWidth,
		},
		Navigation:  NavigationConfig{TieBreak: internal.TieBreakFirstMatch.String()},
		Logging:     LoggingConfig{Level: "info", InternalLevel: "error"},
		Locale:      "en",
		DeviceScale: 1,
	}
}

// ThemeFrom converts a theme to its file representation.
func ThemeFrom(t internal.Theme) ThemeConfig {
	hex := internal.ColorToHex
	return ThemeConfig{
		Panel:            hex(t.PanelColor),
		Key:              hex(t.KeyColor),
		KeyHighlight:     hex(t.KeyHighlightColor),
		KeyText:          hex(t.KeyTextColor),
		KeyHighlightText: hex(t.KeyHighlightTextColor),
		InputFocused:     hex(t.InputFocusedColor),
		InputUnfocused:   hex(t.InputUnfocusedColor),
		InputText:        hex(t.InputTextColor),
		Placeholder:      hex(t.PlaceholderColor),
		Selection:        hex(t.SelectionColor),
		SelectionText:    hex(t.SelectionTextColor),
		Caret:            hex(t.CaretColor),
		PanelRadius:      t.PanelRadiusFraction,
		KeyRadius:        t.KeyRadiusFraction,
		InputRadius:      t.InputRadiusFraction,
		KeyMargin:        t.KeyMarginFraction,
		KeyFont:          t.KeyFontFraction,
		InputFont:        t.InputFontFraction,
		Font:             t.FontPath,
	}
}

// Build parses the theme. Empty colours keep the value from base.
func (tc ThemeConfig) Build(base internal.Theme) (internal.Theme, error) {
	t := base
	for _, c := range tc.colourFields(&t) {
		if c.raw == "" {
			continue
		}
		v, err := internal.ParseHexColor(c.raw)
		if err != nil {
			return base, fmt.Errorf("theme.%s: %w", c.name, err)
		}
		*c.dst = v
	}

	setFraction(&t.PanelRadiusFraction, tc.PanelRadius)
	setFraction(&t.KeyRadiusFraction, tc.KeyRadius)
	setFraction(&t.InputRadiusFraction, tc.InputRadius)
	setFraction(&t.KeyMarginFraction, tc.KeyMargin)
	setFraction(&t.KeyFontFraction, tc.KeyFont)
	setFraction(&t.InputFontFraction, tc.InputFont)
	if tc.Font != "" {
		t.FontPath = tc.Font
	}
	return t, nil
}

type colourField struct {
	name string
	raw  string
	dst  *color.NRGBA
}

func (tc ThemeConfig) colourFields(t *internal.Theme) []colourField {
	return []colourField{
		{"panel", tc.Panel, &t.PanelColor},
		{"key", tc.Key, &t.KeyColor},
		{"key_highlight", tc.KeyHighlight, &t.KeyHighlightColor},
		{"key_text", tc.KeyText, &t.KeyTextColor},
		{"key_highlight_text", tc.KeyHighlightText, &t.KeyHighlightTextColor},
		{"input_focused", tc.InputFocused, &t.InputFocusedColor},
		{"input_unfocused", tc.InputUnfocused, &t.InputUnfocusedColor},
		{"input_text", tc.InputText, &t.InputTextColor},
		{"placeholder", tc.Placeholder, &t.PlaceholderColor},
		{"selection", tc.Selection, &t.SelectionColor},
		{"selection_text", tc.SelectionText, &t.SelectionTextColor},
		{"caret", tc.Caret, &t.CaretColor},
	}
}

func setFraction(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// ApplyEnvOverrides applies OSK_LOCALE and OSK_LOG_LEVEL.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(constants.LocaleEnvVar); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Logging.Level = v
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field of a config.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	tieBreaks = map[string]bool{"first-match": true, "nearest": true, "first-visible": true}
	levels    = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
)

// Validate reports every invalid field as ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	base := internal.Theme{}
	for _, f := range c.Theme.colourFields(&base) {
		if f.raw == "" {
			continue
		}
		if _, err := internal.ParseHexColor(f.raw); err != nil {
			add("theme."+f.name, "invalid colour %q", f.raw)
		}
	}

	fractions := []struct {
		name     string
		v, limit float64
	}{
		{"panel_radius", c.Theme.PanelRadius, 0.5},
		{"key_radius", c.Theme.KeyRadius, 0.5},
		{"input_radius", c.Theme.InputRadius, 0.5},
		{"key_margin", c.Theme.KeyMargin, 0.2},
		{"key_font", c.Theme.KeyFont, 1},
		{"input_font", c.Theme.InputFont, 1},
	}
	for _, f := range fractions {
		if f.v < 0 || f.v > f.limit {
			add("theme."+f.name, "must be between 0 and %g, got %g", f.limit, f.v)
		}
	}

	e := c.Editing
	if e.PasteLimit < 1 {
		add("editing.paste_limit", "must be positive, got %d", e.PasteLimit)
	}
	if e.BlinkToggles < 0 {
		add("editing.blink_toggles", "must not be negative, got %d", e.BlinkToggles)
	}
	if e.BlinkIntervalMs < 1 {
		add("editing.blink_interval_ms", "must be positive, got %d", e.BlinkIntervalMs)
	}
	if e.ScrollPadding < 0 {
		add("editing.scroll_padding", "must not be negative, got %d", e.ScrollPadding)
	}
	if e.MeasureBatch < 1 {
		add("editing.measure_batch", "must be positive, got %d", e.MeasureBatch)
	}
	if e.CaretWidth < 1 {
		add("editing.caret_width", "must be positive, got %d", e.CaretWidth)
	}

	if !tieBreaks[c.Navigation.TieBreak] {
		add("navigation.tie_break", "unknown policy %q", c.Navigation.TieBreak)
	}
	if c.DeviceScale <= 0 || c.DeviceScale > 8 {
		add("device_scale", "must be in (0, 8], got %g", c.DeviceScale)
	}
	if !levels[strings.ToLower(c.Logging.Level)] {
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	if !levels[strings.ToLower(c.Logging.InternalLevel)] {
		add("logging.internal_level", "unknown level %q", c.Logging.InternalLevel)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

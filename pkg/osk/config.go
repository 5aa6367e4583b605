package osk

import (
	"fmt"

	"github.com/BrandonKowalski/osk/pkg/osk/config"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
)

// OptionsFromConfig builds engine options from a loaded configuration. The
// keymap is the built-in set plus the configured layout files.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	theme, err := cfg.Theme.Build(internal.DefaultTheme())
	if err != nil {
		return Options{}, fmt.Errorf("build theme: %w", err)
	}

	km, err := keymap.NewBuiltin()
	if err != nil {
		return Options{}, err
	}
	layouts, err := loadLayouts(cfg.Keymap.Files)
	if err != nil {
		return Options{}, err
	}
	for _, l := range layouts {
		if err := km.Install(l); err != nil {
			return Options{}, fmt.Errorf("install layout %s: %w", l.ID, err)
		}
	}
	if cfg.Keymap.Active != "" {
		if err := km.Activate(keymap.LayoutID(cfg.Keymap.Active)); err != nil {
			return Options{}, fmt.Errorf("activate layout %s: %w", cfg.Keymap.Active, err)
		}
	}

	opts := tunables(cfg)
	opts.Theme = &theme
	opts.Keymap = km
	opts.Locale = cfg.Locale
	return opts, nil
}

// tunables maps the editing and navigation sections onto Options.
func tunables(cfg *config.Config) Options {
	toggles := cfg.Editing.BlinkToggles
	if toggles == 0 {
		toggles = -1
	}
	return Options{
		TieBreak:      ParseTieBreak(cfg.Navigation.TieBreak),
		PasteLimit:    cfg.Editing.PasteLimit,
		BlinkToggles:  toggles,
		BlinkInterval: cfg.Editing.BlinkInterval(),
		ScrollPadding: cfg.Editing.ScrollPadding,
		MeasureBatch:  cfg.Editing.MeasureBatch,
		CaretWidth:    cfg.Editing.CaretWidth,
		DeviceScale:   cfg.DeviceScale,
	}
}

func loadLayouts(files []string) ([]keymap.Layout, error) {
	layouts := make([]keymap.Layout, 0, len(files))
	for _, f := range files {
		l, err := keymap.LoadFile(f)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", f, err)
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// ApplyConfig applies a reloaded configuration to a running engine. Nothing
// changes when the theme or a layout file is invalid. Layout files are only
// installed when the engine uses a keymap.Static.
func (e *Engine) ApplyConfig(cfg *config.Config) error {
	theme, err := cfg.Theme.Build(e.theme)
	if err != nil {
		return fmt.Errorf("build theme: %w", err)
	}
	layouts, err := loadLayouts(cfg.Keymap.Files)
	if err != nil {
		return err
	}
	if err := e.SetTheme(theme); err != nil {
		return err
	}

	if static, ok := e.keymap.(*keymap.Static); ok {
		for _, l := range layouts {
			if err := static.Install(l); err != nil {
				e.logger.Warn("Failed to install layout", "layout", l.ID, "error", err)
			}
		}
	}
	if id := keymap.LayoutID(cfg.Keymap.Active); id != "" && id != e.activeLayout {
		if err := e.keymap.Activate(id); err != nil {
			e.logger.Warn("Failed to activate configured layout", "layout", id, "error", err)
		}
	}

	e.configure(tunables(cfg))
	e.widths.Invalidate()
	e.SetLocale(cfg.Locale)
	e.RefreshLayouts()

	e.logger.Debug("Applied configuration", "locale", cfg.Locale, "tie_break", e.tieBreak.String())
	return nil
}

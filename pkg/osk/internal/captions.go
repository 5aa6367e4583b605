package internal

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = err
			return
		}
		for _, entry := range entries {
			p := path.Join("locales", entry.Name())
			data, err := localeFS.ReadFile(p)
			if err != nil {
				bundleErr = err
				return
			}
			if _, err := b.ParseMessageFileBytes(data, p); err != nil {
				bundleErr = fmt.Errorf("parse %s: %w", p, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Captions are the localized labels of the special keys.
type Captions struct {
	Space         string
	Backspace     string
	Shift         string
	Submit        string
	SymbolsToggle string // Letters page key that opens the symbols
	LettersToggle string // Symbol page key that returns to letters
	SymbolsMore   string // Shift-position key on symbols-1
	SymbolsBack   string // Shift-position key on symbols-2
	Placeholder   string // Hint drawn in an empty input
}

var defaultMessages = struct {
	space, backspace, shift, submit, symbols, letters, more, back, placeholder i18n.Message
}{
	space:       i18n.Message{ID: "key_space", Other: "space"},
	backspace:   i18n.Message{ID: "key_backspace", Other: "Backspace"},
	shift:       i18n.Message{ID: "key_shift", Other: "Shift"},
	submit:      i18n.Message{ID: "key_submit", Other: "Done"},
	symbols:     i18n.Message{ID: "key_symbols", Other: "?123"},
	letters:     i18n.Message{ID: "key_letters", Other: "ABC"},
	more:        i18n.Message{ID: "key_symbols_more", Other: "=\\<"},
	back:        i18n.Message{ID: "key_symbols_back", Other: "?123"},
	placeholder: i18n.Message{ID: "input_placeholder", Other: "Type here"},
}

// DefaultCaptions returns the English captions without touching the bundle.
func DefaultCaptions() Captions {
	m := defaultMessages
	return Captions{
		Space:         m.space.Other,
		Backspace:     m.backspace.Other,
		Shift:         m.shift.Other,
		Submit:        m.submit.Other,
		SymbolsToggle: m.symbols.Other,
		LettersToggle: m.letters.Other,
		SymbolsMore:   m.more.Other,
		SymbolsBack:   m.back.Other,
		Placeholder:   m.placeholder.Other,
	}
}

// LoadCaptions localizes the captions for locale, falling back to English for
// unknown locales and missing messages.
func LoadCaptions(locale string) (Captions, error) {
	b, err := loadBundle()
	if err != nil {
		return DefaultCaptions(), err
	}

	localizer := i18n.NewLocalizer(b, locale, language.English.String())
	localize := func(msg i18n.Message) string {
		s, err := localizer.Localize(&i18n.LocalizeConfig{DefaultMessage: &msg})
		if err != nil {
			return msg.Other
		}
		return s
	}

	m := defaultMessages
	return Captions{
		Space:         localize(m.space),
		Backspace:     localize(m.backspace),
		Shift:         localize(m.shift),
		Submit:        localize(m.submit),
		SymbolsToggle: localize(m.symbols),
		LettersToggle: localize(m.letters),
		SymbolsMore:   localize(m.more),
		SymbolsBack:   localize(m.back),
		Placeholder:   localize(m.placeholder),
	}, nil
}

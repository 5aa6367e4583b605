package osk

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/config"
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsOnLetters(t *testing.T) {
	te := newTestEngine(t)

	assert.Equal(t, PageLetters, te.Page())
	assert.False(t, te.ShiftActive())
	assert.Equal(t, FocusInput, te.Focus())
	assert.Equal(t, -1, te.Highlighted())
	assert.Equal(t, "", te.Text())
	assert.True(t, te.CaretVisible())
}

func TestNewWithDefaults(t *testing.T) {
	e, err := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	assert.Equal(t, DefaultTheme(), e.Theme())
	assert.Equal(t, keymap.LayoutID("en-US"), e.ActiveLayout())
	assert.NoError(t, e.Close())
	assert.NoError(t, e.Close())
}

func TestCloseLeavesHostRendererOpen(t *testing.T) {
	r := &monoRenderer{}
	e, err := New(Options{Renderer: r, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.False(t, r.closed)
}

func TestNewWithMissingFont(t *testing.T) {
	theme := DefaultTheme()
	theme.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

	_, err := New(Options{Theme: &theme, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.Error(t, err)
	assert.True(t, IsEngineError(err))
}

func TestEngineError(t *testing.T) {
	cause := errors.New("boom")
	err := NewEngineError("load_font", cause)

	assert.Equal(t, "osk: load_font: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "osk: close_font", NewEngineError("close_font", nil).Error())

	assert.True(t, IsEngineError(errors.Join(errors.New("context"), err)))
	assert.False(t, IsEngineError(cause))
}

func TestDefaultRectsStackInputAboveKeyboard(t *testing.T) {
	kb, in := DefaultRects(1024, 768)

	assert.False(t, kb.Empty())
	assert.False(t, in.Empty())
	assert.Less(t, in.Max.Y, kb.Min.Y)
	assert.Equal(t, in.Min.X, kb.Min.X)
	assert.Equal(t, in.Dx(), kb.Dx())
}

func TestDrawInputAreaCaret(t *testing.T) {
	te := newTestEngine(t)
	theme := te.Theme()

	te.DrawInputArea()
	// The caret sits at the left edge of the text view.
	assertPixel(t, te.target, 30, 50, theme.CaretColor)
	assertPixel(t, te.target, 31, 50, theme.CaretColor)
	assertPixel(t, te.target, 33, 50, theme.InputFocusedColor)

	require.Len(t, te.renderer.draws, 1)
	assert.Equal(t, DefaultCaptions().Placeholder, te.renderer.draws[0].text)
	assert.Equal(t, theme.PlaceholderColor, te.renderer.draws[0].c)
}

func TestDrawInputAreaUnfocused(t *testing.T) {
	te := newTestEngine(t)
	theme := te.Theme()
	te.KeyDown(constants.KeyTab, constants.ModNone)

	te.DrawInputArea()
	assertPixel(t, te.target, 33, 50, theme.InputUnfocusedColor)
	assertPixel(t, te.target, 30, 50, theme.CaretColor)
}

func TestDrawInputAreaHiddenCaret(t *testing.T) {
	te := newTestEngine(t)
	theme := te.Theme()
	te.InsertText("a")
	te.clock.Advance(90 * time.Millisecond)
	require.True(t, te.TickCaretBlink())

	te.DrawInputArea()
	assertPixel(t, te.target, 40, 50, theme.InputFocusedColor)
}

func TestDrawInputAreaSelection(t *testing.T) {
	te := newTestEngine(t)
	theme := te.Theme()
	te.SetText("abcd")
	te.SetSelection(1, 2)

	te.DrawInputArea()
	assertPixel(t, te.target, 45, 50, theme.SelectionColor)
	assertPixel(t, te.target, 35, 50, theme.InputFocusedColor)

	band := image.Rect(40, 20, 60, 80)
	var found bool
	for _, d := range te.renderer.draws {
		assert.Equal(t, "abcd", d.text)
		if d.clip == band {
			found = true
			assert.Equal(t, theme.SelectionTextColor, d.c)
		} else {
			assert.Equal(t, theme.InputTextColor, d.c)
		}
	}
	assert.True(t, found, "selected text is drawn clipped to the band")
	assert.Len(t, te.renderer.draws, 3)
}

func TestDrawInputAreaScrollsToCaret(t *testing.T) {
	te := newTestEngine(t)
	te.SetText(strings.Repeat("m", 100))

	te.DrawInputArea()
	p := te.caretPoint()
	assert.Equal(t, testInputRect.Max.X-constants.DefaultInputPadding-constants.DefaultScrollPadding, p.X)

	te.KeyDown(constants.KeyHome, constants.ModNone)
	te.DrawInputArea()
	assert.Equal(t, testInputRect.Min.X+constants.DefaultInputPadding, te.caretPoint().X)
}

func TestDrawInputAreaTooNarrowForPadding(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abc")
	narrow := image.Rect(100, 20, 104, 80)
	te.SetInputRect(narrow)

	assert.True(t, te.textView().Empty())
	te.DrawInputArea()
	assert.Empty(t, te.renderer.draws)

	for y := 0; y < te.target.Rect.Dy(); y++ {
		for x := 0; x < te.target.Rect.Dx(); x++ {
			if image.Pt(x, y).In(narrow) {
				continue
			}
			_, _, _, a := te.target.At(x, y).RGBA()
			require.Zero(t, a, "pixel (%d,%d) outside the input rect", x, y)
		}
	}
}

func TestDeviceScaleWidensPadding(t *testing.T) {
	te := newTestEngine(t, func(o *Options) { o.DeviceScale = 2 })
	assert.Equal(t, testInputRect.Min.X+2*constants.DefaultInputPadding, te.caretPoint().X)

	te.SetDeviceScale(0)
	assert.Equal(t, testInputRect.Min.X+constants.DefaultInputPadding, te.caretPoint().X)
}

func TestApplyConfig(t *testing.T) {
	var switched []keymap.LayoutID
	te := newTestEngine(t, func(o *Options) {
		o.OnLayoutChanged = func(id keymap.LayoutID) { switched = append(switched, id) }
	})

	cfg := config.DefaultConfig()
	cfg.Theme.Key = "#102030"
	cfg.Keymap.Active = "de-DE"
	cfg.Navigation.TieBreak = "nearest"
	cfg.Editing.PasteLimit = 4

	require.NoError(t, te.ApplyConfig(cfg))
	assert.Equal(t, uint8(0x10), te.Theme().KeyColor.R)
	assert.Equal(t, uint8(0x30), te.Theme().KeyColor.B)
	assert.Equal(t, keymap.LayoutID("de-DE"), te.ActiveLayout())
	assert.Equal(t, []keymap.LayoutID{"de-DE"}, switched)
	assert.Equal(t, TieBreakNearest, te.tieBreak)

	require.NoError(t, te.clip.SetText("abcdefgh"))
	require.NoError(t, te.Paste())
	assert.Equal(t, "abcd", te.Text())
}

func TestApplyConfigRejectsBadTheme(t *testing.T) {
	te := newTestEngine(t)
	before := te.Theme()

	cfg := config.DefaultConfig()
	cfg.Theme.Key = "#zz"
	cfg.Editing.PasteLimit = 4

	assert.Error(t, te.ApplyConfig(cfg))
	assert.Equal(t, before, te.Theme())
	assert.Equal(t, constants.DefaultPasteLimit, te.pasteLimit)
}

func TestApplyConfigInstallsLayoutFiles(t *testing.T) {
	te := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "fr.toml")
	require.NoError(t, os.WriteFile(path, []byte("id = \"fr-FR\"\n\n[keys]\nKEY_Q = [\"a\"]\nKEY_A = [\"q\"]\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Keymap.Files = []string{path}
	cfg.Keymap.Active = "fr-FR"

	require.NoError(t, te.ApplyConfig(cfg))
	assert.Equal(t, keymap.LayoutID("fr-FR"), te.ActiveLayout())
	q := te.Keys()[te.keyIndex(t, func(k Key) bool { return k.Code == keymap.CodeQ })]
	assert.Equal(t, "a", q.Caption)

	cfg.Keymap.Files = []string{filepath.Join(t.TempDir(), "missing.toml")}
	assert.Error(t, te.ApplyConfig(cfg))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editing.BlinkToggles = 0
	cfg.Navigation.TieBreak = "first-visible"
	cfg.Keymap.Active = "de-DE"
	cfg.DeviceScale = 1.5

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, -1, opts.BlinkToggles, "zero toggles in a file disable the pulse")
	assert.Equal(t, TieBreakFirstVisible, opts.TieBreak)
	assert.Equal(t, constants.DefaultBlinkInterval, opts.BlinkInterval)
	assert.Equal(t, 1.5, opts.DeviceScale)
	require.NotNil(t, opts.Theme)
	assert.Equal(t, DefaultTheme(), *opts.Theme)
	assert.Equal(t, keymap.LayoutID("de-DE"), opts.Keymap.CurrentLayout())

	cfg.Keymap.Active = "xx-XX"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}

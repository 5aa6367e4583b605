package osk

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
)

// Engine draws the keyboard and the input field and owns all of their
// interactive state. An Engine is not safe for concurrent use; the host
// calls it from one event loop.
type Engine struct {
	opts     Options
	theme    Theme
	keymap   keymap.Service
	text     TextRenderer
	ownsText bool
	fontPath string
	clip     Clipboard
	captions Captions
	logger   *slog.Logger
	now      func() time.Time

	tieBreak      TieBreak
	pasteLimit    int
	scrollPadding int
	measureBatch  int
	caretWidth    int
	scale         float64

	target       *image.RGBA
	background   color.NRGBA
	keyboardRect image.Rectangle
	inputRect    image.Rectangle

	shapes *internal.RoundRectCache
	icons  *internal.IconRenderer

	layout       internal.KeyboardLayout
	layoutDirty  bool
	builtArea    image.Rectangle
	page         Page
	shift        bool
	activeLayout keymap.LayoutID
	layoutCount  int

	focus       Focus
	highlighted int
	active      int
	pressed     int
	pending     internal.PendingSignature

	editor     internal.Editor
	widths     *internal.WidthCache
	scroll     int
	blink      *internal.BlinkPulse
	dragging   bool
	repeat     internal.DirectionalInput
	repeatMods constants.Modifier

	closed bool
}

// New creates an engine. The keyboard starts on the letters page with the
// input field focused and no key highlighted.
func New(opts Options) (*Engine, error) {
	e := &Engine{
		opts:        opts,
		theme:       internal.DefaultTheme(),
		logger:      opts.Logger,
		now:         opts.Clock,
		clip:        opts.Clipboard,
		layoutDirty: true,
		highlighted: -1,
		active:      -1,
		pressed:     -1,
		repeat:      internal.NewDirectionalInput(),
	}
	if e.logger == nil {
		e.logger = internal.GetInternalLogger()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.Theme != nil {
		e.theme = *opts.Theme
	}
	if e.clip == nil {
		e.clip = NewMemoryClipboard()
	}

	e.keymap = opts.Keymap
	if e.keymap == nil {
		km, err := keymap.NewBuiltin()
		if err != nil {
			return nil, NewEngineError("load_keymap", err)
		}
		e.keymap = km
	}

	e.text = opts.Renderer
	if e.text == nil {
		r, err := internal.LoadFaceRenderer(e.theme.FontPath)
		if err != nil {
			return nil, NewEngineError("load_font", err)
		}
		e.text = r
		e.ownsText = true
		e.fontPath = e.theme.FontPath
	}

	if opts.Captions != nil {
		e.captions = *opts.Captions
	} else {
		e.captions = e.loadCaptions(opts.Locale)
	}

	e.shapes = internal.NewRoundRectCache(e.logger)
	e.icons = internal.NewIconRenderer()
	e.blink = internal.NewBlinkPulse(constants.DefaultBlinkToggles, constants.DefaultBlinkInterval)
	e.configure(opts)
	e.syncLayouts()

	e.logger.Debug("Keyboard engine created",
		"layout", e.activeLayout,
		"layouts", e.layoutCount,
		"tie_break", e.tieBreak.String())
	return e, nil
}

// configure applies the tunables of opts. Zero values select the defaults.
func (e *Engine) configure(opts Options) {
	e.tieBreak = opts.TieBreak
	e.pasteLimit = orDefault(opts.PasteLimit, constants.DefaultPasteLimit)
	e.scrollPadding = orDefault(opts.ScrollPadding, constants.DefaultScrollPadding)
	e.caretWidth = orDefault(opts.CaretWidth, constants.DefaultCaretWidth)

	batch := orDefault(opts.MeasureBatch, constants.DefaultMeasureBatch)
	if e.widths == nil || batch != e.measureBatch {
		e.widths = internal.NewWidthCache(batch)
		e.measureBatch = batch
	}

	toggles := opts.BlinkToggles
	switch {
	case toggles == 0:
		toggles = constants.DefaultBlinkToggles
	case toggles < 0:
		toggles = 0
	}
	e.blink.Configure(toggles, opts.BlinkInterval)

	scale := opts.DeviceScale
	if scale <= 0 {
		scale = 1
	}
	e.scale = scale
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (e *Engine) loadCaptions(locale string) Captions {
	c, err := internal.LoadCaptions(locale)
	if err != nil {
		e.logger.Warn("Failed to load captions, using English", "locale", locale, "error", err)
	}
	return c
}

// Close releases the cached bitmaps, icons and, if the engine created it,
// the text renderer. Close may be called more than once.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.shapes.Release()
	e.icons.Release()
	e.widths.Invalidate()
	e.target = nil

	if e.ownsText {
		if err := e.text.Close(); err != nil {
			return NewEngineError("close_font", err)
		}
	}
	return nil
}

// SetTargetBuffer sets the buffer drawn into and the colour its keyboard and
// input regions are filled with before each draw.
func (e *Engine) SetTargetBuffer(buf *image.RGBA, background color.NRGBA) {
	e.target = buf
	e.background = background
}

// SetKeyboardRect places the keyboard panel. An empty rectangle hides it.
func (e *Engine) SetKeyboardRect(r image.Rectangle) {
	r = r.Canon()
	if r == e.keyboardRect {
		return
	}
	e.keyboardRect = r
	e.layoutDirty = true
}

// SetInputRect places the input field. An empty rectangle hides it.
func (e *Engine) SetInputRect(r image.Rectangle) {
	r = r.Canon()
	if r == e.inputRect {
		return
	}
	e.inputRect = r
	e.widths.Invalidate()
}

// SetDeviceScale sets the factor applied to paddings and the caret width.
func (e *Engine) SetDeviceScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale == e.scale {
		return
	}
	e.scale = scale
	e.widths.Invalidate()
}

// SetTheme replaces the theme. When the engine owns its text renderer and
// the font path changed, the new font is loaded first; on failure the old
// theme stays in place.
func (e *Engine) SetTheme(t Theme) error {
	if e.ownsText && t.FontPath != e.fontPath {
		r, err := internal.LoadFaceRenderer(t.FontPath)
		if err != nil {
			return NewEngineError("load_font", err)
		}
		if err := e.text.Close(); err != nil {
			e.logger.Warn("Failed to close previous font", "error", err)
		}
		e.text = r
		e.fontPath = t.FontPath
	}
	e.theme = t
	e.layoutDirty = true
	e.widths.Invalidate()
	return nil
}

// SetCaptions replaces the special-key captions.
func (e *Engine) SetCaptions(c Captions) {
	e.captions = c
	e.layoutDirty = true
}

// SetLocale reloads the special-key captions for locale.
func (e *Engine) SetLocale(locale string) {
	e.SetCaptions(e.loadCaptions(locale))
}

// RefreshLayouts re-reads the installed and current layouts from the keymap
// service and reports whether the current layout changed. A change rebuilds
// the keys, keeps the highlighted key and notifies OnLayoutChanged.
func (e *Engine) RefreshLayouts() bool {
	before, count := e.activeLayout, e.layoutCount
	e.syncLayouts()
	if e.layoutCount != count {
		e.preserveHighlight()
	}
	if e.activeLayout == before {
		return false
	}
	e.preserveHighlight()
	e.logger.Debug("Input layout changed externally", "from", before, "to", e.activeLayout)
	if e.opts.OnLayoutChanged != nil {
		e.opts.OnLayoutChanged(e.activeLayout)
	}
	return true
}

func (e *Engine) syncLayouts() {
	e.layoutCount = len(e.keymap.InstalledLayouts())
	e.activeLayout = e.keymap.CurrentLayout()
	e.layoutDirty = true
}

// preserveHighlight carries the highlighted key across the next rebuild.
func (e *Engine) preserveHighlight() {
	e.layoutDirty = true
	if e.validKey(e.highlighted) && !e.pending.Pending() {
		e.pending.Set(e.layout.Keys[e.highlighted].Signature())
	}
}

// ensureLayout rebuilds the key set when it is dirty or the keyboard moved,
// then resolves a pending signature into the new highlight.
func (e *Engine) ensureLayout() {
	if !e.layoutDirty && e.builtArea == e.keyboardRect {
		return
	}

	var prev image.Rectangle
	if e.validKey(e.highlighted) {
		prev = e.layout.Keys[e.highlighted].Rect
	}

	e.layout = internal.BuildKeyboard(internal.LayoutRequest{
		Page:     e.page,
		Shift:    e.shift,
		Layouts:  e.layoutCount,
		Active:   e.activeLayout,
		Keymap:   e.keymap,
		Captions: e.captions,
	})
	e.layout.Layout(e.keyboardRect, e.margin(), internal.RowSlots(e.page, e.layoutCount))
	e.layoutDirty = false
	e.builtArea = e.keyboardRect

	keys := e.layout.Keys
	first := internal.FirstVisible(keys)
	switch {
	case first < 0:
		// Nothing is visible; keep any pending signature for a later rebuild.
		e.highlighted = -1
	case e.pending.Pending():
		sig, _ := e.pending.Take()
		idx := internal.FindSignature(keys, sig, e.tieBreak, prev)
		if idx < 0 {
			e.logger.Debug("Highlighted key not found after rebuild", "kind", sig.Kind.String(), "caption", sig.Caption)
			idx = first
		}
		e.highlighted = idx
		e.active = idx
	case e.highlighted >= 0 && !e.validKey(e.highlighted):
		e.highlighted = first
	}
	if e.active >= 0 && !e.validKey(e.active) {
		e.active = e.highlighted
	}
	if e.pressed >= 0 {
		e.pressed = e.highlighted
	}

	e.logger.Debug("Rebuilt keyboard layout",
		"page", e.page.String(),
		"shift", e.shift,
		"keys", len(keys),
		"highlighted", e.highlighted)
}

func (e *Engine) margin() int {
	return internal.MarginPixels(e.keyboardRect.Dy(), e.theme.KeyMarginFraction)
}

func (e *Engine) validKey(i int) bool {
	return i >= 0 && i < len(e.layout.Keys) && e.layout.Keys[i].Visible()
}

// Text returns the contents of the input field.
func (e *Engine) Text() string {
	return e.editor.Text()
}

// Caret returns the caret position in runes.
func (e *Engine) Caret() int {
	return e.editor.Caret()
}

// Selection returns the normalized selection; length is zero when nothing
// is selected.
func (e *Engine) Selection() (start, length int) {
	return e.editor.Selection()
}

func (e *Engine) Focus() Focus {
	return e.focus
}

// Highlighted returns the index into Keys of the highlighted key, or -1.
func (e *Engine) Highlighted() int {
	e.ensureLayout()
	return e.highlighted
}

// Keys returns a copy of the current key set.
func (e *Engine) Keys() []Key {
	e.ensureLayout()
	keys := make([]Key, len(e.layout.Keys))
	copy(keys, e.layout.Keys)
	return keys
}

func (e *Engine) Page() Page {
	return e.page
}

func (e *Engine) ShiftActive() bool {
	return e.shift
}

func (e *Engine) ActiveLayout() keymap.LayoutID {
	return e.activeLayout
}

func (e *Engine) Theme() Theme {
	return e.theme
}

// CaretVisible reports the caret's state in the feedback pulse.
func (e *Engine) CaretVisible() bool {
	return e.blink.Visible()
}

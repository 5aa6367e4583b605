package osk

import (
	"image"
	"image/color"
	"math"

	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// iconFraction is the icon size relative to the smaller side of its key.
const iconFraction = 0.55

// captionInset is the horizontal caption margin as a fraction of key width.
const captionInset = 0.1

type activation func(e *Engine, k Key)

// activations holds one handler per key kind.
var activations = [internal.KeyKindCount]activation{
	internal.KeyCharacter:      (*Engine).activateCharacter,
	internal.KeyBackspace:      (*Engine).activateBackspace,
	internal.KeyShift:          (*Engine).activateShift,
	internal.KeySymbolsToggle:  (*Engine).activateSymbolsToggle,
	internal.KeySpace:          (*Engine).activateSpace,
	internal.KeySubmit:         (*Engine).activateSubmit,
	internal.KeyLanguageSwitch: (*Engine).activateLanguageSwitch,
}

// activate runs the handler of the key at idx. Invalid indices are ignored.
func (e *Engine) activate(idx int) {
	if !e.validKey(idx) {
		return
	}
	k := e.layout.Keys[idx]
	if k.Kind < 0 || k.Kind >= internal.KeyKindCount {
		return
	}
	e.logger.Debug("Key activated", "kind", k.Kind.String(), "caption", k.Caption)
	activations[k.Kind](e, k)
}

// ActivateHighlighted activates the highlighted key, as Enter does while the
// key grid has focus. It reports whether a key was activated.
func (e *Engine) ActivateHighlighted() bool {
	e.ensureLayout()
	if !e.validKey(e.highlighted) {
		return false
	}
	e.activate(e.highlighted)
	return true
}

// rebuildKeeping marks the key set dirty and carries k's highlight across
// the rebuild.
func (e *Engine) rebuildKeeping(k Key) {
	e.pending.Set(k.Signature())
	e.layoutDirty = true
}

func (e *Engine) activateCharacter(k Key) {
	e.insert(k.Output)
	if e.page == PageLetters && e.shift {
		e.shift = false
		e.rebuildKeeping(k)
	}
}

func (e *Engine) activateBackspace(Key) {
	if e.editor.DeleteBackward() {
		e.changed()
	}
}

func (e *Engine) activateShift(k Key) {
	switch e.page {
	case PageLetters:
		e.shift = !e.shift
	case PageSymbols1:
		e.page = PageSymbols2
	default:
		e.page = PageSymbols1
	}
	e.rebuildKeeping(k)
}

func (e *Engine) activateSymbolsToggle(k Key) {
	if e.page == PageLetters {
		e.page = PageSymbols1
	} else {
		e.page = PageLetters
	}
	e.shift = false
	e.rebuildKeeping(k)
}

func (e *Engine) activateSpace(Key) {
	e.insert(" ")
}

func (e *Engine) activateSubmit(Key) {
	e.submit()
}

func (e *Engine) activateLanguageSwitch(k Key) {
	ids := e.keymap.InstalledLayouts()
	if len(ids) < 2 {
		return
	}
	next := ids[0]
	for i, id := range ids {
		if id == e.activeLayout {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	if err := e.keymap.Activate(next); err != nil {
		e.logger.Warn("Failed to switch input layout", "layout", next, "error", err)
		return
	}

	e.logger.Debug("Switched input layout", "from", e.activeLayout, "to", next)
	e.activeLayout = next
	e.layoutCount = len(ids)
	e.rebuildKeeping(k)
	if e.opts.OnLayoutChanged != nil {
		e.opts.OnLayoutChanged(next)
	}
}

func (e *Engine) submit() {
	if e.opts.OnSubmit != nil {
		e.opts.OnSubmit(e.editor.Text())
	}
}

// DrawKeyboardArea composites the panel and every visible key onto the
// target buffer. The host repaints the keyboard rectangle with the
// background colour before calling it.
func (e *Engine) DrawKeyboardArea() {
	if e.target == nil || e.keyboardRect.Empty() {
		return
	}
	e.ensureLayout()
	e.ensureShapes()

	e.shapes.DrawShape(e.target, internal.ShapePanel, e.keyboardRect.Min)

	short := e.layout.Page.RowCount() == 5
	rowH := internal.RowHeight(e.keyboardRect.Dy(), e.layout.Page.RowCount(), e.margin())
	for i, k := range e.layout.Keys {
		if !k.Visible() {
			continue
		}
		lit := e.isLit(i)
		e.shapes.BlitKey(e.target, internal.KeyShape(short, lit), k.Rect)
		e.drawKeyLabel(k, lit, rowH)
	}
}

// isLit reports whether key i is drawn highlighted: the highlight shows while
// the grid has focus, and a key held down by the mouse always shows.
func (e *Engine) isLit(i int) bool {
	return (i == e.highlighted && e.focus == FocusKeys) || i == e.pressed
}

func (e *Engine) drawKeyLabel(k Key, lit bool, rowH float64) {
	fg := e.theme.KeyTextColor
	if lit {
		fg = e.theme.KeyHighlightTextColor
	}

	if k.Icon != internal.IconNone {
		size := int(float64(min(k.Rect.Dx(), k.Rect.Dy())) * iconFraction)
		err := e.icons.DrawCentered(e.target, k.Rect, k.Icon, size, fg)
		if err == nil {
			return
		}
		e.logger.Debug("Icon failed, drawing caption", "kind", k.Kind.String(), "error", err)
	}
	e.drawCaption(k.Caption, k.Rect, rowH*e.theme.KeyFontFraction, fg)
}

// drawCaption centres s in rect, shrinking the font until it fits.
func (e *Engine) drawCaption(s string, rect image.Rectangle, size float64, c color.NRGBA) {
	if s == "" || size <= 0 {
		return
	}
	size = quantize(size)
	avail := float64(rect.Dx()) * (1 - 2*captionInset)
	adv := e.text.Advance(size, s)
	if adv > avail && avail > 0 {
		size = quantize(size * avail / adv)
		adv = e.text.Advance(size, s)
	}
	if size <= 0 {
		return
	}

	ascent, descent := e.text.LineMetrics(size)
	x := rect.Min.X + int(math.Round((float64(rect.Dx())-adv)/2))
	baseline := rect.Min.Y + int(math.Round((float64(rect.Dy())+ascent-descent)/2))
	e.text.DrawString(e.target, rect, size, s, x, baseline, c)
}

// quantize rounds a font size down to half a pixel so that faces are shared.
func quantize(size float64) float64 {
	return math.Floor(size*2) / 2
}

// ensureShapes brings the round-rect caches up to date with the current
// rectangles, theme and background.
func (e *Engine) ensureShapes() {
	e.shapes.Ensure(e.shapeSet())
}

func (e *Engine) shapeSet() internal.ShapeSet {
	t := e.theme
	kb, in := e.keyboardRect, e.inputRect
	margin := e.margin()

	plain := func(w, h int, fill color.NRGBA, radius float64) internal.ShapeParams {
		return internal.ShapeParams{
			Width:          w,
			Height:         h,
			Fill:           fill,
			Background:     e.background,
			RadiusFraction: radius,
		}
	}
	key := func(rows int, fill color.NRGBA) internal.ShapeParams {
		return internal.ShapeParams{
			Width:          kb.Dx() - 2*margin,
			Height:         int(internal.RowHeight(kb.Dy(), rows, margin)),
			Fill:           fill,
			Background:     e.background,
			Underlay:       t.PanelColor,
			HasUnderlay:    true,
			RadiusFraction: t.KeyRadiusFraction,
			MarginFraction: t.KeyMarginFraction,
		}
	}

	var set internal.ShapeSet
	set[internal.ShapePanel] = plain(kb.Dx(), kb.Dy(), t.PanelColor, t.PanelRadiusFraction)
	set[internal.ShapeInputFocused] = plain(in.Dx(), in.Dy(), t.InputFocusedColor, t.InputRadiusFraction)
	set[internal.ShapeInputUnfocused] = plain(in.Dx(), in.Dy(), t.InputUnfocusedColor, t.InputRadiusFraction)
	set[internal.ShapeKeyDefaultShort] = key(5, t.KeyColor)
	set[internal.ShapeKeyHighlightShort] = key(5, t.KeyHighlightColor)
	set[internal.ShapeKeyDefaultTall] = key(4, t.KeyColor)
	set[internal.ShapeKeyHighlightTall] = key(4, t.KeyHighlightColor)
	return set
}
